package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hervehildenbrand/whatsnew/pkg/store"
)

// NewResetCmd creates the `whatsnew reset` subcommand, which forgets
// every presented version so sheets show again.
func NewResetCmd() *cobra.Command {
	var (
		force     bool
		statePath string
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the presented-versions state",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(false)

			var (
				s   *store.FileStore
				err error
			)
			if statePath != "" {
				s = store.NewAtPath(statePath, log)
			} else {
				s, err = store.New(appName, log)
				if err != nil {
					return err
				}
			}

			presented := s.PresentedVersions()
			if len(presented) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No presented versions recorded.")
				return nil
			}

			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Forget %d presented version(s) at %s? [y/N] ", len(presented), s.Path())
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return nil
				}
			}

			if err := s.Reset(); err != nil {
				return fmt.Errorf("cannot reset state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Presented-versions state cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().StringVar(&statePath, "state", "", "Presented-versions state file (default: user config dir)")

	return cmd
}
