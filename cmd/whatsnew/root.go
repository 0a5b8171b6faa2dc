package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hervehildenbrand/whatsnew/internal/notes"
	"github.com/hervehildenbrand/whatsnew/pkg/sheet"
	"github.com/hervehildenbrand/whatsnew/pkg/store"
	"github.com/hervehildenbrand/whatsnew/pkg/whatsnew"
)

// appName namespaces the default state file under the user config dir.
const appName = "whatsnew"

// Config holds the parsed CLI configuration.
type Config struct {
	Notes    string
	Version  string
	Behavior string
	State    string
	Simple   bool
	Verbose  bool
	DryRun   bool
}

// NewRootCmd creates and returns the root cobra command.
func NewRootCmd() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "whatsnew",
		Short: "Preview release-notes sheets from a TOML file",
		Long: `whatsnew previews a "what's new" sheet the way a host application
would present it: it resolves the entry to show from a TOML
release-notes file and the presented-version state, runs pending
migrations, and records the presentation.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := whatsnew.ParseBehavior(cfg.Behavior); err != nil {
				return err
			}
			if cfg.Version != "" {
				if _, err := whatsnew.Parse(cfg.Version); err != nil {
					return err
				}
			}
			if cfg.Notes == "" && !cfg.DryRun {
				return fmt.Errorf("--notes is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DryRun {
				// Just validate flags and return.
				return nil
			}
			return runSheet(cmd, &cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Notes, "notes", "n", "", "Release-notes TOML file")
	cmd.Flags().StringVar(&cfg.Version, "app-version", "", "Current app version (default: build metadata, then newest entry)")
	cmd.Flags().StringVarP(&cfg.Behavior, "behavior", "b", "regular", "First-run behavior: regular|hidden|custom")
	cmd.Flags().StringVar(&cfg.State, "state", "", "Presented-versions state file (default: user config dir)")
	cmd.Flags().BoolVar(&cfg.Simple, "simple", false, "Plain text output (no TUI)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose diagnostics")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Validate flags and exit")

	return cmd
}

func runSheet(cmd *cobra.Command, cfg *Config) error {
	log := newLogger(cfg.Verbose)

	behavior, err := whatsnew.ParseBehavior(cfg.Behavior)
	if err != nil {
		return err
	}

	collection, err := notes.Load(cfg.Notes)
	if err != nil {
		return err
	}

	current, err := currentVersion(cfg, collection)
	if err != nil {
		return err
	}

	versions, err := newStore(cfg, log)
	if err != nil {
		return err
	}

	scfg := sheet.Config{
		Current:    current,
		Collection: collection,
		Store:      versions,
		Behavior:   behavior,
		Log:        log,
	}

	if cfg.Simple || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runSimple(cmd, scfg)
	}
	return sheet.Run(scfg)
}

// runSimple resolves and prints the entry without the TUI, recording
// the presentation the same way a dismissed sheet would.
func runSimple(cmd *cobra.Command, cfg sheet.Config) error {
	entry := whatsnew.Resolve(whatsnew.Config{
		Current:    cfg.Current,
		Collection: cfg.Collection,
		Store:      cfg.Store,
		Behavior:   cfg.Behavior,
		Log:        cfg.Log,
	})
	if entry == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing new to show for %s.\n", cfg.Current)
		return nil
	}

	sheet.NewSimpleRenderer().Render(cmd.OutOrStdout(), entry)

	if cfg.Store != nil {
		if err := cfg.Store.Save(entry.Version); err != nil {
			return fmt.Errorf("cannot record presentation: %w", err)
		}
	}
	return nil
}

// currentVersion picks the version to resolve against: the flag, then
// build metadata, then the newest entry in the collection.
func currentVersion(cfg *Config, collection whatsnew.Collection) (whatsnew.Version, error) {
	if cfg.Version != "" {
		return whatsnew.Parse(cfg.Version)
	}
	if v, ok := whatsnew.Current(); ok {
		return v, nil
	}
	if v, ok := collection.Latest(); ok {
		return v, nil
	}
	return whatsnew.Version{}, fmt.Errorf("cannot determine current version, pass --app-version")
}

func newStore(cfg *Config, log zerolog.Logger) (*store.FileStore, error) {
	if cfg.State != "" {
		return store.NewAtPath(cfg.State, log), nil
	}
	return store.New(appName, log)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
