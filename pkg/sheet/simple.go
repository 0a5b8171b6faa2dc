package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/hervehildenbrand/whatsnew/pkg/whatsnew"
)

// SimpleRenderer renders a release-notes entry in plain text, for
// non-interactive output.
type SimpleRenderer struct {
	ShowSubtitles bool
}

// NewSimpleRenderer creates a SimpleRenderer with default settings.
func NewSimpleRenderer() *SimpleRenderer {
	return &SimpleRenderer{
		ShowSubtitles: true,
	}
}

// Render writes the entry as indented text.
func (r *SimpleRenderer) Render(w io.Writer, e *whatsnew.Entry) {
	fmt.Fprintf(w, "%s (%s)\n", e.Title, e.Version)
	fmt.Fprintln(w, strings.Repeat("─", len(e.Title)+len(e.Version.String())+3))

	for _, f := range e.Features {
		symbol := f.Symbol
		if symbol == "" {
			symbol = "•"
		}
		fmt.Fprintf(w, "  %s %s\n", symbol, f.Title)
		if r.ShowSubtitles && f.Subtitle != "" {
			fmt.Fprintf(w, "    %s\n", f.Subtitle)
		}
	}
}
