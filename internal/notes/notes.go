// Package notes loads a release-notes collection from a TOML file, so
// the preview CLI can exercise a collection the way a host app would
// declare one in code.
package notes

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hervehildenbrand/whatsnew/pkg/whatsnew"
)

// File is the top-level TOML document: an ordered list of releases.
type File struct {
	Releases []Release `toml:"release"`
}

// Release is one [[release]] block.
type Release struct {
	Version   whatsnew.Version `toml:"version"`
	Title     string           `toml:"title"`
	Features  []Feature        `toml:"feature"`
	Primary   *Button          `toml:"primary"`
	Secondary *Button          `toml:"secondary"`
}

// Feature is one [[release.feature]] block.
type Feature struct {
	Symbol   string `toml:"symbol"`
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
}

// Button holds an action title.
type Button struct {
	Title string `toml:"title"`
}

// Load reads a TOML release-notes file and builds the collection in
// file order.
func Load(path string) (whatsnew.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read notes file: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML release notes.
func Parse(data []byte) (whatsnew.Collection, error) {
	var doc File
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid notes file: %w", err)
	}
	if len(doc.Releases) == 0 {
		return nil, fmt.Errorf("notes file contains no [[release]] blocks")
	}

	var entries []whatsnew.Entry
	for _, r := range doc.Releases {
		if r.Title == "" {
			return nil, fmt.Errorf("release %s is missing a title", r.Version)
		}
		e := whatsnew.Entry{
			Version: r.Version,
			Title:   r.Title,
			Primary: whatsnew.Action{Title: "Continue"},
		}
		if r.Primary != nil {
			e.Primary.Title = r.Primary.Title
		}
		if r.Secondary != nil {
			e.Secondary = &whatsnew.Action{Title: r.Secondary.Title}
		}
		for _, f := range r.Features {
			if f.Title == "" {
				return nil, fmt.Errorf("release %s has a feature without a title", r.Version)
			}
			e.Features = append(e.Features, whatsnew.Feature{
				Symbol:   f.Symbol,
				Title:    f.Title,
				Subtitle: f.Subtitle,
			})
		}
		entries = append(entries, e)
	}

	return whatsnew.NewCollection(entries...), nil
}
