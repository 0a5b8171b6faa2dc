package whatsnew

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Behavior controls what happens on a completely fresh install, when
// no version has ever been presented.
type Behavior int

const (
	// BehaviorRegular resolves against the collection normally.
	BehaviorRegular Behavior = iota

	// BehaviorHidden never shows a sheet on first run; the current
	// version is marked presented immediately.
	BehaviorHidden

	// BehaviorCustom shows the onboarding entry at the sentinel
	// version 0.0.0 on first run, falling back to regular resolution
	// when the collection has no such entry.
	BehaviorCustom
)

func (b Behavior) String() string {
	switch b {
	case BehaviorHidden:
		return "hidden"
	case BehaviorCustom:
		return "custom"
	default:
		return "regular"
	}
}

// ParseBehavior parses "regular", "hidden" or "custom".
func ParseBehavior(s string) (Behavior, error) {
	switch strings.ToLower(s) {
	case "regular":
		return BehaviorRegular, nil
	case "hidden":
		return BehaviorHidden, nil
	case "custom":
		return BehaviorCustom, nil
	}
	return BehaviorRegular, fmt.Errorf("invalid behavior %q: must be regular, hidden, or custom", s)
}

// Config carries everything resolution and presentation need. All
// dependencies are explicit; there is no ambient lookup.
type Config struct {
	// Current is the version of the running host application.
	Current Version

	// Collection is the ordered release-notes collection.
	Collection Collection

	// Store tracks presented versions. May be nil (no persistence).
	Store VersionStore

	// Behavior is the first-run policy.
	Behavior Behavior

	// Log receives diagnostics. The zero value is silent.
	Log zerolog.Logger
}

// Resolve decides which entry, if any, should be presented for the
// configured current version. It reads the store once, applies the
// hidden-behavior first-run side effect, and never returns an error:
// no matching entry is a normal nil result.
func Resolve(cfg Config) *Entry {
	if cfg.Store == nil {
		cfg.Log.Warn().Msg("no version store configured, treating all versions as unpresented")
	}

	entry, persistCurrent := resolve(cfg.Current, presentedSet(cfg.Store), cfg.Collection, cfg.Behavior, cfg.Log)
	if persistCurrent && cfg.Store != nil {
		if err := cfg.Store.Save(cfg.Current); err != nil {
			cfg.Log.Warn().Err(err).Stringer("version", cfg.Current).Msg("failed to persist version")
		}
	}
	return entry
}

// resolve is the pure core of the resolver. persistCurrent is true
// when the caller must mark current as presented even though nothing
// is shown (hidden behavior on first run).
func resolve(current Version, presented map[Version]bool, c Collection, b Behavior, log zerolog.Logger) (entry *Entry, persistCurrent bool) {
	if presented[current] {
		return nil, false
	}

	firstRun := len(presented) == 0
	if firstRun {
		switch b {
		case BehaviorHidden:
			return nil, true
		case BehaviorCustom:
			if e := c.Lookup(Version{}); e != nil {
				return e, false
			}
			log.Warn().Msg("custom behavior configured without a 0.0.0 entry, falling back to regular")
		}
	}

	if e := c.Lookup(current); e != nil {
		return e, false
	}

	// Patch releases share the minor line's entry unless one was
	// authored for the exact patch.
	minor := current.MinorLine()
	if presented[minor] {
		return nil, false
	}
	return c.Lookup(minor), false
}
