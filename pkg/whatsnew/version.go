// Package whatsnew provides the core model for presenting release notes:
// semantic versions, release entries, ordered collections, the presented-version
// store boundary, and the resolver that decides which entry to show.
package whatsnew

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Version represents a semantic version (major.minor.patch).
type Version struct {
	Major, Minor, Patch int
}

// Parse parses a version string like "v1.2.3" or "1.2". Missing
// components default to 0, so "1" parses as 1.0.0.
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(s, "v")
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version: %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", p, err)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("negative version component: %q", p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is Parse for statically known versions; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Current reads the running binary's build metadata and parses the main
// module version. ok is false for dev builds without version info.
func Current() (v Version, ok bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version{}, false
	}
	v, err := Parse(info.Main.Version)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// Compare returns -1, 0 or 1 when v is ordered before, equal to, or
// after other. Components are compared major first, then minor, then patch.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmp(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmp(v.Minor, other.Minor)
	}
	return cmp(v.Patch, other.Patch)
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// IsNewer reports whether v is a newer version than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// IsZero reports whether v is 0.0.0, the sentinel version reserved for
// the synthetic first-launch entry under BehaviorCustom.
func (v Version) IsZero() bool {
	return v == Version{}
}

// MinorLine returns v with the patch component zeroed, the
// representative version for all patch releases of the same minor line.
func (v Version) MinorLine() Version {
	return Version{Major: v.Major, Minor: v.Minor}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText implements encoding.TextMarshaler so versions round-trip
// through JSON state files and TOML release-notes files.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
