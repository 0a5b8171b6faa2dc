package whatsnew

// VersionStore is the persistence boundary for the set of versions
// already presented to this user. Implementations must make Save
// idempotent; versions are never removed. A nil store is a valid state
// meaning "no persistence": consumers treat it as an empty set and log
// a diagnostic rather than fail.
type VersionStore interface {
	// PresentedVersions returns a snapshot of the presented set.
	PresentedVersions() []Version

	// HasPresented reports whether v has been presented before.
	HasPresented(v Version) bool

	// Save marks v as presented. Saving an already-present version is
	// a no-op.
	Save(v Version) error
}

// MemoryStore is an in-process VersionStore for tests and hosts that
// do not want persistence across runs. The zero value is ready to use.
type MemoryStore struct {
	presented []Version
}

// NewMemoryStore returns a store pre-seeded with the given versions.
func NewMemoryStore(presented ...Version) *MemoryStore {
	s := &MemoryStore{}
	for _, v := range presented {
		s.Save(v)
	}
	return s
}

// PresentedVersions returns a copy of the presented set in insertion order.
func (s *MemoryStore) PresentedVersions() []Version {
	out := make([]Version, len(s.presented))
	copy(out, s.presented)
	return out
}

// HasPresented reports whether v was saved before.
func (s *MemoryStore) HasPresented(v Version) bool {
	for _, p := range s.presented {
		if p == v {
			return true
		}
	}
	return false
}

// Save records v once; duplicates are ignored.
func (s *MemoryStore) Save(v Version) error {
	if !s.HasPresented(v) {
		s.presented = append(s.presented, v)
	}
	return nil
}

// presentedSet snapshots a store into a set for resolution. A nil
// store yields an empty set.
func presentedSet(store VersionStore) map[Version]bool {
	set := make(map[Version]bool)
	if store == nil {
		return set
	}
	for _, v := range store.PresentedVersions() {
		set[v] = true
	}
	return set
}
