package whatsnew

// Collection is an ordered sequence of entries. Order matters for
// migration execution; version lookup is first-match in sequence order,
// so duplicate versions resolve deterministically.
type Collection []Entry

// NewCollection builds a collection from entries in the given order.
func NewCollection(entries ...Entry) Collection {
	return Collection(entries)
}

// Lookup returns the first entry whose version equals v, or nil.
// The scan is intentionally linear over the slice: a map lookup would
// lose the first-match guarantee for duplicate versions.
func (c Collection) Lookup(v Version) *Entry {
	for i := range c {
		if c[i].Version == v {
			return &c[i]
		}
	}
	return nil
}

// Latest returns the highest version present in the collection, and
// false when the collection is empty.
func (c Collection) Latest() (Version, bool) {
	if len(c) == 0 {
		return Version{}, false
	}
	latest := c[0].Version
	for _, e := range c[1:] {
		if e.Version.IsNewer(latest) {
			latest = e.Version
		}
	}
	return latest, true
}

// Provider is anything that can supply a release-notes collection,
// letting host apps plug in static data or a builder.
type Provider interface {
	WhatsNewCollection() Collection
}

// WhatsNewCollection implements Provider, so a Collection is its own
// provider.
func (c Collection) WhatsNewCollection() Collection {
	return c
}
