package whatsnew

import "context"

// Migration is a one-time task tied to a specific version, run at most
// once per version per install. Migrations are awaited strictly
// sequentially in collection order; an error is logged and the failed
// version stays unmarked so the migration retries on a later presentation.
type Migration func(ctx context.Context) error

// Feature is one row of release notes: a symbol, a title and a subtitle.
// Pure display data.
type Feature struct {
	Symbol   string
	Title    string
	Subtitle string
}

// Action is a button on the sheet. Handler may be nil.
type Action struct {
	Title   string
	Handler func()
}

// Entry describes one release's notes: version, title, feature rows,
// actions and an optional migration. Immutable once constructed; its
// identity is its version.
type Entry struct {
	Version   Version
	Title     string
	Features  []Feature
	Primary   Action
	Secondary *Action
	Migration Migration
}
