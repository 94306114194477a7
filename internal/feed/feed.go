// The feed package is the boundary to the browser/session layer: it
// hands the pipeline a text+link snapshot of the current page and an
// action to advance the feed. It never owns login or cookie lifecycle.

package feed

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when the platform redirects to a login
// wall. It is session-fatal: the caller gives up on this source and
// moves on to the next one.
var ErrNotAuthenticated = errors.New("feed requires an authenticated session")

// Link is one hyperlink element visible on the page: its display text
// and resolvable target URL.
type Link struct {
	Text string
	Href string
}

// Snapshot is the rendered state of the feed at one instant.
type Snapshot struct {
	Text  string
	Links []Link
}

// Feed supplies page snapshots and advances the feed between them.
type Feed interface {
	// Snapshot returns the current page text and hyperlink elements.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Advance triggers the next content load (scroll or pagination
	// control) and waits a bounded settle delay.
	Advance(ctx context.Context) error
}
