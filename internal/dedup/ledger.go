package dedup

import (
	"hash/fnv"

	mapset "github.com/deckarep/golang-set/v2"
)

// fingerprintPrefix bounds how much of a block feeds the hash. Feeds
// re-render the same post with slightly different tails (reaction counts,
// "ver mais" folds), so only the leading text is stable.
const fingerprintPrefix = 200

// Fingerprint returns a stable, cheap hash of the leading text of a
// block. Two blocks with equal fingerprints are treated as the same
// listing, even across scroll iterations.
func Fingerprint(text string) uint64 {
	runes := []rune(text)
	if len(runes) > fingerprintPrefix {
		runes = runes[:fingerprintPrefix]
	}
	h := fnv.New64a()
	h.Write([]byte(string(runes)))
	return h.Sum64()
}

// Ledger tracks which blocks and application links have already been
// handled during one collection session. It is session-scoped on
// purpose: it suppresses re-emission caused by re-rendering while
// scrolling, and provides no cross-run memory. Cross-run uniqueness
// belongs to the persistence layer.
//
// A Ledger is only ever mutated by its session's single collection loop,
// so no locking is needed.
type Ledger struct {
	fingerprints mapset.Set[uint64]
	links        mapset.Set[string]
}

// NewLedger returns an empty ledger for one collection session.
func NewLedger() *Ledger {
	return &Ledger{
		fingerprints: mapset.NewThreadUnsafeSet[uint64](),
		links:        mapset.NewThreadUnsafeSet[string](),
	}
}

// Seen reports whether a fingerprint was already recorded this session.
func (l *Ledger) Seen(fp uint64) bool {
	return l.fingerprints.Contains(fp)
}

// Record marks a fingerprint as handled.
func (l *Ledger) Record(fp uint64) {
	l.fingerprints.Add(fp)
}

// ReserveLink claims a canonical application link for this session.
// Returns true if the link was newly reserved, false if another block
// already claimed it. Two differently-worded posts pointing at the same
// application link are the same listing.
func (l *Ledger) ReserveLink(link string) bool {
	if link == "" {
		return false
	}
	return l.links.Add(link)
}
