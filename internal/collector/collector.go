// The collector drives one collection session: snapshot the feed,
// normalize it into blocks, skip everything the ledger has seen, hand
// new blocks to the extraction strategy, advance, repeat until the feed
// is exhausted or the iteration budget runs out.

package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/feed"
	"go-vagas-automation/internal/models"
	"go-vagas-automation/internal/normalize"
)

// State is the terminal condition of a session.
type State int

const (
	// Scanning is the in-progress state; never returned from Run.
	Scanning State = iota
	// Exhausted means the stagnation heuristic detected end-of-feed.
	Exhausted
	// Capped means the iteration budget ran out first.
	Capped
	// Failed means no snapshot could be obtained at all.
	Failed
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Exhausted:
		return "exhausted"
	case Capped:
		return "capped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Extractor is the classify+extract step of the pipeline. Two
// interchangeable strategies implement it: the direct heuristic path and
// the model-assisted path that batches raw captures at session end.
type Extractor interface {
	// ProcessBlock handles one newly-seen block. Records may be returned
	// immediately (heuristic path) or buffered until Flush (model path).
	ProcessBlock(ctx context.Context, blk Block) ([]models.JobRecord, error)

	// Flush is called exactly once when the session ends and returns any
	// records the strategy was still holding.
	Flush(ctx context.Context) ([]models.JobRecord, error)
}

// Block is one unseen candidate feed item plus the page-wide link
// context from the iteration it was discovered in.
type Block struct {
	Index int
	Text  string
	Page  *PageLinks
}

// PageLinks is what the current page's anchor elements resolve to,
// grouped the way extraction needs them.
type PageLinks struct {
	// Profiles maps author display names to canonical profile URLs.
	Profiles map[string]string
	// Shortened holds the platform's shortened listing links, consumed
	// in discovery order by blocks that carry no external link.
	Shortened []string
	// Candidates is every listing-shaped link, for the AI capture path.
	Candidates []string
}

// TakeShortened pops the next unconsumed shortened link, or "".
func (p *PageLinks) TakeShortened() string {
	if p == nil || len(p.Shortened) == 0 {
		return ""
	}
	link := p.Shortened[0]
	p.Shortened = p.Shortened[1:]
	return link
}

// CandidatesNear returns up to n candidate links positioned around the
// block at idx. Association by position is approximate; the extraction
// model picks the relevant one.
func (p *PageLinks) CandidatesNear(idx, n int) []string {
	if p == nil || n <= 0 {
		return nil
	}
	start := idx * n
	if start >= len(p.Candidates) {
		return nil
	}
	end := start + n
	if end > len(p.Candidates) {
		end = len(p.Candidates)
	}
	return p.Candidates[start:end]
}

// Config bounds one collection session.
type Config struct {
	Source          models.Source
	Delimiters      normalize.Delimiters
	PlatformDomain  string
	MaxIterations   int
	Warmup          int
	StagnationLimit int
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 30
	}
	if c.Warmup <= 0 {
		c.Warmup = 5
	}
	if c.StagnationLimit <= 0 {
		c.StagnationLimit = 3
	}
	return c
}

// Result is what a session hands back. Err is only set for session-fatal
// conditions; a run that found nothing new is a valid empty Result.
type Result struct {
	Records    []models.JobRecord
	State      State
	Iterations int
	Err        error
}

// Session is one collection run over one source. Sessions are strictly
// sequential; the ledger is never shared between concurrent sessions.
type Session struct {
	cfg    Config
	feed   feed.Feed
	ledger *dedup.Ledger
	ext    Extractor
}

func NewSession(cfg Config, f feed.Feed, ledger *dedup.Ledger, ext Extractor) *Session {
	return &Session{cfg: cfg.withDefaults(), feed: f, ledger: ledger, ext: ext}
}

// Run executes the session loop until the termination heuristic fires or
// the iteration cap is reached. Per-block failures are absorbed; a
// failed snapshot counts as a zero-progress iteration.
func (s *Session) Run(ctx context.Context) Result {
	var records []models.JobRecord
	state := Scanning
	prevNew := -1
	stagnant := 0
	iterations := 0

	for iter := 1; iter <= s.cfg.MaxIterations; iter++ {
		iterations = iter
		newBlocks := 0

		snap, err := s.feed.Snapshot(ctx)
		switch {
		case errors.Is(err, feed.ErrNotAuthenticated):
			return Result{Records: records, State: Failed, Iterations: iter, Err: err}
		case err != nil && iter == 1:
			//could not reach the feed at all
			return Result{State: Failed, Iterations: iter, Err: fmt.Errorf("feed unreachable: %w", err)}
		case err != nil:
			//iteration stall: counts as zero new blocks toward stagnation
			log.Printf("  ⚠️ Snapshot failed on iteration %d: %v", iter, err)
		default:
			page := s.groupLinks(snap.Links)
			for idx, text := range normalize.Split(snap.Text, s.cfg.Delimiters) {
				fp := dedup.Fingerprint(text)
				if s.ledger.Seen(fp) {
					continue
				}
				s.ledger.Record(fp)
				newBlocks++

				recs, err := s.ext.ProcessBlock(ctx, Block{Index: idx, Text: text, Page: page})
				if err != nil {
					log.Printf("  ⚠️ Skipping block: %v", err)
					continue
				}
				records = append(records, recs...)
			}
		}

		if iter%5 == 0 {
			log.Printf("  Iteration %d: %d new blocks, %d records so far", iter, newBlocks, len(records))
		}

		//stagnation heuristic: the new-block count holding steady after
		//the warm-up window means nothing else is loading
		if iter > s.cfg.Warmup && newBlocks == prevNew {
			stagnant++
			if stagnant >= s.cfg.StagnationLimit {
				log.Printf("  End of feed after %d iterations (no new content)", iter)
				state = Exhausted
				break
			}
		} else {
			stagnant = 0
		}
		prevNew = newBlocks

		if err := s.feed.Advance(ctx); err != nil {
			log.Printf("  ⚠️ Advance failed on iteration %d: %v", iter, err)
		}
	}

	if state == Scanning {
		state = Capped
	}

	flushed, err := s.ext.Flush(ctx)
	if err != nil {
		log.Printf("  ⚠️ Extractor flush incomplete: %v", err)
	}
	records = append(records, flushed...)

	return Result{Records: records, State: state, Iterations: iterations}
}

// groupLinks sorts the page's anchors into the buckets extraction cares
// about. Tracking params are stripped so the same target compares equal.
func (s *Session) groupLinks(links []feed.Link) *PageLinks {
	page := &PageLinks{Profiles: make(map[string]string)}
	for _, l := range links {
		href, _, _ := strings.Cut(l.Href, "?")
		switch {
		case strings.Contains(href, "/in/"):
			name := strings.TrimSpace(l.Text)
			if len(name) > 2 && len(name) < 50 {
				page.Profiles[name] = href
			}
			page.Candidates = append(page.Candidates, href)
		case strings.Contains(href, "lnkd.in"):
			page.Shortened = append(page.Shortened, href)
			page.Candidates = append(page.Candidates, href)
		case strings.Contains(href, "/jobs/"):
			page.Candidates = append(page.Candidates, href)
		}
	}
	return page
}
