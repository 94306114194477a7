package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/feed"
	"go-vagas-automation/internal/models"
	"go-vagas-automation/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDelims = normalize.Delimiters{Start: "Publicação no feed"}

// post builds one feed block long enough to clear the minimum length.
func post(id string) string {
	return fmt.Sprintf("Vaga %s para o time de produto, candidaturas abertas, detalhes completos no texto do anúncio", id)
}

func pageOf(posts ...string) string {
	var b strings.Builder
	for _, p := range posts {
		b.WriteString("Publicação no feed\n")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

// fakeFeed replays a scripted sequence of snapshots; the last page
// repeats once the script runs out.
type fakeFeed struct {
	pages    []string
	errAt    map[int]error
	calls    int
	advanced int
}

func (f *fakeFeed) Snapshot(ctx context.Context) (*feed.Snapshot, error) {
	idx := f.calls
	f.calls++
	if err := f.errAt[idx]; err != nil {
		return nil, err
	}
	if idx >= len(f.pages) {
		idx = len(f.pages) - 1
	}
	return &feed.Snapshot{Text: f.pages[idx]}, nil
}

func (f *fakeFeed) Advance(ctx context.Context) error {
	f.advanced++
	return nil
}

type fakeExtractor struct {
	processed []string
	failOn    string
	flush     []models.JobRecord
	flushed   bool
}

func (e *fakeExtractor) ProcessBlock(ctx context.Context, blk Block) ([]models.JobRecord, error) {
	if e.failOn != "" && strings.Contains(blk.Text, e.failOn) {
		return nil, errors.New("pattern failure")
	}
	e.processed = append(e.processed, blk.Text)
	return []models.JobRecord{{Title: blk.Text, Channel: models.ContactEmail}}, nil
}

func (e *fakeExtractor) Flush(ctx context.Context) ([]models.JobRecord, error) {
	e.flushed = true
	return e.flush, nil
}

func newTestSession(cfg Config, f *fakeFeed, ext Extractor) *Session {
	cfg.Delimiters = testDelims
	return NewSession(cfg, f, dedup.NewLedger(), ext)
}

func TestSessionSkipsSeenBlocks(t *testing.T) {
	//the same rendered block across iterations yields exactly one record
	f := &fakeFeed{pages: []string{pageOf(post("A"))}}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 3, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.Len(t, ext.processed, 1)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, Capped, res.State)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 3, f.advanced)
	assert.NoError(t, res.Err)
}

func TestSessionStagnationExhausts(t *testing.T) {
	//an unchanging page after the warm-up window ends the session well
	//before the iteration cap
	f := &fakeFeed{pages: []string{pageOf(post("A"))}}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 30, Warmup: 2, StagnationLimit: 3}, f, ext)

	res := s.Run(context.Background())

	assert.Equal(t, Exhausted, res.State)
	assert.Equal(t, 5, res.Iterations)
	assert.Len(t, res.Records, 1)
}

func TestSessionCapped(t *testing.T) {
	//fresh content on every iteration keeps the session scanning until
	//the budget runs out
	f := &fakeFeed{pages: []string{
		pageOf(post("A")),
		pageOf(post("A"), post("B")),
		pageOf(post("B"), post("C")),
		pageOf(post("C"), post("D")),
	}}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 4, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.Equal(t, Capped, res.State)
	assert.Equal(t, 4, res.Iterations)
	assert.Len(t, res.Records, 4)
}

func TestSessionFirstSnapshotFailure(t *testing.T) {
	f := &fakeFeed{pages: []string{pageOf(post("A"))}, errAt: map[int]error{0: errors.New("net timeout")}}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 5, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.Equal(t, Failed, res.State)
	assert.Equal(t, 1, res.Iterations)
	assert.Empty(t, res.Records)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "feed unreachable")
}

func TestSessionUnauthenticatedMidRun(t *testing.T) {
	//a login wall is fatal even after progress was made; what was
	//collected so far is still returned
	f := &fakeFeed{pages: []string{pageOf(post("A"))}, errAt: map[int]error{1: feed.ErrNotAuthenticated}}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 5, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.Equal(t, Failed, res.State)
	assert.True(t, errors.Is(res.Err, feed.ErrNotAuthenticated))
	assert.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Iterations)
}

func TestSessionTransientSnapshotFailure(t *testing.T) {
	//a snapshot failure past the first iteration is a stall, not a fatal
	f := &fakeFeed{
		pages: []string{pageOf(post("A")), "", pageOf(post("A"), post("B"))},
		errAt: map[int]error{1: errors.New("evaluate timeout")},
	}
	ext := &fakeExtractor{}
	s := newTestSession(Config{MaxIterations: 3, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.Equal(t, Capped, res.State)
	assert.NoError(t, res.Err)
	assert.Len(t, res.Records, 2)
}

func TestSessionSkipsFailingBlock(t *testing.T) {
	f := &fakeFeed{pages: []string{pageOf(post("A"), post("B"))}}
	ext := &fakeExtractor{failOn: "Vaga B"}
	s := newTestSession(Config{MaxIterations: 1, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.NoError(t, res.Err)
	require.Len(t, res.Records, 1)
	assert.Contains(t, res.Records[0].Title, "Vaga A")
}

func TestSessionAppendsFlushedRecords(t *testing.T) {
	f := &fakeFeed{pages: []string{pageOf(post("A"))}}
	ext := &fakeExtractor{flush: []models.JobRecord{{Title: "buffered", Channel: models.ContactLink}}}
	s := newTestSession(Config{MaxIterations: 2, Warmup: 10}, f, ext)

	res := s.Run(context.Background())

	assert.True(t, ext.flushed)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "buffered", res.Records[1].Title)
}

func TestGroupLinks(t *testing.T) {
	s := newTestSession(Config{}, &fakeFeed{}, &fakeExtractor{})

	page := s.groupLinks([]feed.Link{
		{Text: "Maria Silva", Href: "https://www.linkedin.com/in/msilva?trk=feed"},
		{Text: "x", Href: "https://www.linkedin.com/in/short"}, //name too short for the profile map
		{Text: "Ver vaga", Href: "https://lnkd.in/abc?trk=1"},
		{Text: "Designer", Href: "https://www.linkedin.com/jobs/view/123?ref=li"},
		{Text: "Início", Href: "https://www.linkedin.com/feed/"},
	})

	assert.Equal(t, map[string]string{"Maria Silva": "https://www.linkedin.com/in/msilva"}, page.Profiles)
	assert.Equal(t, []string{"https://lnkd.in/abc"}, page.Shortened)
	assert.Len(t, page.Candidates, 4)
	assert.NotContains(t, page.Candidates, "https://www.linkedin.com/feed/")
}

func TestPageLinksTakeShortened(t *testing.T) {
	p := &PageLinks{Shortened: []string{"a", "b"}}
	assert.Equal(t, "a", p.TakeShortened())
	assert.Equal(t, "b", p.TakeShortened())
	assert.Equal(t, "", p.TakeShortened())

	var nilPage *PageLinks
	assert.Equal(t, "", nilPage.TakeShortened())
}

func TestPageLinksCandidatesNear(t *testing.T) {
	p := &PageLinks{Candidates: []string{"a", "b", "c", "d", "e"}}
	assert.Equal(t, []string{"a", "b", "c"}, p.CandidatesNear(0, 3))
	assert.Equal(t, []string{"d", "e"}, p.CandidatesNear(1, 3))
	assert.Nil(t, p.CandidatesNear(2, 3))
}
