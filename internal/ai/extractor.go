package ai

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"go-vagas-automation/internal/classify"
	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/extract"
	"go-vagas-automation/internal/models"
)

const (
	// captureTextLimit bounds what is stored per block during the
	// session; the prompt builder trims further at submission time.
	captureTextLimit = 500
	// linksPerCapture is how many page links are associated with each
	// block by position.
	linksPerCapture = 3

	defaultBatchSize = 20
)

// ModelAssisted is the alternate extraction strategy: it captures raw
// blocks during the session without classifying them, then batches
// everything to the external extraction model at flush time. The ledger
// semantics are the same as the heuristic path; only classify+extract
// moves to the remote side.
type ModelAssisted struct {
	analyzer  Analyzer
	ledger    *dedup.Ledger
	source    models.Source
	batchSize int
	captures  []models.Capture
}

func NewModelAssisted(analyzer Analyzer, ledger *dedup.Ledger, source models.Source, batchSize int) *ModelAssisted {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &ModelAssisted{
		analyzer:  analyzer,
		ledger:    ledger,
		source:    source,
		batchSize: batchSize,
	}
}

// ProcessBlock only captures; nothing is emitted until Flush.
func (m *ModelAssisted) ProcessBlock(ctx context.Context, blk collector.Block) ([]models.JobRecord, error) {
	m.captures = append(m.captures, models.Capture{
		ID:    len(m.captures) + 1,
		Text:  truncateRunes(blk.Text, captureTextLimit),
		Links: blk.Page.CandidatesNear(blk.Index, linksPerCapture),
	})
	return nil, nil
}

// Flush submits the captured blocks in fixed-size batches, one at a
// time. A failed batch is logged and skipped; the remaining batches
// still run, so partial results always come back.
func (m *ModelAssisted) Flush(ctx context.Context) ([]models.JobRecord, error) {
	var records []models.JobRecord

	for start := 0; start < len(m.captures); start += m.batchSize {
		end := start + m.batchSize
		if end > len(m.captures) {
			end = len(m.captures)
		}
		batch := m.captures[start:end]
		batchNum := start/m.batchSize + 1

		verdicts, err := m.analyzer.AnalyzeBatch(ctx, batch)
		if err != nil {
			log.Printf("  ⚠️ Batch %d failed, skipping: %v", batchNum, err)
			continue
		}

		byID := make(map[int]models.Capture, len(batch))
		for _, c := range batch {
			byID[c.ID] = c
		}

		accepted := 0
		for _, v := range verdicts {
			rec, ok := m.record(v, byID[v.ID])
			if !ok {
				continue
			}
			records = append(records, rec)
			accepted++
		}
		log.Printf("  Batch %d: %d analyzed, %d accepted", batchNum, len(verdicts), accepted)
	}

	return records, nil
}

// record maps one model verdict back into the pipeline's record shape.
// The model's relevance and contact judgments are trusted; links still
// go through the same canonicalization and session reservation as the
// heuristic path.
func (m *ModelAssisted) record(v Verdict, capture models.Capture) (models.JobRecord, bool) {
	if !v.IsRelevant {
		return models.JobRecord{}, false
	}

	channel := mapChannel(v.ContactMethod)
	if channel == models.ContactUndefined {
		return models.JobRecord{}, false
	}

	link := extract.CanonicalLink(strings.TrimSpace(v.URL))
	if link != "" && !m.ledger.ReserveLink(link) {
		return models.JobRecord{}, false
	}

	category := extract.DetectCategory(capture.Text + " " + v.Title)

	title := strings.TrimSpace(v.Title)
	if title == "" {
		title = category
	}
	if utf8.RuneCountInString(title) > 100 {
		title = string([]rune(title)[:100])
	}

	company := strings.TrimSpace(v.Company)
	if utf8.RuneCountInString(company) > 50 {
		company = string([]rune(company)[:50])
	}

	return models.JobRecord{
		Title:         title,
		Company:       company,
		Category:      category,
		Source:        m.source,
		ApplyLink:     link,
		Modality:      mapModality(v.Modality),
		Channel:       channel,
		Email:         strings.TrimSpace(v.Email),
		AuthorProfile: strings.TrimSpace(v.Profile),
		CollectedAt:   time.Now(),
	}, true
}

func mapChannel(method string) models.ContactChannel {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "link":
		return models.ContactLink
	case "email":
		return models.ContactEmail
	case "contact":
		return models.ContactMessage
	}
	return models.ContactUndefined
}

func mapModality(s string) models.Modality {
	switch classify.Fold(strings.TrimSpace(s)) {
	case "remoto", "remote":
		return models.ModalityRemote
	case "hibrido":
		return models.ModalityHybrid
	case "presencial":
		return models.ModalityOnSite
	}
	return models.ModalityUnspecified
}
