package extract

import (
	"context"

	"go-vagas-automation/internal/classify"
	"go-vagas-automation/internal/collector"
	"go-vagas-automation/internal/dedup"
	"go-vagas-automation/internal/models"
)

// Heuristic is the direct extraction strategy: classify the block
// locally, run the pattern rules, emit immediately. No external calls.
type Heuristic struct {
	classifier *classify.Classifier
	ledger     *dedup.Ledger
	fields     *Fields
}

func NewHeuristic(classifier *classify.Classifier, ledger *dedup.Ledger, fields *Fields) *Heuristic {
	return &Heuristic{classifier: classifier, ledger: ledger, fields: fields}
}

func (h *Heuristic) ProcessBlock(ctx context.Context, blk collector.Block) ([]models.JobRecord, error) {
	if !h.classifier.Relevant(blk.Text) {
		return nil, nil
	}

	rec := h.fields.Extract(blk)

	//a listing with no way to apply is worthless; drop it silently
	if rec.Channel == models.ContactUndefined {
		return nil, nil
	}

	//two differently-worded posts resolving to one application link are
	//the same listing; the first one through keeps it
	if rec.ApplyLink != "" && !h.ledger.ReserveLink(rec.ApplyLink) {
		return nil, nil
	}

	return []models.JobRecord{*rec}, nil
}

func (h *Heuristic) Flush(ctx context.Context) ([]models.JobRecord, error) {
	return nil, nil
}
