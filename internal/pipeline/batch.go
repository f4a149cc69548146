package pipeline

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/dgallion1/billdigest/internal/classify"
	"github.com/dgallion1/billdigest/internal/extract"
	"github.com/dgallion1/billdigest/internal/inference"
)

// Document is one source file's extracted text.
type Document struct {
	Filename string
	// Index is the position in modification-time order.
	Index int
	Lines []string
}

// BatchOptions configures ProcessBatch.
type BatchOptions struct {
	IssuerHeader string
	Classifier   *classify.Classifier
	Log          *slog.Logger
}

// Batch is the classified content of one month's folder.
type Batch struct {
	// Records are in document order.
	Records []bill.Record
	Renames *RenamePlan
	// Skipped lists files that failed the issuer check.
	Skipped []string
}

// Lines returns one summary line per record, in document order.
func (b *Batch) Lines() []string {
	lines := make([]string, len(b.Records))
	for i, r := range b.Records {
		lines[i] = r.Line()
	}
	return lines
}

// ProcessBatch classifies every document, resolves water periods across the
// batch and builds the rename plan. Any unrecognized or unparseable document
// aborts the whole batch.
func ProcessBatch(docs []Document, opts BatchOptions) (*Batch, error) {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = classify.Default()
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	batch := &Batch{Renames: NewRenamePlan()}

	// Phase 1: classify.
	var slots []bill.WaterSlot
	for _, doc := range docs {
		if !extract.IsIssuer(doc.Lines, opts.IssuerHeader) {
			log.Debug("skipping document from another issuer", "file", doc.Filename)
			batch.Skipped = append(batch.Skipped, doc.Filename)
			continue
		}
		log.Info("processing", "file", doc.Filename)

		out, err := classifier.Classify(classify.Input{
			Filename: doc.Filename,
			Index:    doc.Index,
			Fields:   extract.FromLines(doc.Lines),
		})
		if err != nil {
			return nil, err
		}
		switch o := out.(type) {
		case bill.Record:
			batch.Records = append(batch.Records, o)
		case bill.WaterSlot:
			slots = append(slots, o)
		default:
			return nil, fmt.Errorf("%s: unexpected outcome %T", doc.Filename, out)
		}
	}

	// Phase 2: water periods need the whole batch.
	water, err := inference.ResolveWater(slots)
	if err != nil {
		return nil, err
	}
	if len(water) != len(slots) {
		return nil, fmt.Errorf("%w: %d slots, %d records", bill.ErrWaterResolution, len(slots), len(water))
	}
	batch.Records = append(batch.Records, water...)
	sort.SliceStable(batch.Records, func(i, j int) bool {
		return batch.Records[i].Index < batch.Records[j].Index
	})

	for _, r := range batch.Records {
		if err := batch.Renames.Add(r.Filename, r.TargetName()); err != nil {
			return nil, err
		}
	}
	if batch.Renames.Len() == 0 {
		return nil, bill.ErrNoDocumentsFound
	}
	return batch, nil
}
