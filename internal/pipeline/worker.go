package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmaycock/structdoc/internal/config"
	"github.com/dmaycock/structdoc/internal/item"
	"github.com/dmaycock/structdoc/internal/parser"
	"github.com/dmaycock/structdoc/internal/store"
	"github.com/dmaycock/structdoc/internal/structure"
)

// Worker processes a single document job.
type Worker struct {
	store *store.Store
	log   *slog.Logger
	cfg   config.Config
	stats *ProcessStats
}

func NewWorker(st *store.Store, log *slog.Logger, cfg config.Config, stats *ProcessStats) *Worker {
	return &Worker{
		store: st,
		log:   log,
		cfg:   cfg,
		stats: stats,
	}
}

// Process runs the full parse -> structure -> store pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	started := time.Now()

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, parser.Options{
		PDFFallbackPdftotext: w.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	fileData := job.FileData()
	items, err := p.Parse(bytes.NewReader(fileData), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetFileData(nil)

	// Dedup check against already stored documents.
	hash := ContentHashHex(fileData)
	job.SetContentHash(hash)
	if existing, err := w.store.FindByHash(ctx, hash); err != nil {
		log.Warn("dedup check failed, proceeding", "error", err)
	} else if existing != "" {
		log.Info("duplicate document, skipping", "existing_doc_id", existing)
		job.SetDocID(existing)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Structure.
	job.SetStatus(StatusStructuring, "structuring")
	doc, structErr := structure.Structure(item.NewSliceSource(items), w.cfg.Engine, log)
	if structErr != nil {
		log.Error("structuring failed", "error", structErr)
		job.AddError(fmt.Sprintf("structure: %s", structErr))
		// A stream failure still yields the valid prefix; store it when
		// anything was produced.
		if len(doc.Content)+len(doc.Tables)+len(doc.Images)+len(doc.References) == 0 {
			job.SetStatus(StatusFailed, "structuring")
			return
		}
	}
	job.SetCounts(doc.Metadata.TotalItems, doc.Metadata.DroppedItems,
		len(doc.Content), len(doc.Tables), len(doc.Images), len(doc.References))
	log.Info("structured document",
		"total_items", doc.Metadata.TotalItems,
		"dropped", doc.Metadata.DroppedItems,
		"content", len(doc.Content),
		"tables", len(doc.Tables),
		"images", len(doc.Images),
		"references", len(doc.References))

	// Phase 3: Store, retrying transient database contention.
	job.SetStatus(StatusStoring, "storing")
	meta := store.Meta{
		DocID:       job.DocID,
		Filename:    job.Filename,
		Title:       job.Title,
		ContentHash: hash,
		CreatedAt:   job.CreatedAt,
	}
	var storeErr error
	for attempt := range MaxRetries {
		storeErr = w.store.Put(ctx, meta, doc)
		if storeErr == nil || !IsRetryable(storeErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", storeErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			storeErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if storeErr != nil {
		log.Error("store failed", "error", storeErr)
		job.AddError(fmt.Sprintf("store: %s", storeErr))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	w.stats.Record(time.Since(started).Milliseconds())
	if structErr != nil {
		job.SetStatus(StatusPartial, "done")
		return
	}
	job.SetStatus(StatusCompleted, "done")
}
