// Package structure implements the single-pass structuring engine: header
// classification, section tracking, payload building and aggregation into a
// document.Document.
package structure

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmaycock/structdoc/internal/document"
	"github.com/dmaycock/structdoc/internal/imaging"
	"github.com/dmaycock/structdoc/internal/item"
	"github.com/dmaycock/structdoc/internal/textnorm"
)

// Drop reasons counted in document metadata. Per-item failures are never
// errors; the item is dropped and processing continues.
const (
	DropNoText    = "no_text"
	DropShortText = "short_text"
	DropBadImage  = "undecodable_image"
)

// Builder is the single-pass structuring engine: it consumes an ordered item
// stream, maintains the section context, classifies each item and appends
// structured records to the document buckets in arrival order. One Builder
// serves exactly one document run; concurrent runs need separate Builders.
type Builder struct {
	cfg        Config
	classifier *Classifier
	log        *slog.Logger

	ctx        SectionContext
	doc        *document.Document
	totalItems int
	drops      map[string]int
}

// NewBuilder creates an engine run with the given configuration.
func NewBuilder(cfg Config, log *slog.Logger) *Builder {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		cfg:        cfg,
		classifier: NewClassifier(cfg),
		log:        log,
		doc:        document.New(),
		drops:      make(map[string]int),
	}
}

// Context exposes the live section context for inspection.
func (b *Builder) Context() *SectionContext { return &b.ctx }

// Add consumes the next (item, level) pair from the stream. The nesting
// level is reported by the parser but not used for section tracking; the
// header heuristics decide hierarchy.
func (b *Builder) Add(it item.Item, level int) {
	_ = level
	b.totalItems++

	v := b.classifier.Classify(it)
	if v.IsHeader {
		b.ctx.applyHeader(v)
		if v.IsReferences {
			b.log.Debug("detected references section", "header", v.Text)
		}
		return
	}

	// References-context override: every non-header item in the region
	// becomes a reference entry regardless of its underlying type.
	if b.ctx.InReferences() {
		if rec, ok := b.textRecord(it); ok {
			b.doc.References = append(b.doc.References, rec)
		}
		return
	}

	if _, ok := it.(item.TableData); ok {
		rec := b.tableRecord(it)
		rec.Label = fmt.Sprintf("table_%d", len(b.doc.Tables)+1)
		b.doc.Tables = append(b.doc.Tables, rec)
		return
	}

	if img, ok := it.(item.ImageContent); ok {
		rec, ok := b.imageRecord(it, img)
		if !ok {
			return
		}
		rec.Label = fmt.Sprintf("image_%d", len(b.doc.Images)+1)
		b.doc.Images = append(b.doc.Images, rec)
		return
	}

	if rec, ok := b.textRecord(it); ok {
		b.doc.Content = append(b.doc.Content, rec)
	}
}

// textRecord builds a text/list payload, applying the minimum length filter.
func (b *Builder) textRecord(it item.Item) (document.Record, bool) {
	text, ok := item.Text(it)
	if !ok {
		b.drop(DropNoText)
		return document.Record{}, false
	}
	cleaned := textnorm.Clean(text)
	if utf8.RuneCountInString(cleaned) < b.cfg.MinTextLength {
		b.drop(DropShortText)
		return document.Record{}, false
	}
	rec := document.Record{
		Type: it.Type(),
		Text: cleaned,
	}
	b.stampContext(&rec)
	return rec, true
}

// tableRecord builds a table payload. The content is never empty: when the
// item yields no text, the raw cell grid is rendered, and failing that the
// item itself is stringified.
func (b *Builder) tableRecord(it item.Item) document.Record {
	content, ok := item.Text(it)
	if ok {
		content = textnorm.Clean(content)
	} else if td, isTable := it.(item.TableData); isTable && len(td.Rows()) > 0 {
		content = renderGrid(td.Rows())
	} else {
		content = fmt.Sprintf("%v", it)
	}

	rec := document.Record{
		Content: content,
		Type:    it.Type(),
	}
	if caption, ok := item.Caption(it); ok {
		rec.Caption = textnorm.Clean(caption)
	}
	b.stampContext(&rec)
	return rec
}

// imageRecord builds an image payload: an external reference passes through
// as-is, inline bytes are sniffed and validated before being base64-encoded.
// A decode failure drops the single item and the run continues.
func (b *Builder) imageRecord(it item.Item, img item.ImageContent) (document.Record, bool) {
	rec := document.Record{Type: it.Type()}

	if ref := img.ImageRef(); ref != "" {
		rec.ImageFilename = ref
	} else {
		data := img.ImageBytes()
		if len(data) == 0 {
			b.drop(DropBadImage)
			return document.Record{}, false
		}
		if _, _, err := imaging.Validate(data); err != nil {
			b.log.Warn("dropping undecodable image", "error", err)
			b.drop(DropBadImage)
			return document.Record{}, false
		}
		rec.Base64Data = base64.StdEncoding.EncodeToString(data)
		rec.ImageFormat = imaging.Sniff(data).String()
	}

	if caption, ok := item.Caption(it); ok {
		rec.Caption = textnorm.Clean(caption)
	}
	b.stampContext(&rec)
	return rec, true
}

// stampContext attaches the hierarchy snapshot and convenience fields.
func (b *Builder) stampContext(rec *document.Record) {
	rec.SectionHierarchy = b.ctx.Hierarchy()
	rec.ParentSection = b.ctx.MainSection()
	rec.Subsection = b.ctx.Subsection()
}

func (b *Builder) drop(reason string) {
	b.drops[reason]++
}

// Finalize stamps metadata and returns the finished Document. The Builder
// must not be used afterwards.
func (b *Builder) Finalize() *document.Document {
	dropped := 0
	for _, n := range b.drops {
		dropped += n
	}
	b.doc.Metadata = document.Metadata{
		TotalItems:          b.totalItems,
		DroppedItems:        dropped,
		ProcessingTimestamp: time.Now().UTC(),
		Configuration: document.ConfigSnapshot{
			MainHeaderMinLength: b.cfg.MainHeaderMinLength,
			MinTextLength:       b.cfg.MinTextLength,
			DetectReferences:    b.cfg.DetectReferences,
			ReferenceKeywords:   append([]string(nil), b.cfg.ReferenceKeywords...),
		},
	}
	if dropped > 0 {
		b.doc.Metadata.DropReasons = b.drops
	}
	return b.doc
}

// Structure drains an item stream through a fresh Builder. A stream-level
// failure propagates; the partially populated Document is returned alongside
// the error so callers may keep the valid prefix.
func Structure(src item.Source, cfg Config, log *slog.Logger) (*document.Document, error) {
	b := NewBuilder(cfg, log)
	for {
		it, level, err := src.Next()
		if err == io.EOF {
			return b.Finalize(), nil
		}
		if err != nil {
			return b.Finalize(), fmt.Errorf("item stream: %w", err)
		}
		b.Add(it, level)
	}
}

// renderGrid flattens a cell grid into a pipe-separated text block.
func renderGrid(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, " | "))
	}
	return sb.String()
}
