package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmaycock/structdoc/internal/document"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc() *document.Document {
	doc := document.New()
	doc.Metadata.TotalItems = 3
	doc.Content = []document.Record{
		{Type: "text", Text: "hello", SectionHierarchy: []string{"Intro"}, ParentSection: "Intro"},
	}
	return doc
}

func TestStore_PutGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := Meta{
		DocID:       "doc-1",
		Filename:    "report.md",
		Title:       "Report",
		ContentHash: "hash-1",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.Put(ctx, meta, testDoc()); err != nil {
		t.Fatalf("put: %v", err)
	}

	doc, got, err := s.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "report.md" || got.Title != "Report" || got.ContentHash != "hash-1" {
		t.Errorf("unexpected meta: %+v", got)
	}
	if got.TotalItems != 3 {
		t.Errorf("expected total items from document metadata, got %d", got.TotalItems)
	}
	if !got.CreatedAt.Equal(meta.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", meta.CreatedAt, got.CreatedAt)
	}
	if len(doc.Content) != 1 || doc.Content[0].Text != "hello" {
		t.Errorf("unexpected document payload: %+v", doc.Content)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, _, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_PutReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	meta := Meta{DocID: "doc-1", Filename: "a.md", CreatedAt: time.Now()}

	if err := s.Put(ctx, meta, testDoc()); err != nil {
		t.Fatalf("first put: %v", err)
	}
	meta.Filename = "b.md"
	if err := s.Put(ctx, meta, testDoc()); err != nil {
		t.Fatalf("second put: %v", err)
	}

	_, got, err := s.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "b.md" {
		t.Errorf("expected replacement, got %q", got.Filename)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 1 {
		t.Errorf("expected 1 row after upsert, got %d", len(metas))
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := Meta{DocID: "old", Filename: "old.md", CreatedAt: time.Now().Add(-time.Hour)}
	newer := Meta{DocID: "new", Filename: "new.md", CreatedAt: time.Now()}
	if err := s.Put(ctx, older, testDoc()); err != nil {
		t.Fatalf("put older: %v", err)
	}
	if err := s.Put(ctx, newer, testDoc()); err != nil {
		t.Fatalf("put newer: %v", err)
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(metas))
	}
	if metas[0].DocID != "new" {
		t.Errorf("expected newest first, got %q", metas[0].DocID)
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, Meta{DocID: "doc-1", Filename: "a.md", CreatedAt: time.Now()}, testDoc()); err != nil {
		t.Fatalf("put: %v", err)
	}

	deleted, err := s.Delete(ctx, "doc-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
	}
	if _, _, err := s.Get(ctx, "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	deleted, err = s.Delete(ctx, "doc-1")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("expected no-op delete to report false")
	}
}

func TestStore_FindByHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	meta := Meta{DocID: "doc-1", Filename: "a.md", ContentHash: "abc", CreatedAt: time.Now()}
	if err := s.Put(ctx, meta, testDoc()); err != nil {
		t.Fatalf("put: %v", err)
	}

	docID, err := s.FindByHash(ctx, "abc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if docID != "doc-1" {
		t.Errorf("expected doc-1, got %q", docID)
	}

	docID, err = s.FindByHash(ctx, "missing")
	if err != nil || docID != "" {
		t.Errorf("expected empty result for unknown hash, got %q %v", docID, err)
	}

	// Empty hashes never match anything.
	docID, err = s.FindByHash(ctx, "")
	if err != nil || docID != "" {
		t.Errorf("expected empty hash to short-circuit, got %q %v", docID, err)
	}
}
