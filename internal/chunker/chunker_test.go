package chunker

import (
	"strings"
	"testing"

	"github.com/dmaycock/structdoc/internal/document"
)

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
	if got := EstimateTokens("x"); got != 1 {
		t.Errorf("expected minimum of 1 token, got %d", got)
	}
	// 100 words at ~1.33 tokens per word.
	text := strings.Repeat("word ", 100)
	if got := EstimateTokens(text); got != 133 {
		t.Errorf("expected 133 tokens for 100 words, got %d", got)
	}
}

func contentDoc(records ...document.Record) *document.Document {
	doc := document.New()
	doc.Content = records
	return doc
}

func sentence(n int) string {
	return strings.TrimSpace(strings.Repeat("some words go here ", n)) + "."
}

func TestChunkDocument_Empty(t *testing.T) {
	chunks := ChunkDocument(document.New(), DefaultConfig())
	if len(chunks) != 0 {
		t.Errorf("expected no chunks from empty document, got %d", len(chunks))
	}
}

func TestChunkDocument_SingleGroup(t *testing.T) {
	cfg := Config{ChunkSize: 1000, ChunkOverlap: 50, MinChunk: 5}
	doc := contentDoc(
		document.Record{Text: sentence(10), SectionHierarchy: []string{"Intro"}},
		document.Record{Text: sentence(10), SectionHierarchy: []string{"Intro"}},
	)

	chunks := ChunkDocument(doc, cfg)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if len(chunks[0].Breadcrumb) != 1 || chunks[0].Breadcrumb[0] != "Intro" {
		t.Errorf("expected breadcrumb [Intro], got %v", chunks[0].Breadcrumb)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
}

func TestChunkDocument_GroupsBySectionPath(t *testing.T) {
	cfg := Config{ChunkSize: 1000, ChunkOverlap: 50, MinChunk: 5}
	doc := contentDoc(
		document.Record{Text: sentence(10), SectionHierarchy: []string{"Intro"}},
		document.Record{Text: sentence(10), SectionHierarchy: []string{"Methods"}},
		document.Record{Text: sentence(10), SectionHierarchy: []string{"Methods", "Sampling"}},
	)

	chunks := ChunkDocument(doc, cfg)
	if len(chunks) != 3 {
		t.Fatalf("expected three chunks for three section paths, got %d", len(chunks))
	}
	if chunks[1].Breadcrumb[0] != "Methods" {
		t.Errorf("unexpected breadcrumb %v", chunks[1].Breadcrumb)
	}
	if len(chunks[2].Breadcrumb) != 2 {
		t.Errorf("expected two-level breadcrumb, got %v", chunks[2].Breadcrumb)
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("expected sequential index %d, got %d", i, c.Index)
		}
	}
}

func TestChunkDocument_SplitsLongSection(t *testing.T) {
	cfg := Config{ChunkSize: 60, ChunkOverlap: 10, MinChunk: 5}
	var records []document.Record
	for range 10 {
		records = append(records, document.Record{
			Text:             sentence(10),
			SectionHierarchy: []string{"Body"},
		})
	}
	chunks := ChunkDocument(contentDoc(records...), cfg)
	if len(chunks) < 2 {
		t.Fatalf("expected long section split into multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if EstimateTokens(c.Text) > cfg.ChunkSize*2 {
			t.Errorf("chunk %d grossly oversized: %d tokens", c.Index, EstimateTokens(c.Text))
		}
	}
}

func TestChunkDocument_MinChunkFilters(t *testing.T) {
	cfg := Config{ChunkSize: 1000, ChunkOverlap: 50, MinChunk: 100}
	doc := contentDoc(
		document.Record{Text: "just a few words", SectionHierarchy: []string{"Intro"}},
	)
	chunks := ChunkDocument(doc, cfg)
	if len(chunks) != 0 {
		t.Errorf("expected tiny section filtered out, got %d chunks", len(chunks))
	}
}

func TestChunkDocument_BreadcrumbIsCopy(t *testing.T) {
	cfg := Config{ChunkSize: 1000, ChunkOverlap: 50, MinChunk: 5}
	hier := []string{"Intro"}
	doc := contentDoc(document.Record{Text: sentence(10), SectionHierarchy: hier})

	chunks := ChunkDocument(doc, cfg)
	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	chunks[0].Breadcrumb[0] = "mutated"
	if hier[0] != "Intro" {
		t.Error("expected breadcrumb to be a copy of the hierarchy")
	}
}
