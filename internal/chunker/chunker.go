// Package chunker turns a structured Document's content records into
// token-sized, hierarchy-tagged chunks suitable for retrieval pipelines.
package chunker

import (
	"strings"

	"github.com/dmaycock/structdoc/internal/document"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Overlap between consecutive chunks in tokens.
	MinChunk     int // Minimum chunk size to emit.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

// Chunk is a sized text segment with its section breadcrumb.
type Chunk struct {
	Text       string   `json:"text"`
	Index      int      `json:"index"`
	Breadcrumb []string `json:"breadcrumb"`
}

// ChunkDocument groups consecutive content records that share a hierarchy
// snapshot and splits each group into chunks. Reference records are not
// chunked; bibliographies are retrieved whole or not at all.
func ChunkDocument(doc *document.Document, cfg Config) []Chunk {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = 100
	}

	var chunks []Chunk
	index := 0

	var groupText strings.Builder
	var groupPath []string

	flush := func() {
		text := strings.TrimSpace(groupText.String())
		groupText.Reset()
		if text == "" {
			return
		}
		for _, part := range splitText(text, cfg.ChunkSize, cfg.ChunkOverlap) {
			if EstimateTokens(part) < cfg.MinChunk {
				continue
			}
			bc := make([]string, len(groupPath))
			copy(bc, groupPath)
			chunks = append(chunks, Chunk{Text: part, Index: index, Breadcrumb: bc})
			index++
		}
	}

	for _, rec := range doc.Content {
		if !samePath(groupPath, rec.SectionHierarchy) {
			flush()
			groupPath = rec.SectionHierarchy
		}
		if groupText.Len() > 0 {
			groupText.WriteString("\n\n")
		}
		groupText.WriteString(rec.Text)
	}
	flush()

	return chunks
}

func samePath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// splitText breaks text into chunks of approximately targetTokens, with
// overlap carried between consecutive chunks.
func splitText(text string, targetTokens, overlapTokens int) []string {
	var result []string
	var current strings.Builder
	currentTokens := 0

	emit := func() {
		result = append(result, current.String())
		overlap := overlapText(current.String(), overlapTokens)
		current.Reset()
		currentTokens = 0
		if overlap != "" {
			current.WriteString(overlap)
			currentTokens = EstimateTokens(overlap)
		}
	}

	for _, para := range splitParagraphs(text) {
		units := []string{para}
		if EstimateTokens(para) > targetTokens {
			units = splitSentences(para)
		}
		for _, unit := range units {
			unitTokens := EstimateTokens(unit)
			if currentTokens+unitTokens > targetTokens && currentTokens > 0 {
				emit()
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(unit)
			currentTokens += unitTokens
		}
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}
	return result
}

func splitParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}
	return sentences
}

// overlapText extracts the last targetTokens worth of text for overlap.
func overlapText(text string, targetTokens int) string {
	words := strings.Fields(text)
	// Approximate: 1.33 tokens per word.
	targetWords := int(float64(targetTokens) / 1.33)
	if targetWords <= 0 || len(words) <= targetWords {
		return ""
	}
	return strings.Join(words[len(words)-targetWords:], " ")
}
