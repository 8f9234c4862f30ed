// Package parser realizes the layout-analyzer boundary: each parser turns
// raw document bytes into the ordered item stream the structuring engine
// consumes. Parsers report geometry (nesting levels) as-is; all structural
// reasoning happens downstream.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmaycock/structdoc/internal/item"
)

// Parser converts raw document bytes into an ordered item stream.
type Parser interface {
	Parse(r io.Reader, filename string) ([]item.Positioned, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// Options carries per-format parser settings.
type Options struct {
	// PDFFallbackPdftotext enables shelling out to pdftotext when the
	// Go PDF library fails to extract text.
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
