package parser

import (
	"strings"
	"testing"

	"github.com/dmaycock/structdoc/internal/item"
)

func TestTextParser_Paragraphs(t *testing.T) {
	input := "First paragraph line one.\nLine two of the same paragraph.\n\nSecond paragraph."
	items, err := (&TextParser{}).Parse(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(items))
	}
	text, _ := item.Text(items[0].Item)
	if !strings.Contains(text, "Line two") {
		t.Errorf("expected joined paragraph lines, got %q", text)
	}
	if items[1].Item.Type() != "text" {
		t.Errorf("expected text item, got %q", items[1].Item.Type())
	}
}

func TestTextParser_ListMarkers(t *testing.T) {
	input := "Intro line.\n\n- first entry\n* second entry\n+ third entry\n12. numbered entry\n"
	items, err := (&TextParser{}).Parse(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 1 paragraph + 4 list entries, got %d", len(items))
	}
	for i, want := range []string{"first entry", "second entry", "third entry", "numbered entry"} {
		entry := items[i+1].Item
		if entry.Type() != "list_item" {
			t.Errorf("item %d: expected list_item, got %q", i+1, entry.Type())
			continue
		}
		if text, _ := item.Text(entry); text != want {
			t.Errorf("item %d: expected %q, got %q", i+1, want, text)
		}
	}
}

func TestTextParser_ListInterruptsParagraph(t *testing.T) {
	input := "Some prose\n- a list entry\nmore prose"
	items, err := (&TextParser{}).Parse(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected paragraph, list entry, paragraph; got %d items", len(items))
	}
	if items[1].Item.Type() != "list_item" {
		t.Errorf("expected list entry in the middle, got %q", items[1].Item.Type())
	}
}

func TestTextParser_Empty(t *testing.T) {
	items, err := (&TextParser{}).Parse(strings.NewReader("\n\n  \n"), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A whitespace-only line still flushes nothing but is not itself content.
	for _, p := range items {
		if text, ok := item.Text(p.Item); ok && strings.TrimSpace(text) == "" {
			t.Errorf("unexpected blank item %q", text)
		}
	}
}

func TestIsListLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"- entry", true},
		{"* entry", true},
		{"+ entry", true},
		{"3. entry", true},
		{"42. entry", true},
		{"-not a list", false},
		{"3.14 is pi", false},
		{".5 fraction", false},
		{"plain text", false},
	}
	for _, tc := range cases {
		if got := isListLine(tc.line); got != tc.want {
			t.Errorf("isListLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestForFile_Dispatch(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.csv", "d.html", "e.htm", "f.pdf", "g.docx"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
	if _, err := ForFile("archive.zip", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("report.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdfParser, ok := p.(*PDFParser)
	if !ok {
		t.Fatalf("expected *PDFParser, got %T", p)
	}
	if !pdfParser.FallbackPdftotext {
		t.Error("expected pdftotext fallback enabled from options")
	}

	p, err = ForFile("report.pdf", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback disabled by default")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("report.PDF") {
		t.Error("expected case-insensitive extension check")
	}
	if IsSupportedExtension("archive.tar.gz") {
		t.Error("expected unsupported extension rejected")
	}
}
