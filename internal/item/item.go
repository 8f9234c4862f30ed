// Package item defines the element stream a document parser hands to the
// structuring engine. Parsers emit heterogeneous items; rather than assuming
// a fixed shape, consumers probe the capability interfaces below.
package item

import (
	"io"
	"strings"
)

// Item is one element of the ordered stream produced by a parser.
// Type returns a lowercase type tag such as "section_header", "text",
// "list_item", "table" or "picture". Header-ness is judged by substring
// ("header", "heading" or "section"), so custom parsers may introduce
// their own tags.
type Item interface {
	Type() string
}

// Capability interfaces probed for text content, in priority order.
// Changing the probe order changes observable output; Text documents
// the contract.
type (
	// Texter exposes the primary text field.
	Texter interface{ Text() string }
	// Contenter exposes a generic content field.
	Contenter interface{ Content() string }
	// Valuer exposes a generic value field.
	Valuer interface{ Value() string }
)

// Caption capabilities. Items may carry a collection of captions or a
// single caption field.
type (
	// MultiCaptioned exposes an ordered caption collection.
	MultiCaptioned interface{ Captions() []string }
	// Captioned exposes a single caption.
	Captioned interface{ Caption() string }
)

// TableData exposes the raw cell grid, used as a structural fallback when a
// table item yields no usable text.
type TableData interface {
	Rows() [][]string
}

// ImageContent exposes binary image data or an external reference.
type ImageContent interface {
	// ImageBytes returns inline binary data, or nil when the image is
	// externally referenced.
	ImageBytes() []byte
	// ImageRef returns a filename/path reference, or "" when inline.
	ImageRef() string
}

// Text extracts usable text from an item by probing, in order: Texter,
// Contenter, Valuer. The first accessor yielding a non-empty string after
// trimming wins. Missing accessors are a normal outcome, not an error.
func Text(it Item) (string, bool) {
	if it == nil {
		return "", false
	}
	if t, ok := it.(Texter); ok {
		if s := strings.TrimSpace(t.Text()); s != "" {
			return s, true
		}
	}
	if c, ok := it.(Contenter); ok {
		if s := strings.TrimSpace(c.Content()); s != "" {
			return s, true
		}
	}
	if v, ok := it.(Valuer); ok {
		if s := strings.TrimSpace(v.Value()); s != "" {
			return s, true
		}
	}
	return "", false
}

// Caption extracts a caption: a caption collection is tried first (first
// non-empty entry), then the single caption field.
func Caption(it Item) (string, bool) {
	if it == nil {
		return "", false
	}
	if mc, ok := it.(MultiCaptioned); ok {
		for _, c := range mc.Captions() {
			if s := strings.TrimSpace(c); s != "" {
				return s, true
			}
		}
	}
	if c, ok := it.(Captioned); ok {
		if s := strings.TrimSpace(c.Caption()); s != "" {
			return s, true
		}
	}
	return "", false
}

// Positioned pairs an item with its nesting level as reported by the parser.
type Positioned struct {
	Item  Item
	Level int
}

// Source is an ordered item stream. Next returns io.EOF when the stream is
// exhausted; any other error is a stream-level hard failure and propagates
// to the caller.
type Source interface {
	Next() (Item, int, error)
}

type sliceSource struct {
	items []Positioned
	pos   int
}

// NewSliceSource wraps an in-memory item slice as a Source.
func NewSliceSource(items []Positioned) Source {
	return &sliceSource{items: items}
}

func (s *sliceSource) Next() (Item, int, error) {
	if s.pos >= len(s.items) {
		return nil, 0, io.EOF
	}
	p := s.items[s.pos]
	s.pos++
	return p.Item, p.Level, nil
}
