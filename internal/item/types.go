package item

// Concrete item types emitted by the parsers in internal/parser. Downstream
// code should not switch on these types directly; it probes the capability
// interfaces instead.

// Header is a heading element.
type Header struct {
	Body  string
	Depth int // heading depth as reported by the source format (1 = h1)
}

func (h *Header) Type() string { return "section_header" }
func (h *Header) Text() string { return h.Body }

// Paragraph is a plain text block.
type Paragraph struct {
	Body string
}

func (p *Paragraph) Type() string { return "text" }
func (p *Paragraph) Text() string { return p.Body }

// ListEntry is a single list item.
type ListEntry struct {
	Body string
}

func (l *ListEntry) Type() string { return "list_item" }
func (l *ListEntry) Text() string { return l.Body }

// Table is a tabular element with an optional flattened text rendering and
// the raw cell grid.
type Table struct {
	Body    string // flattened text, may be empty
	Grid    [][]string
	CapList []string
}

func (t *Table) Type() string { return "table" }
func (t *Table) Text() string { return t.Body }

func (t *Table) Rows() [][]string { return t.Grid }

func (t *Table) Captions() []string { return t.CapList }

// Picture is an image element, carried either inline or as an external
// reference.
type Picture struct {
	Data    []byte // inline binary, nil when referenced
	Ref     string // external filename/path, "" when inline
	Alt     string
	CapText string
}

func (p *Picture) Type() string { return "picture" }

func (p *Picture) ImageBytes() []byte { return p.Data }
func (p *Picture) ImageRef() string { return p.Ref }

// Caption falls back to alt text when no explicit caption exists.
func (p *Picture) Caption() string {
	if p.CapText != "" {
		return p.CapText
	}
	return p.Alt
}
