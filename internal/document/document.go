// Package document holds the structured output model produced by the
// structuring engine: a Document with kind-tagged record buckets, plus the
// derived section summary and section filter views.
package document

import "time"

// Record is a single structured item. Which payload fields are populated
// depends on the bucket it lives in: text/reference records carry Type and
// Text, table records Content/Caption/Label, image records Label plus either
// an external file reference or inline base64 data.
type Record struct {
	Type    string `json:"type,omitempty"`
	Text    string `json:"text,omitempty"`
	Content string `json:"content,omitempty"`
	Caption string `json:"caption,omitempty"`
	Label   string `json:"label,omitempty"`

	ImageFilename string `json:"image_filename,omitempty"`
	Base64Data    string `json:"base64_data,omitempty"`
	ImageFormat   string `json:"image_format,omitempty"`

	// SectionHierarchy is a snapshot of the hierarchy path at emission
	// time; later section changes never alter an emitted record.
	SectionHierarchy []string `json:"section_hierarchy"`
	ParentSection    string   `json:"parent_section,omitempty"`
	Subsection       string   `json:"subsection,omitempty"`
}

// ConfigSnapshot records the engine options a Document was built with.
type ConfigSnapshot struct {
	MainHeaderMinLength int      `json:"main_header_min_length"`
	MinTextLength       int      `json:"min_text_length"`
	DetectReferences    bool     `json:"detect_references"`
	ReferenceKeywords   []string `json:"reference_keywords"`
}

// Metadata is stamped once, when the item stream ends.
type Metadata struct {
	// TotalItems counts every (item, level) pair consumed, including
	// headers and dropped items. Bucket sizes summing to less than
	// TotalItems is expected, not an error.
	TotalItems          int            `json:"total_items"`
	DroppedItems        int            `json:"dropped_items"`
	DropReasons         map[string]int `json:"drop_reasons,omitempty"`
	ProcessingTimestamp time.Time      `json:"processing_timestamp"`
	Configuration       ConfigSnapshot `json:"configuration"`
}

// Document is the finished structured output. It is populated incrementally
// during a processing run and read-only after finalization.
type Document struct {
	Metadata   Metadata `json:"metadata"`
	Content    []Record `json:"content"`
	Tables     []Record `json:"tables"`
	Images     []Record `json:"images"`
	References []Record `json:"references"`
}

// New returns an empty Document with non-nil buckets so JSON output renders
// them as [] rather than null.
func New() *Document {
	return &Document{
		Content:    []Record{},
		Tables:     []Record{},
		Images:     []Record{},
		References: []Record{},
	}
}
