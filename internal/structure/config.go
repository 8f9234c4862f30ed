package structure

import "fmt"

// Config controls header classification and payload filtering.
type Config struct {
	// MainHeaderMinLength is the text length above which a header is
	// treated as a main section header.
	MainHeaderMinLength int `yaml:"main_header_min_length" json:"main_header_min_length"`

	// MinTextLength is the minimum cleaned text length for a text or
	// list record; shorter text is silently dropped.
	MinTextLength int `yaml:"min_text_length" json:"min_text_length"`

	// DetectReferences enables the references-region override.
	DetectReferences bool `yaml:"detect_references" json:"detect_references"`

	// ReferenceKeywords are matched whole-word, case-insensitively,
	// against main header text.
	ReferenceKeywords []string `yaml:"reference_keywords" json:"reference_keywords"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MainHeaderMinLength: 40,
		MinTextLength:       10,
		DetectReferences:    true,
		ReferenceKeywords:   []string{"references", "bibliography", "citations", "works cited"},
	}
}

// Validate surfaces configuration errors at startup rather than mid-stream.
func (c Config) Validate() error {
	if c.MainHeaderMinLength < 1 {
		return fmt.Errorf("main_header_min_length must be positive, got %d", c.MainHeaderMinLength)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("min_text_length must not be negative, got %d", c.MinTextLength)
	}
	if c.DetectReferences && len(c.ReferenceKeywords) == 0 {
		return fmt.Errorf("detect_references is enabled but reference_keywords is empty")
	}
	return nil
}

// withDefaults fills unset fields, mirroring DefaultConfig.
func (c Config) withDefaults() Config {
	if c.MainHeaderMinLength <= 0 {
		c.MainHeaderMinLength = 40
	}
	if c.MinTextLength < 0 {
		c.MinTextLength = 10
	}
	if len(c.ReferenceKeywords) == 0 {
		c.ReferenceKeywords = DefaultConfig().ReferenceKeywords
	}
	return c
}

// mainSectionKeywords mark headers that start a top-level document section
// regardless of length or casing.
var mainSectionKeywords = []string{
	"abstract", "introduction", "background", "literature review",
	"methodology", "methods", "materials and methods",
	"results", "findings", "analysis", "discussion",
	"conclusion", "conclusions", "implications", "limitations",
	"future work", "references", "bibliography", "acknowledgments",
	"appendix", "appendices",
}
