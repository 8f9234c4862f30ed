package structure

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmaycock/structdoc/internal/item"
)

// Verdict is the header classification for one item.
type Verdict struct {
	IsHeader     bool
	IsMain       bool
	IsReferences bool
	Text         string // extracted header text, set when IsHeader
}

// Classifier decides whether an item is a header, whether it starts a main
// section, and whether it marks the onset of the references region.
type Classifier struct {
	cfg        Config
	refPattern *regexp.Regexp
}

// NewClassifier compiles the whole-word references pattern from the
// configured keyword set.
func NewClassifier(cfg Config) *Classifier {
	cfg = cfg.withDefaults()

	words := make([]string, 0, len(cfg.ReferenceKeywords))
	for _, kw := range cfg.ReferenceKeywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		// Multi-word keywords match across any whitespace run.
		words = append(words, strings.Join(strings.Fields(regexp.QuoteMeta(kw)), `\s+`))
	}
	pattern := `(?i)\b(` + strings.Join(words, "|") + `)\b`

	return &Classifier{
		cfg:        cfg,
		refPattern: regexp.MustCompile(pattern),
	}
}

// Classify inspects an item's declared type and text. An item whose type
// looks header-like but whose text is empty is not a header; it falls
// through to ordinary item classification.
func (c *Classifier) Classify(it item.Item) Verdict {
	if !headerLikeType(it.Type()) {
		return Verdict{}
	}
	text, ok := item.Text(it)
	if !ok {
		return Verdict{}
	}

	v := Verdict{IsHeader: true, Text: text}
	v.IsMain = c.isMainHeader(text)
	if v.IsMain && c.cfg.DetectReferences {
		v.IsReferences = c.refPattern.MatchString(text)
	}
	return v
}

// headerLikeType reports whether a declared item type marks a heading.
func headerLikeType(typ string) bool {
	return strings.Contains(typ, "header") ||
		strings.Contains(typ, "heading") ||
		strings.Contains(typ, "section")
}

// isMainHeader applies the main-vs-subsection heuristic: long titles, fully
// uppercase text, known section keywords, or a trailing colon all promote a
// header to a main section. Short ALL-CAPS subsection labels get promoted
// too; the heuristic has no way to tell them apart.
func (c *Classifier) isMainHeader(text string) bool {
	if utf8.RuneCountInString(text) > c.cfg.MainHeaderMinLength {
		return true
	}
	if isUpper(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range mainSectionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return strings.HasSuffix(text, ":")
}

// isUpper reports whether text contains at least one cased rune and no
// lowercase runes.
func isUpper(text string) bool {
	hasCased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
