// Package textnorm cleans text extracted from document items.
package textnorm

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes raw item text: trims, decodes HTML entities, applies
// Unicode NFKC normalization, collapses horizontal whitespace runs to a
// single space and 3+ consecutive newlines to exactly 2. Clean is a pure
// transform and idempotent, Clean(Clean(x)) == Clean(x), with one caveat:
// entity decoding is single-pass, so double-encoded input such as
// "&amp;amp;" loses one level of encoding per call.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strings.TrimSpace(text)
	cleaned = html.UnescapeString(cleaned)
	cleaned = norm.NFKC.String(cleaned)
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	cleaned = newlineRun.ReplaceAllString(cleaned, "\n\n")

	return strings.TrimSpace(cleaned)
}

// CollapseAll flattens every whitespace run, newlines included, to a single
// space. Used where a one-line rendering is needed (labels, summaries).
func CollapseAll(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
