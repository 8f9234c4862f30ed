package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dmaycock/structdoc/internal/item"
)

// TextParser handles plain text files. Blank lines separate paragraphs;
// lines starting with a list marker become list items.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]item.Positioned, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var items []item.Positioned
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		items = append(items, item.Positioned{Item: &item.Paragraph{Body: current.String()}})
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case isListLine(trimmed):
			flush()
			items = append(items, item.Positioned{Item: &item.ListEntry{Body: trimListMarker(trimmed)}})
		default:
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func isListLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return true
	}
	// Numbered list: "1. item"
	dot := strings.IndexByte(line, '.')
	if dot <= 0 || dot+1 >= len(line) || line[dot+1] != ' ' {
		return false
	}
	for _, r := range line[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimListMarker(line string) string {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return strings.TrimSpace(line[2:])
	}
	if dot := strings.IndexByte(line, '.'); dot > 0 {
		return strings.TrimSpace(line[dot+1:])
	}
	return line
}
