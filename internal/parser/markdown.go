package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dmaycock/structdoc/internal/item"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark with the table
// extension enabled.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]item.Positioned, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var items []item.Positioned

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := extractText(node, src)
			items = append(items, item.Positioned{
				Item:  &item.Header{Body: title, Depth: node.Level},
				Level: node.Level,
			})

		case *ast.List:
			for li := node.FirstChild(); li != nil; li = li.NextSibling() {
				if t := extractText(li, src); t != "" {
					items = append(items, item.Positioned{Item: &item.ListEntry{Body: t}})
				}
			}

		case *east.Table:
			items = append(items, item.Positioned{Item: mdTable(node, src)})

		case *ast.Paragraph:
			// Images are emitted as separate picture items; remaining
			// inline text becomes a text item.
			pictures := collectImages(node, src)
			if t := extractText(node, src); t != "" {
				items = append(items, item.Positioned{Item: &item.Paragraph{Body: t}})
			}
			for _, pic := range pictures {
				items = append(items, item.Positioned{Item: pic})
			}

		default:
			if t := extractText(n, src); t != "" {
				items = append(items, item.Positioned{Item: &item.Paragraph{Body: t}})
			}
		}
	}

	return items, nil
}

// mdTable flattens a goldmark table node into a cell grid.
func mdTable(table *east.Table, src []byte) *item.Table {
	var grid [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, extractText(cell, src))
			}
			grid = append(grid, cells)
		}
	}
	return &item.Table{Grid: grid}
}

// collectImages finds image inlines anywhere under n.
func collectImages(n ast.Node, src []byte) []*item.Picture {
	var pics []*item.Picture
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if img, ok := c.(*ast.Image); ok {
				pics = append(pics, &item.Picture{
					Ref: string(img.Destination),
					Alt: extractText(img, src),
				})
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return pics
}

// extractText gets the text content of a goldmark AST node. Blocks without
// inline children (code blocks) contribute their raw lines; image inlines
// are skipped, their alt text is handled by collectImages.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.Image:
			return
		default:
			if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(src))
				}
				return
			}
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}
