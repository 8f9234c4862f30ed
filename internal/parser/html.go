package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmaycock/structdoc/internal/item"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]item.Positioned, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []item.Positioned

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				items = append(items, item.Positioned{
					Item:  &item.Header{Body: textContent(n), Depth: level},
					Level: level,
				})
				return // heading text already extracted
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				items = append(items, item.Positioned{Item: htmlTable(n)})
				return
			case "img":
				items = append(items, item.Positioned{Item: &item.Picture{
					Ref: attr(n, "src"),
					Alt: attr(n, "alt"),
				}})
				return
			case "li":
				if t := textContent(n); t != "" {
					items = append(items, item.Positioned{Item: &item.ListEntry{Body: t}})
				}
				return
			case "p", "blockquote", "pre":
				if t := textContent(n); t != "" {
					items = append(items, item.Positioned{Item: &item.Paragraph{Body: t}})
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Parse <body> when present, the whole document otherwise.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return items, nil
}

// htmlTable flattens a <table> element into a cell grid. A <caption> child
// becomes the table caption.
func htmlTable(table *html.Node) *item.Table {
	t := &item.Table{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "caption":
				t.CapList = append(t.CapList, textContent(n))
				return
			case "tr":
				var cells []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
						cells = append(cells, textContent(c))
					}
				}
				t.Grid = append(t.Grid, cells)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	return t
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
