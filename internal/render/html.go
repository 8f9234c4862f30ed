// Package render produces a standalone HTML visualization of a structured
// Document: a stats card, a table of contents, and the content, table,
// image and reference records in reading order.
package render

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/dmaycock/structdoc/internal/document"
)

type pageData struct {
	Title      string
	Meta       document.Metadata
	TOC        []tocEntry
	Content    []document.Record
	Tables     []document.Record
	Images     []document.Record
	References []document.Record
}

type tocEntry struct {
	Section     string
	Subsections []string
}

// WriteHTML renders doc as a self-contained HTML page.
func WriteHTML(w io.Writer, doc *document.Document, title string) error {
	summary := doc.SectionSummary()
	sections := make([]string, 0, len(summary))
	for name := range summary {
		sections = append(sections, name)
	}
	sort.Strings(sections)

	toc := make([]tocEntry, 0, len(sections))
	for _, name := range sections {
		toc = append(toc, tocEntry{Section: name, Subsections: summary[name].Subsections})
	}

	data := pageData{
		Title:      title,
		Meta:       doc.Metadata,
		TOC:        toc,
		Content:    doc.Content,
		Tables:     doc.Tables,
		Images:     doc.Images,
		References: doc.References,
	}
	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"breadcrumb": func(path []string) string { return strings.Join(path, " › ") },
	"imageSrc": func(rec document.Record) template.URL {
		if rec.ImageFilename != "" {
			return template.URL(rec.ImageFilename)
		}
		format := rec.ImageFormat
		if format == "" {
			format = "png"
		}
		return template.URL("data:image/" + format + ";base64," + rec.Base64Data)
	},
	"paragraphs": func(text string) []string { return strings.Split(text, "\n\n") },
	"anchor": func(label string) string {
		return strings.ToLower(strings.ReplaceAll(label, " ", "-"))
	},
}).Parse(pageSource))

var pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0 auto; max-width: 920px; padding: 2rem; color: #1f2430; }
.stats-card { background: #f4f6fa; border-radius: 8px; padding: 1rem 1.5rem; margin-bottom: 2rem; }
.stats-grid { display: flex; flex-wrap: wrap; gap: 1.5rem; }
.stat-item strong { display: block; font-size: 0.8rem; text-transform: uppercase; color: #5c667a; }
nav.toc { border-left: 3px solid #4a7dff; padding-left: 1rem; margin-bottom: 2rem; }
nav.toc ul { list-style: none; padding-left: 1rem; }
.record { margin-bottom: 1.25rem; }
.record .meta { font-size: 0.75rem; color: #8a93a6; margin-bottom: 0.25rem; }
table { border-collapse: collapse; margin: 0.5rem 0; }
td, th { border: 1px solid #d4d9e4; padding: 0.3rem 0.6rem; }
.table-block { background: #fafbfd; border: 1px solid #e3e7ef; border-radius: 6px; padding: 0.75rem; white-space: pre-wrap; font-family: ui-monospace, monospace; font-size: 0.85rem; }
.image-block img { max-width: 100%; border-radius: 6px; }
.caption { font-style: italic; color: #5c667a; font-size: 0.85rem; }
.references li { margin-bottom: 0.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<div class="stats-card">
  <div class="stats-grid">
    <div class="stat-item"><strong>Total items</strong>{{.Meta.TotalItems}}</div>
    <div class="stat-item"><strong>Dropped</strong>{{.Meta.DroppedItems}}</div>
    <div class="stat-item"><strong>Content</strong>{{len .Content}}</div>
    <div class="stat-item"><strong>Tables</strong>{{len .Tables}}</div>
    <div class="stat-item"><strong>Images</strong>{{len .Images}}</div>
    <div class="stat-item"><strong>References</strong>{{len .References}}</div>
    <div class="stat-item"><strong>Processed</strong>{{.Meta.ProcessingTimestamp.Format "2006-01-02 15:04"}}</div>
  </div>
</div>

{{if .TOC}}
<nav class="toc">
  <h2>Sections</h2>
  <ul>
  {{range .TOC}}
    <li><a href="#{{anchor .Section}}">{{.Section}}</a>
    {{if .Subsections}}<ul>{{range .Subsections}}<li>{{.}}</li>{{end}}</ul>{{end}}
    </li>
  {{end}}
  </ul>
</nav>
{{end}}

<section>
<h2>Content</h2>
{{range .Content}}
<div class="record" {{if .ParentSection}}id="{{anchor .ParentSection}}"{{end}}>
  {{if .SectionHierarchy}}<div class="meta">{{breadcrumb .SectionHierarchy}}</div>{{end}}
  {{range paragraphs .Text}}<p>{{.}}</p>{{end}}
</div>
{{end}}
</section>

{{if .Tables}}
<section>
<h2>Tables</h2>
{{range .Tables}}
<div class="record" id="{{.Label}}">
  <div class="meta">{{.Label}}{{if .SectionHierarchy}} — {{breadcrumb .SectionHierarchy}}{{end}}</div>
  <div class="table-block">{{.Content}}</div>
  {{if .Caption}}<div class="caption">{{.Caption}}</div>{{end}}
</div>
{{end}}
</section>
{{end}}

{{if .Images}}
<section>
<h2>Images</h2>
{{range .Images}}
<div class="record image-block" id="{{.Label}}">
  <div class="meta">{{.Label}}{{if .SectionHierarchy}} — {{breadcrumb .SectionHierarchy}}{{end}}</div>
  <img src="{{imageSrc .}}" alt="{{.Caption}}" loading="lazy">
  {{if .Caption}}<div class="caption">{{.Caption}}</div>{{end}}
</div>
{{end}}
</section>
{{end}}

{{if .References}}
<section class="references">
<h2>References</h2>
<ol>
{{range .References}}<li>{{.Text}}</li>
{{end}}</ol>
</section>
{{end}}

</body>
</html>
`

// PageTitle derives a display title from a filename.
func PageTitle(filename string) string {
	name := filename
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return "Document"
	}
	return fmt.Sprintf("%s - structured view", name)
}
