package report

import (
	"bytes"
	"finspan/internal/calculator"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minifyhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Document is everything the renderer needs for one run
type Document struct {
	RunID       uuid.UUID
	Symbols     []string
	Tables      []calculator.MetricTable
	GeneratedAt time.Time
}

type section struct {
	ID    string
	Name  string
	Chart string
	Table template.HTML
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// TableMarkdown renders a table as a GFM table: blank corner, years and
// "Average" across the top, one line per company
func TableMarkdown(table calculator.MetricTable) string {
	sb := strings.Builder{}

	writeLine := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(escapeMarkdownCell(c))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	header := table.Header()
	writeLine(header)
	separator := make([]string, len(header))
	for i := range separator {
		separator[i] = "---"
	}
	writeLine(separator)
	for _, row := range table.FormattedRows() {
		writeLine(row)
	}

	return sb.String()
}

func TableHTML(table calculator.MetricTable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(TableMarkdown(table)), &buf); err != nil {
		return "", fmt.Errorf("failed to convert %s table: %w", table.Metric.ID, err)
	}
	return template.HTML(buf.String()), nil
}

var documentTemplate = template.Must(template.New("analysis").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Financial analysis: {{ join .Symbols ", " }}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 2em; color: #222; }
ul.legend { list-style: none; padding: 0; display: flex; gap: 1.5em; }
section { margin-bottom: 3em; }
img { width: 100%; height: auto; }
table { border-collapse: collapse; width: 100%; }
th, td { padding: 0.4em 0.8em; text-align: right; border-bottom: 1px solid #ddd; }
th:first-child, td:first-child { text-align: left; }
p.meta { color: #888; font-size: 0.85em; }
</style>
</head>
<body>
<h1>Financial analysis</h1>
<p class="meta">Run {{ .RunID }} generated {{ .GeneratedAt }}</p>
<ul class="legend">
{{ range .Symbols }}<li>{{ . }}</li>
{{ end }}</ul>
{{ range .Sections }}<section id="{{ .ID }}">
<h2>{{ .Name }}</h2>
{{ if .Chart }}<img src="{{ .Chart }}" alt="{{ .Name }}">{{ end }}
{{ .Table }}
</section>
{{ end }}</body>
</html>
`))

// WriteDocument renders all metric sections into a single minified page.
// charts maps a metric id to the chart path relative to the page; metrics
// without an entry get no image.
func WriteDocument(w io.Writer, doc Document, charts map[string]string) error {
	sections := []section{}
	for _, table := range doc.Tables {
		tableHTML, err := TableHTML(table)
		if err != nil {
			return err
		}
		sections = append(sections, section{
			ID:    table.Metric.ID,
			Name:  table.Metric.Name,
			Chart: charts[table.Metric.ID],
			Table: tableHTML,
		})
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, map[string]interface{}{
		"RunID":       doc.RunID.String(),
		"Symbols":     doc.Symbols,
		"GeneratedAt": doc.GeneratedAt.UTC().Format(time.RFC3339),
		"Sections":    sections,
	})
	if err != nil {
		return fmt.Errorf("failed to execute document template: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &minifyhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	if err := m.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("failed to minify document: %w", err)
	}

	return nil
}
