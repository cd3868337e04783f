package export

import (
	"bytes"
	"html/template"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// wordStyle is the stylesheet embedded in DOC exports
const wordStyle = `body { font-family: Arial, sans-serif; padding: 20px; }
h1 { color: #1E3A8A; }
.skill-tag { display: inline-block; background: #10B981; color: white; padding: 0.2rem 0.5rem; border-radius: 2rem; margin: 0.1rem; }
.contact-info { margin-bottom: 1rem; }
.section-title { font-weight: 600; border-bottom: 1px solid #ccc; margin-bottom: 0.5rem; }`

// printStyle lays the page out for US letter with half-inch margins
const printStyle = `@page { size: letter portrait; margin: 0.5in; }
body { font-family: Arial, sans-serif; margin: 0; color: #111827; }
h1 { margin: 0 0 0.25rem; }
.job-title { color: #4B5563; margin-bottom: 0.5rem; }
.contact-info { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 1rem; }
.section { margin-bottom: 1rem; page-break-inside: avoid; }
.section-title { font-weight: 600; border-bottom: 1px solid #ccc; margin-bottom: 0.5rem; }
.item { margin-bottom: 0.5rem; }
.item-header { font-weight: 600; }
.item-sub { color: #6B7280; font-size: 0.9em; }
.skill-tag { display: inline-block; background: #10B981; color: white; padding: 0.2rem 0.5rem; border-radius: 2rem; margin: 0.1rem; }`

const pageTemplate = `<!DOCTYPE html><html><head><meta charset="UTF-8"><title>Resume</title><style>{{.Style}}</style></head><body>{{.Body}}</body></html>`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Style template.CSS
	Body  template.HTML
}

// WordDocument wraps preview markup in the HTML document Word opens as a .doc file.
func WordDocument(markup rendering.Markup) ([]byte, error) {
	return wrap(markup, wordStyle)
}

// PrintPage wraps preview markup in a standalone, print-ready HTML page.
func PrintPage(markup rendering.Markup) ([]byte, error) {
	return wrap(markup, printStyle)
}

// wrap embeds markup verbatim. Markup comes from the preview renderer, which
// has already escaped all user text.
func wrap(markup rendering.Markup, style string) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, pageData{
		Style: template.CSS(style),
		Body:  template.HTML(markup),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
