package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-builder/internal/types"
)

// Decoration values applied by the template transforms
const (
	minimalHeadingStyle   = "font-weight:400;"
	fresherHeadingStyle   = "color:#1E3A8A;"
	creativeWrapper       = `<div class="template-creative" style="background:#f0f9ff; padding:1rem; border-radius:0.5rem;"></div>`
	executiveSectionStyle = "color:#F59E0B;"
)

// transform decorates parsed base markup in place. Transforms never add, drop or
// reorder content.
type transform func(doc *goquery.Document)

var transforms = map[types.Template]transform{
	types.TemplateModern: func(*goquery.Document) {},
	types.TemplateMinimal: func(doc *goquery.Document) {
		doc.Find("h1").SetAttr("style", minimalHeadingStyle)
	},
	types.TemplateFresher: func(doc *goquery.Document) {
		doc.Find("h1").SetAttr("style", fresherHeadingStyle)
	},
	types.TemplateCreative: func(doc *goquery.Document) {
		doc.Find("body").Contents().WrapAllHtml(creativeWrapper)
	},
	types.TemplateExecutive: func(doc *goquery.Document) {
		doc.Find(".section-title").SetAttr("style", executiveSectionStyle)
	},
}

// applyTemplate parses the base markup, runs the template's transform and serialises
// the body back to markup. Every template goes through the same parse/serialise path
// so that undecorated content is byte-identical across templates.
func applyTemplate(raw string, tmpl types.Template) (string, error) {
	fn, ok := transforms[tmpl]
	if !ok {
		return "", &RenderError{
			Stage:    StageTransform,
			Template: string(tmpl),
			Message:  "unknown template",
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", &RenderError{
			Stage:    StageTransform,
			Template: string(tmpl),
			Message:  "failed to parse base markup",
			Cause:    err,
		}
	}

	fn(doc)

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", &RenderError{
			Stage:    StageTransform,
			Template: string(tmpl),
			Message:  "failed to serialise markup",
			Cause:    err,
		}
	}
	return out, nil
}
