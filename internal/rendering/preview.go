package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Markup is rendered preview HTML. Export services treat it as opaque.
type Markup string

// placeholderName is shown until the user enters a name
const placeholderName = "Your Name"

// baseTemplate produces the template-independent markup. Section order is fixed here.
const baseTemplate = `<h1>{{.Name}}</h1>
{{- with .Doc.Personal.JobTitle}}<div class="job-title">{{.}}</div>{{end}}
<div class="contact-info">
{{- with .Doc.Personal.Phone}}<span>📞 {{.}}</span>{{end}}
{{- with .Doc.Personal.Email}}<span>✉️ {{.}}</span>{{end}}
{{- with .Doc.Personal.LinkedIn}}<span>🔗 <a href="{{.}}">LinkedIn</a></span>{{end}}
{{- with .Doc.Personal.Portfolio}}<span>🌐 <a href="{{.}}">Portfolio</a></span>{{end}}
{{- with .Doc.Personal.Address}}<span>📍 {{.}}</span>{{end -}}
</div>
{{- with .Doc.Summary}}
<div class="section" data-section="summary"><div class="section-title">Professional Summary</div><p>{{template "lines" .}}</p></div>
{{- end}}
{{- with .Doc.Education}}
<div class="section" data-section="education"><div class="section-title">Education</div>
{{- range .}}<div class="item">
{{- with .Degree}}<div class="item-header">{{.}}</div>{{end}}
{{- if .School}}<div>{{.School}}{{with .Board}}, {{.}}{{end}}</div>{{end}}
{{- if or .Year .Percent}}<div class="item-sub">{{join " | " .Year .Percent}}</div>{{end -}}
</div>{{end -}}
</div>
{{- end}}
{{- with .Doc.Experience}}
<div class="section" data-section="experience"><div class="section-title">Experience</div>
{{- range .}}<div class="item">
{{- if or .Title .Company}}<div class="item-header">{{join " at " .Title .Company}}</div>{{end}}
{{- if or .Start .End}}<div class="item-sub">{{.Start}} - {{.End}}</div>{{end}}
{{- with .Desc}}<p>{{template "lines" .}}</p>{{end -}}
</div>{{end -}}
</div>
{{- end}}
{{- with .Doc.Skills}}
<div class="section" data-section="skills"><div class="section-title">Skills</div><p>
{{- range .}}<span class="skill-tag">{{.}}</span> {{end -}}
</p></div>
{{- end}}
{{- with .Doc.Projects}}
<div class="section" data-section="projects"><div class="section-title">Projects</div>
{{- range .}}<div class="item">
{{- with .Title}}<div class="item-header">{{.}}</div>{{end}}
{{- with .Desc}}<p>{{template "lines" .}}</p>{{end}}
{{- with .Tech}}<div class="item-sub">Technologies: {{.}}</div>{{end}}
{{- with .Link}}<div><a href="{{.}}">Project Link</a></div>{{end -}}
</div>{{end -}}
</div>
{{- end}}
{{- with .Doc.Certifications}}
<div class="section" data-section="certifications"><div class="section-title">Certifications</div>
{{- range .}}<div class="item">
{{- with .Name}}<div class="item-header">{{.}}</div>{{end}}
{{- if or .Org .Year}}<div class="item-sub">{{join " · " .Org .Year}}</div>{{end -}}
</div>{{end -}}
</div>
{{- end}}
{{- range .Extras}}
<div class="section" data-section="{{.Kind}}"><div class="section-title">{{.Title}}</div><p>{{template "lines" .Text}}</p></div>
{{- end}}`

// linesTemplate renders multi-line text with <br> separators, escaping each line.
const linesTemplate = `{{define "lines"}}{{range $i, $line := splitLines .}}{{if $i}}<br>{{end}}{{$line}}{{end}}{{end}}`

var base = template.Must(template.New("preview").Funcs(template.FuncMap{
	"join":       joinNonEmpty,
	"splitLines": splitLines,
}).Parse(linesTemplate + baseTemplate))

// extraTitles maps extras to their section headings
var extraTitles = map[types.ExtraKind]string{
	types.ExtraLanguages: "Languages",
	types.ExtraHobbies:   "Hobbies",
	types.ExtraVolunteer: "Volunteer",
}

type extraView struct {
	Kind  types.ExtraKind
	Title string
	Text  string
}

type previewData struct {
	Doc    types.ResumeDocument
	Name   string
	Extras []extraView
}

// Render produces the preview markup for a document in the given template.
// It is deterministic: the same inputs always give byte-identical output.
// An empty template falls back to the document's own selection.
func Render(doc types.ResumeDocument, tmpl types.Template) (Markup, error) {
	if tmpl == "" {
		tmpl = doc.SelectedTemplate
	}
	tmpl = tmpl.OrDefault()

	raw, err := renderBase(doc)
	if err != nil {
		return "", err
	}

	out, err := applyTemplate(raw, tmpl)
	if err != nil {
		return "", err
	}
	return Markup(out), nil
}

// renderBase executes the template-independent pass.
func renderBase(doc types.ResumeDocument) (string, error) {
	data := previewData{
		Doc:  doc,
		Name: doc.Personal.FullName,
	}
	if data.Name == "" {
		data.Name = placeholderName
	}
	for _, kind := range types.ExtraKinds {
		if doc.Extras.Shown(kind) {
			data.Extras = append(data.Extras, extraView{
				Kind:  kind,
				Title: extraTitles[kind],
				Text:  doc.Extras.Text(kind),
			})
		}
	}

	var sb strings.Builder
	if err := base.Execute(&sb, data); err != nil {
		return "", &RenderError{
			Stage:   StageBase,
			Message: "failed to execute preview template",
			Cause:   err,
		}
	}
	return sb.String(), nil
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// splitLines splits text on newlines, normalising CRLF.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
