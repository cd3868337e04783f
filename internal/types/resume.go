// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Template identifies one of the fixed preview templates.
type Template string

// Supported templates
const (
	TemplateModern    Template = "modern"
	TemplateMinimal   Template = "minimal"
	TemplateFresher   Template = "fresher"
	TemplateCreative  Template = "creative"
	TemplateExecutive Template = "executive"
)

// DefaultTemplate is used when a document has no template selected.
const DefaultTemplate = TemplateModern

// Templates lists every supported template in display order.
var Templates = []Template{
	TemplateModern,
	TemplateMinimal,
	TemplateFresher,
	TemplateCreative,
	TemplateExecutive,
}

// ParseTemplate converts a string to a Template, reporting whether it is supported.
func ParseTemplate(s string) (Template, bool) {
	t := Template(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Templates {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// OrDefault returns the template, or DefaultTemplate when it is empty.
func (t Template) OrDefault() Template {
	if t == "" {
		return DefaultTemplate
	}
	return t
}

// Personal holds the contact block shown at the top of the resume.
type Personal struct {
	FullName  string `json:"fullName"`
	JobTitle  string `json:"jobTitle"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Address   string `json:"address"`
}

// ExtraKind names one of the optional trailing sections.
type ExtraKind string

// Extra sections
const (
	ExtraLanguages ExtraKind = "languages"
	ExtraHobbies   ExtraKind = "hobbies"
	ExtraVolunteer ExtraKind = "volunteer"
)

// ExtraKinds lists the extras in render order.
var ExtraKinds = []ExtraKind{ExtraLanguages, ExtraHobbies, ExtraVolunteer}

// Extras holds the optional sections and the flags that gate their display.
type Extras struct {
	Languages     string `json:"languages"`
	Hobbies       string `json:"hobbies"`
	Volunteer     string `json:"volunteer"`
	ShowLanguages bool   `json:"showLanguages"`
	ShowHobbies   bool   `json:"showHobbies"`
	ShowVolunteer bool   `json:"showVolunteer"`
}

// Text returns the text of the given extra.
func (e Extras) Text(kind ExtraKind) string {
	switch kind {
	case ExtraLanguages:
		return e.Languages
	case ExtraHobbies:
		return e.Hobbies
	case ExtraVolunteer:
		return e.Volunteer
	}
	return ""
}

// Visible reports whether the given extra is switched on.
func (e Extras) Visible(kind ExtraKind) bool {
	switch kind {
	case ExtraLanguages:
		return e.ShowLanguages
	case ExtraHobbies:
		return e.ShowHobbies
	case ExtraVolunteer:
		return e.ShowVolunteer
	}
	return false
}

// SetVisible switches the given extra on or off. Unknown kinds report false.
func (e *Extras) SetVisible(kind ExtraKind, visible bool) bool {
	switch kind {
	case ExtraLanguages:
		e.ShowLanguages = visible
	case ExtraHobbies:
		e.ShowHobbies = visible
	case ExtraVolunteer:
		e.ShowVolunteer = visible
	default:
		return false
	}
	return true
}

// Shown reports whether the extra should appear in the preview: flag on and text present.
func (e Extras) Shown(kind ExtraKind) bool {
	return e.Visible(kind) && e.Text(kind) != ""
}

// ResumeDocument is the canonical in-memory resume. Its JSON form is the persisted snapshot.
type ResumeDocument struct {
	Personal         Personal        `json:"personal"`
	Summary          string          `json:"summary"`
	Education        []Education     `json:"education"`
	Experience       []Experience    `json:"experience"`
	Projects         []Project       `json:"projects"`
	Certifications   []Certification `json:"certifications"`
	Skills           []string        `json:"skills" validate:"unique"`
	Extras           Extras          `json:"extras"`
	SelectedTemplate Template        `json:"selectedTemplate" validate:"omitempty,oneof=modern minimal fresher creative executive"`
}

// NewResumeDocument returns an empty document with non-nil collections.
func NewResumeDocument() ResumeDocument {
	return ResumeDocument{
		Education:        []Education{},
		Experience:       []Experience{},
		Projects:         []Project{},
		Certifications:   []Certification{},
		Skills:           []string{},
		SelectedTemplate: DefaultTemplate,
	}
}

// Normalize replaces nil collections with empty ones, fills in the default
// template and trims skills, dropping empty and repeated ones.
func (d *ResumeDocument) Normalize() {
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	d.Skills = cleanSkills(d.Skills)
	d.SelectedTemplate = d.SelectedTemplate.OrDefault()
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Education = append([]Education{}, d.Education...)
	out.Experience = append([]Experience{}, d.Experience...)
	out.Projects = append([]Project{}, d.Projects...)
	out.Certifications = append([]Certification{}, d.Certifications...)
	out.Skills = append([]string{}, d.Skills...)
	return out
}

// HasSkill reports whether the exact skill string is present.
func (d ResumeDocument) HasSkill(skill string) bool {
	for _, s := range d.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Validate validates the ResumeDocument using the validator.
func (d *ResumeDocument) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
