//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// Entry is implemented by the record types of the repeatable resume sections.
// E is the implementing type itself so that With can return an updated copy.
type Entry[E any] interface {
	// Fields returns the field names of the record in form order.
	Fields() []string
	// Field returns the value of a named field and whether the name is known.
	Field(name string) (string, bool)
	// With returns a copy with the named field set and whether the name is known.
	With(name, value string) (E, bool)
	// IsBlank reports whether every field is empty.
	IsBlank() bool
}

// Education is one entry of the education section.
type Education struct {
	Degree  string `json:"degree"`
	School  string `json:"school"`
	Board   string `json:"board"`
	Year    string `json:"year"`
	Percent string `json:"percent"`
}

var educationFields = []string{"degree", "school", "board", "year", "percent"}

// Fields implements Entry.
func (Education) Fields() []string { return slices.Clone(educationFields) }

// Field implements Entry.
func (e Education) Field(name string) (string, bool) {
	switch name {
	case "degree":
		return e.Degree, true
	case "school":
		return e.School, true
	case "board":
		return e.Board, true
	case "year":
		return e.Year, true
	case "percent":
		return e.Percent, true
	}
	return "", false
}

// With implements Entry.
func (e Education) With(name, value string) (Education, bool) {
	switch name {
	case "degree":
		e.Degree = value
	case "school":
		e.School = value
	case "board":
		e.Board = value
	case "year":
		e.Year = value
	case "percent":
		e.Percent = value
	default:
		return e, false
	}
	return e, true
}

// IsBlank implements Entry.
func (e Education) IsBlank() bool {
	return e == Education{}
}

// Experience is one entry of the experience section.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Desc    string `json:"desc"`
}

var experienceFields = []string{"title", "company", "start", "end", "desc"}

// Fields implements Entry.
func (Experience) Fields() []string { return slices.Clone(experienceFields) }

// Field implements Entry.
func (e Experience) Field(name string) (string, bool) {
	switch name {
	case "title":
		return e.Title, true
	case "company":
		return e.Company, true
	case "start":
		return e.Start, true
	case "end":
		return e.End, true
	case "desc":
		return e.Desc, true
	}
	return "", false
}

// With implements Entry.
func (e Experience) With(name, value string) (Experience, bool) {
	switch name {
	case "title":
		e.Title = value
	case "company":
		e.Company = value
	case "start":
		e.Start = value
	case "end":
		e.End = value
	case "desc":
		e.Desc = value
	default:
		return e, false
	}
	return e, true
}

// IsBlank implements Entry.
func (e Experience) IsBlank() bool {
	return e == Experience{}
}

// Project is one entry of the projects section.
type Project struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Tech  string `json:"tech"`
	Link  string `json:"link"`
}

var projectFields = []string{"title", "desc", "tech", "link"}

// Fields implements Entry.
func (Project) Fields() []string { return slices.Clone(projectFields) }

// Field implements Entry.
func (p Project) Field(name string) (string, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "desc":
		return p.Desc, true
	case "tech":
		return p.Tech, true
	case "link":
		return p.Link, true
	}
	return "", false
}

// With implements Entry.
func (p Project) With(name, value string) (Project, bool) {
	switch name {
	case "title":
		p.Title = value
	case "desc":
		p.Desc = value
	case "tech":
		p.Tech = value
	case "link":
		p.Link = value
	default:
		return p, false
	}
	return p, true
}

// IsBlank implements Entry.
func (p Project) IsBlank() bool {
	return p == Project{}
}

// Certification is one entry of the certifications section.
type Certification struct {
	Name string `json:"name"`
	Org  string `json:"org"`
	Year string `json:"year"`
}

var certificationFields = []string{"name", "org", "year"}

// Fields implements Entry.
func (Certification) Fields() []string { return slices.Clone(certificationFields) }

// Field implements Entry.
func (c Certification) Field(name string) (string, bool) {
	switch name {
	case "name":
		return c.Name, true
	case "org":
		return c.Org, true
	case "year":
		return c.Year, true
	}
	return "", false
}

// With implements Entry.
func (c Certification) With(name, value string) (Certification, bool) {
	switch name {
	case "name":
		c.Name = value
	case "org":
		c.Org = value
	case "year":
		c.Year = value
	default:
		return c, false
	}
	return c, true
}

// IsBlank implements Entry.
func (c Certification) IsBlank() bool {
	return c == Certification{}
}
