package builder

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// Category names a repeatable section.
type Category string

// Repeatable sections
const (
	CategoryEducation      Category = "education"
	CategoryExperience     Category = "experience"
	CategoryProjects       Category = "projects"
	CategoryCertifications Category = "certifications"
)

// Categories lists the repeatable sections in form order.
var Categories = []Category{CategoryEducation, CategoryExperience, CategoryProjects, CategoryCertifications}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ErrUnknownCategory{Category: s}
}

// Row is one visible entry row. Its ID is stable across reorders.
type Row[E types.Entry[E]] struct {
	ID    uuid.UUID
	Entry E
}

// RowView is the untyped form of a row for adapters.
type RowView struct {
	ID     uuid.UUID         `json:"id"`
	Fields map[string]string `json:"fields"`
}

// Section holds the visible rows of one repeatable category. Rows may be
// blank; Collect returns only the non-blank entries, in row order.
type Section[E types.Entry[E]] struct {
	category Category
	rows     []Row[E]
}

// NewSection returns an empty section.
func NewSection[E types.Entry[E]](category Category) *Section[E] {
	return &Section[E]{category: category}
}

// Category returns the section's category.
func (s *Section[E]) Category() Category {
	return s.category
}

// Fields returns the entry field names in form order.
func (s *Section[E]) Fields() []string {
	var zero E
	return zero.Fields()
}

// Len returns the number of visible rows.
func (s *Section[E]) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the visible rows.
func (s *Section[E]) Rows() []Row[E] {
	return append([]Row[E](nil), s.rows...)
}

// Add appends a blank row and returns its ID.
func (s *Section[E]) Add() uuid.UUID {
	var blank E
	row := Row[E]{ID: uuid.New(), Entry: blank}
	s.rows = append(s.rows, row)
	return row.ID
}

// Remove deletes the row at position.
func (s *Section[E]) Remove(position int) error {
	if err := s.checkPosition(position); err != nil {
		return err
	}
	s.rows = append(s.rows[:position], s.rows[position+1:]...)
	return nil
}

// SetField updates one field of the row at position.
func (s *Section[E]) SetField(position int, field, value string) error {
	if err := s.checkPosition(position); err != nil {
		return err
	}
	updated, ok := s.rows[position].Entry.With(field, value)
	if !ok {
		return &ErrUnknownField{Field: field, Scope: string(s.category)}
	}
	s.rows[position].Entry = updated
	return nil
}

// Reorder rearranges the rows so that the row currently at order[i] ends up
// at position i. Anything other than a permutation of 0..Len()-1 is rejected
// and the rows are left as they were.
func (s *Section[E]) Reorder(order []int) error {
	if len(order) != len(s.rows) {
		return &ErrInvalidPermutation{Order: order, Length: len(s.rows), Reason: "length mismatch"}
	}
	seen := make([]bool, len(s.rows))
	for _, pos := range order {
		if pos < 0 || pos >= len(s.rows) {
			return &ErrInvalidPermutation{Order: order, Length: len(s.rows), Reason: "position out of range"}
		}
		if seen[pos] {
			return &ErrInvalidPermutation{Order: order, Length: len(s.rows), Reason: "duplicate position"}
		}
		seen[pos] = true
	}

	reordered := make([]Row[E], len(s.rows))
	for i, pos := range order {
		reordered[i] = s.rows[pos]
	}
	s.rows = reordered
	return nil
}

// Move takes the row at from and reinserts it at to.
func (s *Section[E]) Move(from, to int) error {
	if err := s.checkPosition(from); err != nil {
		return err
	}
	if err := s.checkPosition(to); err != nil {
		return err
	}
	return s.Reorder(MovePermutation(len(s.rows), from, to))
}

// Collect builds the canonical entries: every non-blank row, in row order.
func (s *Section[E]) Collect() []E {
	entries := make([]E, 0, len(s.rows))
	for _, row := range s.rows {
		if !row.Entry.IsBlank() {
			entries = append(entries, row.Entry)
		}
	}
	return entries
}

// Restore replaces the rows with one row per entry. With no entries a single
// blank row is left so the form always has somewhere to type.
func (s *Section[E]) Restore(entries []E) {
	s.rows = make([]Row[E], 0, len(entries))
	for _, entry := range entries {
		s.rows = append(s.rows, Row[E]{ID: uuid.New(), Entry: entry})
	}
	if len(s.rows) == 0 {
		s.Add()
	}
}

// Views returns the rows as untyped field maps.
func (s *Section[E]) Views() []RowView {
	fields := s.Fields()
	views := make([]RowView, 0, len(s.rows))
	for _, row := range s.rows {
		view := RowView{ID: row.ID, Fields: make(map[string]string, len(fields))}
		for _, f := range fields {
			view.Fields[f], _ = row.Entry.Field(f)
		}
		views = append(views, view)
	}
	return views
}

func (s *Section[E]) checkPosition(position int) error {
	if position < 0 || position >= len(s.rows) {
		return &ErrPositionOutOfRange{Position: position, Length: len(s.rows)}
	}
	return nil
}

// MovePermutation expresses moving one row from -> to as a reorder permutation.
func MovePermutation(n, from, to int) []int {
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != from {
			order = append(order, i)
		}
	}
	if from < 0 || from >= n {
		return order
	}
	if to > len(order) {
		to = len(order)
	}
	if to < 0 {
		to = 0
	}
	order = append(order, 0)
	copy(order[to+1:], order[to:])
	order[to] = from
	return order
}

// entrySection is the category-independent view of a Section used by the session.
type entrySection interface {
	Category() Category
	Fields() []string
	Len() int
	Add() uuid.UUID
	Remove(position int) error
	SetField(position int, field, value string) error
	Reorder(order []int) error
	Move(from, to int) error
	Views() []RowView
}

var (
	_ entrySection = (*Section[types.Education])(nil)
	_ entrySection = (*Section[types.Experience])(nil)
	_ entrySection = (*Section[types.Project])(nil)
	_ entrySection = (*Section[types.Certification])(nil)
)
