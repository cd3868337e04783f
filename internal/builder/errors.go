package builder

import "fmt"

// ErrInvalidPermutation indicates a reorder request that is not a permutation of the rows
type ErrInvalidPermutation struct {
	Order  []int
	Length int
	Reason string
}

func (e *ErrInvalidPermutation) Error() string {
	return fmt.Sprintf("invalid permutation %v for %d entries: %s", e.Order, e.Length, e.Reason)
}

// ErrPositionOutOfRange indicates an entry position outside the section
type ErrPositionOutOfRange struct {
	Position int
	Length   int
}

func (e *ErrPositionOutOfRange) Error() string {
	return fmt.Sprintf("position %d out of range for %d entries", e.Position, e.Length)
}

// ErrUnknownField indicates a field name the target does not have
type ErrUnknownField struct {
	Field string
	Scope string
}

func (e *ErrUnknownField) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("unknown %s field: %s", e.Scope, e.Field)
	}
	return fmt.Sprintf("unknown field: %s", e.Field)
}

// ErrFieldHidden indicates an edit to a field whose step is not the visible one
type ErrFieldHidden struct {
	Field   string
	Step    Step
	Current Step
}

func (e *ErrFieldHidden) Error() string {
	return fmt.Sprintf("field %s belongs to step %d (%s) but step %d is visible", e.Field, e.Step, e.Step, e.Current)
}

// ErrUnknownCategory indicates an entry category that does not exist
type ErrUnknownCategory struct {
	Category string
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("unknown category: %s", e.Category)
}

// ErrUnknownTemplate indicates a template name that is not supported
type ErrUnknownTemplate struct {
	Template string
}

func (e *ErrUnknownTemplate) Error() string {
	return fmt.Sprintf("unknown template: %s", e.Template)
}

// ErrUnknownExtra indicates an extra section that does not exist
type ErrUnknownExtra struct {
	Extra string
}

func (e *ErrUnknownExtra) Error() string {
	return fmt.Sprintf("unknown extra section: %s", e.Extra)
}
