//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldValueRequest sets a single form or entry field.
type FieldValueRequest struct {
	Value string `json:"value"`
}

// ReorderRequest carries a drag-and-drop permutation: Order[i] is the current position
// of the entry that should end up at position i.
type ReorderRequest struct {
	Order []int `json:"order" validate:"required,dive,min=0"`
}

// MoveRequest moves one entry to a new position.
type MoveRequest struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0"`
}

// SkillRequest adds a skill.
type SkillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

// TemplateRequest selects a preview template.
type TemplateRequest struct {
	Template string `json:"template" validate:"required,oneof=modern minimal fresher creative executive"`
}

// ExtraVisibilityRequest toggles an extra section.
type ExtraVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// SessionResponse is returned when a builder session is created.
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
}

// Validate validates the ReorderRequest using the validator.
func (r *ReorderRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MoveRequest using the validator.
func (r *MoveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SkillRequest using the validator.
func (r *SkillRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TemplateRequest using the validator.
func (r *TemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExtraVisibilityRequest using the validator.
func (r *ExtraVisibilityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
