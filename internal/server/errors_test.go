package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestErrSessionNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrSessionNotFound{SessionID: id}
	assert.Equal(t, "session not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "position", Message: "must be an integer"}
	assert.Equal(t, "validation error: position - must be an integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	validatorErr := (&types.SkillRequest{}).Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown field", err: &builder.ErrUnknownField{Field: "x"}, want: http.StatusNotFound},
		{name: "unknown category", err: &builder.ErrUnknownCategory{Category: "x"}, want: http.StatusNotFound},
		{name: "unknown extra", err: &builder.ErrUnknownExtra{Extra: "x"}, want: http.StatusNotFound},
		{name: "position out of range", err: &builder.ErrPositionOutOfRange{Position: 3, Length: 1}, want: http.StatusNotFound},
		{name: "field hidden", err: &builder.ErrFieldHidden{Field: "summary", Step: builder.StepSummary, Current: builder.StepPersonal}, want: http.StatusConflict},
		{name: "invalid permutation", err: &builder.ErrInvalidPermutation{Order: []int{0, 0}, Length: 2, Reason: "duplicate"}, want: http.StatusBadRequest},
		{name: "unknown template", err: &builder.ErrUnknownTemplate{Template: "neon"}, want: http.StatusBadRequest},
		{name: "unsupported format", err: &export.ErrUnsupportedFormat{Format: "docx"}, want: http.StatusBadRequest},
		{name: "validator", err: validatorErr, want: http.StatusBadRequest},
		{name: "export failure", err: &export.ExportError{Format: export.FormatPDF, Message: "boom"}, want: http.StatusBadGateway},
		{name: "wrapped", err: fmt.Errorf("outer: %w", &builder.ErrUnknownCategory{Category: "x"}), want: http.StatusNotFound},
		{name: "other", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
