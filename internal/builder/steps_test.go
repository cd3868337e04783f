package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepController_StartsAtFirstStep(t *testing.T) {
	c := NewStepController()
	assert.Equal(t, StepPersonal, c.Current())
	assert.True(t, c.IsVisible(StepPersonal))
	assert.False(t, c.IsVisible(StepSummary))
}

func TestStepController_AdvanceStopsAtLast(t *testing.T) {
	c := NewStepController()
	for i := 1; i < int(LastStep); i++ {
		assert.False(t, c.Advance())
	}
	assert.Equal(t, StepExtras, c.Current())

	assert.True(t, c.Advance(), "advancing from the last step completes")
	assert.Equal(t, StepExtras, c.Current(), "step stays at the last step")
}

func TestStepController_RetreatStopsAtFirst(t *testing.T) {
	c := NewStepController()
	c.Retreat()
	assert.Equal(t, StepPersonal, c.Current())

	c.Advance()
	c.Advance()
	c.Retreat()
	assert.Equal(t, StepSummary, c.Current())
}

func TestStepController_States(t *testing.T) {
	c := NewStepController()
	c.Advance()
	c.Advance()

	states := c.States()
	assert.Len(t, states, 8)
	for _, st := range states {
		switch {
		case st.Step < StepEducation:
			assert.Equal(t, StatusCompleted, st.Status, st.Name)
		case st.Step == StepEducation:
			assert.Equal(t, StatusActive, st.Status, st.Name)
		default:
			assert.Equal(t, StatusPending, st.Status, st.Name)
		}
	}

	active := 0
	for _, st := range states {
		if st.Status == StatusActive {
			active++
		}
	}
	assert.Equal(t, 1, active, "exactly one step is visible")
}

func TestStepController_Navigation(t *testing.T) {
	c := NewStepController()
	assert.Equal(t, Navigation{ShowPrevious: false, NextLabel: LabelNext}, c.Navigation())

	c.Advance()
	assert.Equal(t, Navigation{ShowPrevious: true, NextLabel: LabelNext}, c.Navigation())

	for c.Current() < LastStep {
		c.Advance()
	}
	assert.Equal(t, Navigation{ShowPrevious: true, NextLabel: LabelFinish}, c.Navigation())
}

func TestStepController_Reset(t *testing.T) {
	c := NewStepController()
	c.Advance()
	c.Reset()
	assert.Equal(t, FirstStep, c.Current())
}

func TestStep_Names(t *testing.T) {
	assert.Equal(t, "personal", StepPersonal.String())
	assert.Equal(t, "skills", StepSkills.String())
	assert.Equal(t, "extras", StepExtras.String())
	assert.Equal(t, "step(9)", Step(9).String())
	assert.True(t, StepCertifications.Valid())
	assert.False(t, Step(0).Valid())
	assert.False(t, Step(9).Valid())
}

func TestStepFields_ReturnsCopy(t *testing.T) {
	fields := StepSummary.Fields()
	fields[0] = FieldFullName

	assert.Equal(t, []string{FieldSummary}, StepSummary.Fields())
	assert.Empty(t, StepSkills.Fields())
}

func TestFieldStep(t *testing.T) {
	tests := []struct {
		field string
		step  Step
	}{
		{FieldFullName, StepPersonal},
		{FieldAddress, StepPersonal},
		{FieldSummary, StepSummary},
		{FieldLanguages, StepExtras},
		{FieldVolunteer, StepExtras},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			step, ok := FieldStep(tt.field)
			assert.True(t, ok)
			assert.Equal(t, tt.step, step)
		})
	}

	_, ok := FieldStep("degree")
	assert.False(t, ok)
}

func TestStepCategory(t *testing.T) {
	c, ok := StepExperience.Category()
	assert.True(t, ok)
	assert.Equal(t, CategoryExperience, c)

	c, ok = StepCertifications.Category()
	assert.True(t, ok)
	assert.Equal(t, CategoryCertifications, c)

	_, ok = StepSkills.Category()
	assert.False(t, ok)
	_, ok = StepPersonal.Category()
	assert.False(t, ok)
}
