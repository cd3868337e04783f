package builder

import (
	"fmt"
	"slices"
)

// Step is a 1-based form step.
type Step int

// Form steps in navigation order
const (
	StepPersonal Step = iota + 1
	StepSummary
	StepEducation
	StepExperience
	StepSkills
	StepProjects
	StepCertifications
	StepExtras
)

// FirstStep and LastStep bound the step index.
const (
	FirstStep = StepPersonal
	LastStep  = StepExtras
)

var stepNames = map[Step]string{
	StepPersonal:       "personal",
	StepSummary:        "summary",
	StepEducation:      "education",
	StepExperience:     "experience",
	StepSkills:         "skills",
	StepProjects:       "projects",
	StepCertifications: "certifications",
	StepExtras:         "extras",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is within [FirstStep, LastStep].
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Single-valued form fields
const (
	FieldFullName  = "fullName"
	FieldJobTitle  = "jobTitle"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldLinkedIn  = "linkedin"
	FieldPortfolio = "portfolio"
	FieldAddress   = "address"
	FieldSummary   = "summary"
	FieldLanguages = "languages"
	FieldHobbies   = "hobbies"
	FieldVolunteer = "volunteer"
)

// stepFields lists the single-valued fields each step commits
var stepFields = map[Step][]string{
	StepPersonal: {FieldFullName, FieldJobTitle, FieldPhone, FieldEmail, FieldLinkedIn, FieldPortfolio, FieldAddress},
	StepSummary:  {FieldSummary},
	StepExtras:   {FieldLanguages, FieldHobbies, FieldVolunteer},
}

// Fields returns the single-valued fields owned by the step.
func (s Step) Fields() []string {
	return slices.Clone(stepFields[s])
}

// FieldStep returns the step that owns a single-valued field.
func FieldStep(field string) (Step, bool) {
	for step, fields := range stepFields {
		for _, f := range fields {
			if f == field {
				return step, true
			}
		}
	}
	return 0, false
}

// stepCategories maps the entry steps to the section they edit
var stepCategories = map[Step]Category{
	StepEducation:      CategoryEducation,
	StepExperience:     CategoryExperience,
	StepProjects:       CategoryProjects,
	StepCertifications: CategoryCertifications,
}

// Category returns the repeatable section edited on the step, if any.
func (s Step) Category() (Category, bool) {
	c, ok := stepCategories[s]
	return c, ok
}

// StepStatus is the display status of a step indicator
type StepStatus string

// Step indicator states
const (
	StatusCompleted StepStatus = "completed"
	StatusActive    StepStatus = "active"
	StatusPending   StepStatus = "pending"
)

// StepState is one entry of the step indicator.
type StepState struct {
	Step   Step       `json:"step"`
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
}

// Navigation describes the previous/next buttons for the current step.
type Navigation struct {
	ShowPrevious bool   `json:"show_previous"`
	NextLabel    string `json:"next_label"`
}

// Next button labels
const (
	LabelNext   = "Next"
	LabelFinish = "Finish"
)

// StepController tracks the visible step. Committing data and refreshing
// derived state is left to the session that owns it.
type StepController struct {
	current Step
}

// NewStepController starts at the first step.
func NewStepController() *StepController {
	return &StepController{current: FirstStep}
}

// Current returns the visible step.
func (c *StepController) Current() Step {
	return c.current
}

// IsVisible reports whether step is the one currently shown.
func (c *StepController) IsVisible(step Step) bool {
	return c.current == step
}

// Advance moves forward one step. At the last step it stays put and reports
// complete instead.
func (c *StepController) Advance() (complete bool) {
	if c.current >= LastStep {
		return true
	}
	c.current++
	return false
}

// Retreat moves back one step; it is a no-op on the first step.
func (c *StepController) Retreat() {
	if c.current > FirstStep {
		c.current--
	}
}

// Reset returns to the first step.
func (c *StepController) Reset() {
	c.current = FirstStep
}

// States returns the indicator state of every step.
func (c *StepController) States() []StepState {
	states := make([]StepState, 0, int(LastStep))
	for s := FirstStep; s <= LastStep; s++ {
		status := StatusPending
		switch {
		case s < c.current:
			status = StatusCompleted
		case s == c.current:
			status = StatusActive
		}
		states = append(states, StepState{Step: s, Name: s.String(), Status: status})
	}
	return states
}

// Navigation returns the button affordances for the current step.
func (c *StepController) Navigation() Navigation {
	nav := Navigation{
		ShowPrevious: c.current > FirstStep,
		NextLabel:    LabelNext,
	}
	if c.current == LastStep {
		nav.NextLabel = LabelFinish
	}
	return nav
}
