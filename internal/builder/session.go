// Package builder implements the multi-step resume builder session: step
// navigation, repeatable entry sections, skills and extras, with the preview
// and ATS score recomputed after every change.
package builder

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// EventKind classifies session notifications
type EventKind string

// Session events
const (
	EventChanged         EventKind = "changed"
	EventStepChanged     EventKind = "step_changed"
	EventBuilderComplete EventKind = "complete"
	EventReset           EventKind = "reset"
)

// Event is delivered to listeners after the session has finished updating.
type Event struct {
	Kind  EventKind `json:"kind"`
	Step  Step      `json:"step"`
	Score int       `json:"score"`
}

// Listener receives session events. It runs synchronously on the caller's goroutine.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// formState holds the drafts of the single-valued inputs. Drafts reach the
// document when their step is committed.
type formState struct {
	personal  types.Personal
	summary   string
	languages string
	hobbies   string
	volunteer string
}

func (f *formState) get(field string) (string, bool) {
	switch field {
	case FieldFullName:
		return f.personal.FullName, true
	case FieldJobTitle:
		return f.personal.JobTitle, true
	case FieldPhone:
		return f.personal.Phone, true
	case FieldEmail:
		return f.personal.Email, true
	case FieldLinkedIn:
		return f.personal.LinkedIn, true
	case FieldPortfolio:
		return f.personal.Portfolio, true
	case FieldAddress:
		return f.personal.Address, true
	case FieldSummary:
		return f.summary, true
	case FieldLanguages:
		return f.languages, true
	case FieldHobbies:
		return f.hobbies, true
	case FieldVolunteer:
		return f.volunteer, true
	}
	return "", false
}

func (f *formState) set(field, value string) bool {
	switch field {
	case FieldFullName:
		f.personal.FullName = value
	case FieldJobTitle:
		f.personal.JobTitle = value
	case FieldPhone:
		f.personal.Phone = value
	case FieldEmail:
		f.personal.Email = value
	case FieldLinkedIn:
		f.personal.LinkedIn = value
	case FieldPortfolio:
		f.personal.Portfolio = value
	case FieldAddress:
		f.personal.Address = value
	case FieldSummary:
		f.summary = value
	case FieldLanguages:
		f.languages = value
	case FieldHobbies:
		f.hobbies = value
	case FieldVolunteer:
		f.volunteer = value
	default:
		return false
	}
	return true
}

func formFromDocument(doc types.ResumeDocument) formState {
	return formState{
		personal:  doc.Personal,
		summary:   doc.Summary,
		languages: doc.Extras.Languages,
		hobbies:   doc.Extras.Hobbies,
		volunteer: doc.Extras.Volunteer,
	}
}

// Session is one user's builder. Every mutation runs the same pipeline:
// mutate, recollect entries, persist, re-render the preview, re-score, then
// notify listeners. A Session is not safe for concurrent use.
type Session struct {
	store *store.DataStore
	steps *StepController
	form  formState

	education      *Section[types.Education]
	experience     *Section[types.Experience]
	projects       *Section[types.Project]
	certifications *Section[types.Certification]
	sections       map[Category]entrySection

	preview   rendering.Markup
	renderErr error
	result    ats.Result
	zoom      int

	listeners []listenerEntry
	nextID    int
}

// New creates a session over the given store with an empty form and one
// blank row per section. Call Open to rehydrate from storage.
func New(st *store.DataStore) *Session {
	s := &Session{
		store:          st,
		steps:          NewStepController(),
		education:      NewSection[types.Education](CategoryEducation),
		experience:     NewSection[types.Experience](CategoryExperience),
		projects:       NewSection[types.Project](CategoryProjects),
		certifications: NewSection[types.Certification](CategoryCertifications),
		zoom:           ZoomDefault,
	}
	s.sections = map[Category]entrySection{
		CategoryEducation:      s.education,
		CategoryExperience:     s.experience,
		CategoryProjects:       s.projects,
		CategoryCertifications: s.certifications,
	}
	s.restore(st.Get())
	s.rerender(st.Get())
	return s
}

// Open rehydrates the session from the persisted snapshot. A missing or
// unusable snapshot leaves the session as it was; the result says which.
func (s *Session) Open(ctx context.Context) store.LoadResult {
	result := s.store.Load(ctx)
	if result.Restored() {
		s.restore(s.store.Get())
		s.recollect()
	}
	s.rerender(s.store.Get())
	return result
}

// Reset discards everything, persists the empty document and returns to the first step.
func (s *Session) Reset(ctx context.Context) {
	s.store.Set(types.NewResumeDocument())
	s.steps.Reset()
	s.zoom = ZoomDefault
	s.restore(s.store.Get())
	s.refresh(ctx, EventReset)
}

// Advance commits the visible step and moves to the next one. On the last
// step it commits, stays put and emits EventBuilderComplete, returning true.
func (s *Session) Advance(ctx context.Context) bool {
	s.commit(s.steps.Current())
	complete := s.steps.Advance()
	if complete {
		s.refresh(ctx, EventChanged)
		s.notify(EventBuilderComplete)
		return true
	}
	s.refresh(ctx, EventStepChanged)
	return false
}

// Retreat commits the visible step and moves back one; on the first step it
// only commits and refreshes.
func (s *Session) Retreat(ctx context.Context) {
	s.commit(s.steps.Current())
	s.steps.Retreat()
	s.refresh(ctx, EventStepChanged)
}

// SetField edits a single-valued input. Only fields of the visible step can be
// edited; the edit is committed and saved straight away.
func (s *Session) SetField(ctx context.Context, field, value string) error {
	step, ok := FieldStep(field)
	if !ok {
		return &ErrUnknownField{Field: field, Scope: "form"}
	}
	if !s.steps.IsVisible(step) {
		return &ErrFieldHidden{Field: field, Step: step, Current: s.steps.Current()}
	}
	s.form.set(field, value)
	s.commit(step)
	s.refresh(ctx, EventChanged)
	return nil
}

// Field returns the draft value of a single-valued input.
func (s *Session) Field(field string) (string, error) {
	value, ok := s.form.get(field)
	if !ok {
		return "", &ErrUnknownField{Field: field, Scope: "form"}
	}
	return value, nil
}

// AddEntry appends a blank row to a section and returns its ID.
func (s *Session) AddEntry(ctx context.Context, category Category) (uuid.UUID, error) {
	sec, err := s.section(category)
	if err != nil {
		return uuid.Nil, err
	}
	id := sec.Add()
	s.refresh(ctx, EventChanged)
	return id, nil
}

// RemoveEntry deletes the row at position.
func (s *Session) RemoveEntry(ctx context.Context, category Category, position int) error {
	sec, err := s.section(category)
	if err != nil {
		return err
	}
	if err := sec.Remove(position); err != nil {
		return err
	}
	s.refresh(ctx, EventChanged)
	return nil
}

// SetEntryField updates one field of the row at position.
func (s *Session) SetEntryField(ctx context.Context, category Category, position int, field, value string) error {
	sec, err := s.section(category)
	if err != nil {
		return err
	}
	if err := sec.SetField(position, field, value); err != nil {
		return err
	}
	s.refresh(ctx, EventChanged)
	return nil
}

// ReorderEntries applies a drag-and-drop permutation: order[i] is the current
// position of the row that should end up at i.
func (s *Session) ReorderEntries(ctx context.Context, category Category, order []int) error {
	sec, err := s.section(category)
	if err != nil {
		return err
	}
	if err := sec.Reorder(order); err != nil {
		return err
	}
	s.refresh(ctx, EventChanged)
	return nil
}

// MoveEntry moves one row, expressed as a reorder.
func (s *Session) MoveEntry(ctx context.Context, category Category, from, to int) error {
	sec, err := s.section(category)
	if err != nil {
		return err
	}
	if err := sec.Move(from, to); err != nil {
		return err
	}
	s.refresh(ctx, EventChanged)
	return nil
}

// Entries returns the visible rows of a section, blank ones included.
func (s *Session) Entries(category Category) ([]RowView, error) {
	sec, err := s.section(category)
	if err != nil {
		return nil, err
	}
	return sec.Views(), nil
}

// EntryFields returns the field names of a section's entries.
func (s *Session) EntryFields(category Category) ([]string, error) {
	sec, err := s.section(category)
	if err != nil {
		return nil, err
	}
	return sec.Fields(), nil
}

// AddSkill adds a trimmed, non-empty skill that is not already listed.
// It reports whether the list changed.
func (s *Session) AddSkill(ctx context.Context, text string) bool {
	doc := s.store.Get()
	skills, added := addSkill(doc.Skills, text)
	if !added {
		return false
	}
	doc.Skills = skills
	s.store.Set(doc)
	s.refresh(ctx, EventChanged)
	return true
}

// RemoveSkill removes the first exact match of text, untrimmed. It reports
// whether the list changed.
func (s *Session) RemoveSkill(ctx context.Context, text string) bool {
	doc := s.store.Get()
	skills, removed := removeSkill(doc.Skills, text)
	if !removed {
		return false
	}
	doc.Skills = skills
	s.store.Set(doc)
	s.refresh(ctx, EventChanged)
	return true
}

// Skills returns the current skill list.
func (s *Session) Skills() []string {
	return s.store.Get().Skills
}

// SetExtraVisible switches an extra section on or off.
func (s *Session) SetExtraVisible(ctx context.Context, extra string, visible bool) error {
	doc := s.store.Get()
	if !doc.Extras.SetVisible(types.ExtraKind(extra), visible) {
		return &ErrUnknownExtra{Extra: extra}
	}
	s.store.Set(doc)
	s.refresh(ctx, EventChanged)
	return nil
}

// SelectTemplate changes the preview template.
func (s *Session) SelectTemplate(ctx context.Context, name string) error {
	tmpl, ok := types.ParseTemplate(name)
	if !ok {
		return &ErrUnknownTemplate{Template: name}
	}
	doc := s.store.Get()
	doc.SelectedTemplate = tmpl
	s.store.Set(doc)
	s.refresh(ctx, EventChanged)
	return nil
}

// ZoomIn enlarges the preview by one step and returns the new level in percent.
func (s *Session) ZoomIn() int {
	s.zoom = zoomBy(s.zoom, ZoomStep)
	return s.zoom
}

// ZoomOut shrinks the preview by one step and returns the new level in percent.
func (s *Session) ZoomOut() int {
	s.zoom = zoomBy(s.zoom, -ZoomStep)
	return s.zoom
}

// Zoom returns the preview zoom level in percent.
func (s *Session) Zoom() int {
	return s.zoom
}

// Step returns the visible step.
func (s *Session) Step() Step {
	return s.steps.Current()
}

// StepStates returns the step indicator.
func (s *Session) StepStates() []StepState {
	return s.steps.States()
}

// Navigation returns the previous/next affordances of the visible step.
func (s *Session) Navigation() Navigation {
	return s.steps.Navigation()
}

// Document returns a copy of the canonical document.
func (s *Session) Document() types.ResumeDocument {
	return s.store.Get()
}

// Preview returns the markup from the last successful render.
func (s *Session) Preview() rendering.Markup {
	return s.preview
}

// PreviewError returns the error of the last render, if it failed.
func (s *Session) PreviewError() error {
	return s.renderErr
}

// Score returns the ATS estimate of the canonical document.
func (s *Session) Score() ats.Result {
	return s.result
}

// OnChange registers a listener and returns a function that removes it.
func (s *Session) OnChange(fn Listener) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// State is a point-in-time view of the whole session for adapters.
type State struct {
	Step       Step                   `json:"step"`
	Steps      []StepState            `json:"steps"`
	Navigation Navigation             `json:"navigation"`
	Form       map[string]string      `json:"form"`
	Sections   map[Category][]RowView `json:"sections"`
	Skills     []string               `json:"skills"`
	Template   types.Template         `json:"template"`
	Zoom       int                    `json:"zoom"`
	Score      ats.Result             `json:"score"`
	Document   types.ResumeDocument   `json:"document"`
}

// State captures the session for display or serialisation.
func (s *Session) State() State {
	doc := s.store.Get()
	state := State{
		Step:       s.steps.Current(),
		Steps:      s.steps.States(),
		Navigation: s.steps.Navigation(),
		Form:       make(map[string]string),
		Sections:   make(map[Category][]RowView, len(Categories)),
		Skills:     doc.Skills,
		Template:   doc.SelectedTemplate,
		Zoom:       s.zoom,
		Score:      s.result,
		Document:   doc,
	}
	for step := FirstStep; step <= LastStep; step++ {
		for _, field := range step.Fields() {
			state.Form[field], _ = s.form.get(field)
		}
	}
	for _, c := range Categories {
		state.Sections[c] = s.sections[c].Views()
	}
	return state
}

func (s *Session) section(category Category) (entrySection, error) {
	sec, ok := s.sections[category]
	if !ok {
		return nil, &ErrUnknownCategory{Category: string(category)}
	}
	return sec, nil
}

// commit copies the drafts owned by step into the document. Sections and
// skills are live and need no commit.
func (s *Session) commit(step Step) {
	doc := s.store.Get()
	switch step {
	case StepPersonal:
		doc.Personal = s.form.personal
	case StepSummary:
		doc.Summary = s.form.summary
	case StepExtras:
		doc.Extras.Languages = s.form.languages
		doc.Extras.Hobbies = s.form.hobbies
		doc.Extras.Volunteer = s.form.volunteer
	default:
		return
	}
	s.store.Set(doc)
}

// restore rebuilds the drafts and rows from a document.
func (s *Session) restore(doc types.ResumeDocument) {
	s.form = formFromDocument(doc)
	s.education.Restore(doc.Education)
	s.experience.Restore(doc.Experience)
	s.projects.Restore(doc.Projects)
	s.certifications.Restore(doc.Certifications)
}

// recollect rebuilds the canonical entries from the visible rows.
func (s *Session) recollect() types.ResumeDocument {
	doc := s.store.Get()
	doc.Education = s.education.Collect()
	doc.Experience = s.experience.Collect()
	doc.Projects = s.projects.Collect()
	doc.Certifications = s.certifications.Collect()
	s.store.Set(doc)
	return doc
}

// refresh runs the post-mutation pipeline. Storage failures are logged and
// the in-memory state is kept.
func (s *Session) refresh(ctx context.Context, kind EventKind) {
	doc := s.recollect()
	if err := s.store.Persist(ctx); err != nil {
		log.Printf("[session] failed to persist snapshot: %v", err)
	}
	s.rerender(doc)
	s.notify(kind)
}

// rerender recomputes the preview and score. A failed render keeps the last
// good preview.
func (s *Session) rerender(doc types.ResumeDocument) {
	markup, err := rendering.Render(doc, doc.SelectedTemplate)
	if err != nil {
		log.Printf("[session] failed to render preview: %v", err)
		s.renderErr = err
	} else {
		s.preview = markup
		s.renderErr = nil
	}
	s.result = ats.Evaluate(doc)
}

func (s *Session) notify(kind EventKind) {
	event := Event{Kind: kind, Step: s.steps.Current(), Score: s.result.Score}
	for _, l := range append([]listenerEntry(nil), s.listeners...) {
		l.fn(event)
	}
}
