package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// StateResponse wraps the session state with operation-specific details
type StateResponse struct {
	State    builder.State `json:"state"`
	EntryID  *uuid.UUID    `json:"entry_id,omitempty"`
	Changed  *bool         `json:"changed,omitempty"`
	Complete bool          `json:"complete,omitempty"`
}

// TemplatesResponse lists the preview templates
type TemplatesResponse struct {
	Templates []types.Template `json:"templates"`
	Default   types.Template   `json:"default"`
}

// sessionOp runs against a locked session. A nil response means "reply with the state".
type sessionOp func(r *http.Request, sess *builder.Session) (*StateResponse, error)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTemplates lists the available templates
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Templates: types.Templates,
		Default:   types.DefaultTemplate,
	})
}

// handleSkillSuggestions lists the one-click skill suggestions
func (s *Server) handleSkillSuggestions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"skills": builder.SuggestedSkills})
}

// handleCreateSession starts a new builder session and issues its token
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.create(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(entry.id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.SessionResponse{
		SessionID: entry.id,
		Token:     token,
	})
}

// lookupSession resolves the session bound to the request token
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*sessionEntry, bool) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	entry, err := s.sessions.get(r.Context(), sessionID)
	if err != nil {
		s.handleError(w, err)
		return nil, false
	}
	return entry, true
}

// withSession runs op under the session lock and replies with the resulting state
func (s *Server) withSession(op sessionOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, ok := s.lookupSession(w, r)
		if !ok {
			return
		}

		entry.mu.Lock()
		defer entry.mu.Unlock()

		resp, err := op(r, entry.session)
		if err != nil {
			s.handleError(w, err)
			return
		}
		if resp == nil {
			resp = &StateResponse{}
		}
		resp.State = entry.session.State()
		s.jsonResponse(w, http.StatusOK, resp)
	}
}

// decodeBody decodes a JSON request body into v
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// pathCategory parses the {category} path segment
func pathCategory(r *http.Request) (builder.Category, error) {
	return builder.ParseCategory(r.PathValue("category"))
}

// pathPosition parses the {position} path segment
func pathPosition(r *http.Request) (int, error) {
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		return 0, &ErrValidation{Field: "position", Message: "must be an integer"}
	}
	return position, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(*http.Request, *builder.Session) (*StateResponse, error) {
		return nil, nil
	})(w, r)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		return &StateResponse{Complete: sess.Advance(r.Context())}, nil
	})(w, r)
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		sess.Retreat(r.Context())
		return nil, nil
	})(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		sess.Reset(r.Context())
		return nil, nil
	})(w, r)
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		var req types.FieldValueRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return nil, sess.SetField(r.Context(), r.PathValue("field"), req.Value)
	})(w, r)
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		category, err := pathCategory(r)
		if err != nil {
			return nil, err
		}
		id, err := sess.AddEntry(r.Context(), category)
		if err != nil {
			return nil, err
		}
		return &StateResponse{EntryID: &id}, nil
	})(w, r)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		category, err := pathCategory(r)
		if err != nil {
			return nil, err
		}
		position, err := pathPosition(r)
		if err != nil {
			return nil, err
		}
		return nil, sess.RemoveEntry(r.Context(), category, position)
	})(w, r)
}

func (s *Server) handleSetEntryField(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		category, err := pathCategory(r)
		if err != nil {
			return nil, err
		}
		position, err := pathPosition(r)
		if err != nil {
			return nil, err
		}
		var req types.FieldValueRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		return nil, sess.SetEntryField(r.Context(), category, position, r.PathValue("field"), req.Value)
	})(w, r)
}

func (s *Server) handleReorderEntries(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		category, err := pathCategory(r)
		if err != nil {
			return nil, err
		}
		var req types.ReorderRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return nil, sess.ReorderEntries(r.Context(), category, req.Order)
	})(w, r)
}

func (s *Server) handleMoveEntry(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		category, err := pathCategory(r)
		if err != nil {
			return nil, err
		}
		var req types.MoveRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return nil, sess.MoveEntry(r.Context(), category, req.From, req.To)
	})(w, r)
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		var req types.SkillRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		changed := sess.AddSkill(r.Context(), req.Skill)
		return &StateResponse{Changed: &changed}, nil
	})(w, r)
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		changed := sess.RemoveSkill(r.Context(), r.PathValue("skill"))
		return &StateResponse{Changed: &changed}, nil
	})(w, r)
}

func (s *Server) handleSetExtra(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		var req types.ExtraVisibilityRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return nil, sess.SetExtraVisible(r.Context(), r.PathValue("extra"), *req.Visible)
	})(w, r)
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(r *http.Request, sess *builder.Session) (*StateResponse, error) {
		var req types.TemplateRequest
		if err := decodeBody(r, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		return nil, sess.SelectTemplate(r.Context(), req.Template)
	})(w, r)
}

func (s *Server) handleZoomIn(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(_ *http.Request, sess *builder.Session) (*StateResponse, error) {
		sess.ZoomIn()
		return nil, nil
	})(w, r)
}

func (s *Server) handleZoomOut(w http.ResponseWriter, r *http.Request) {
	s.withSession(func(_ *http.Request, sess *builder.Session) (*StateResponse, error) {
		sess.ZoomOut()
		return nil, nil
	})(w, r)
}
