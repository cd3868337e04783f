package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// keepAliveInterval is how often an idle event stream gets a comment line
const keepAliveInterval = 30 * time.Second

// snapshotPreview copies what preview and export need out of the locked session.
// A template override renders the document without changing the selection.
func (s *Server) snapshotPreview(r *http.Request, entry *sessionEntry) (rendering.Markup, error) {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	name := r.URL.Query().Get("template")
	if name == "" {
		if err := entry.session.PreviewError(); err != nil {
			return "", err
		}
		return entry.session.Preview(), nil
	}

	tmpl, ok := types.ParseTemplate(name)
	if !ok {
		return "", &builder.ErrUnknownTemplate{Template: name}
	}
	return rendering.Render(entry.session.Document(), tmpl)
}

// handlePreview returns the live preview markup
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	markup, err := s.snapshotPreview(r, entry)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		log.Printf("[server] error writing preview: %v", err)
	}
}

// handleExport downloads the preview as doc, html or pdf. The session lock is
// released before the export runs.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.handleError(w, err)
		return
	}

	entry, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	markup, err := s.snapshotPreview(r, entry)
	if err != nil {
		s.handleError(w, err)
		return
	}

	artifact, err := s.exporter.Export(r.Context(), markup, format)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		log.Printf("[server] error writing %s export: %v", format, err)
	}
}

// handleEvents streams the session state after every change. The current
// state is sent first as a "state" event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates, unsubscribe := entry.subscribe()
	defer unsubscribe()

	entry.mu.Lock()
	initial := entry.session.State()
	entry.mu.Unlock()

	if err := sse.WriteEvent("state", initial); err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := sse.WriteEvent(string(update.Event.Kind), update.State); err != nil {
				log.Printf("[server] session %s: event stream closed: %v", entry.id, err)
				return
			}
		case <-ticker.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}
