package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/db"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/schemas"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// unsafeFilename matches everything a download filename may not contain.
var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9-_ ]`)

// downloadName turns a résumé title into a filename stem.
func downloadName(title string) string {
	name := strings.TrimSpace(unsafeFilename.ReplaceAllString(title, ""))
	if name == "" {
		return "resume"
	}
	return name
}

// ResumeResponse carries one saved résumé.
type ResumeResponse struct {
	Resume *db.Resume `json:"resume"`
}

func (s *Server) resumeStore() (ResumeStore, error) {
	if s.db == nil {
		return nil, &ErrUnavailable{Service: "database"}
	}
	return s.db, nil
}

// decodeSaveRequest reads and validates a save or update body. The blob is
// checked against the document schema before it is stored verbatim.
func decodeSaveRequest(w http.ResponseWriter, r *http.Request) (types.SaveResumeRequest, bool) {
	var req types.SaveResumeRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return req, false
	}
	if err := schemas.ValidateDocument(req.Data); err != nil {
		writeError(w, err)
		return req, false
	}
	req.Title = strings.TrimSpace(req.Title)
	return req, true
}

func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	store, err := s.resumeStore()
	if err != nil {
		writeError(w, err)
		return
	}
	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}

	saved, err := store.SaveResume(r.Context(), userID, req.Title, req.TemplateID, req.Data)
	if err != nil {
		writeError(w, fmt.Errorf("save resume: %w", err))
		return
	}
	jsonResponse(w, http.StatusCreated, ResumeResponse{Resume: saved})
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	store, err := s.resumeStore()
	if err != nil {
		writeError(w, err)
		return
	}
	req, ok := decodeSaveRequest(w, r)
	if !ok {
		return
	}

	updated, err := store.UpdateResume(r.Context(), id, userID, req.Title, req.TemplateID, req.Data)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, &ErrResumeNotFound{ID: id})
		return
	}
	if err != nil {
		writeError(w, fmt.Errorf("update resume: %w", err))
		return
	}
	jsonResponse(w, http.StatusOK, ResumeResponse{Resume: updated})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	store, err := s.resumeStore()
	if err != nil {
		writeError(w, err)
		return
	}

	resumes, err := store.ListResumes(r.Context(), userID)
	if err != nil {
		writeError(w, fmt.Errorf("list resumes: %w", err))
		return
	}
	if resumes == nil {
		resumes = []db.ResumeSummary{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes})
}

// loadResume fetches a résumé the caller owns and rebuilds its document, so
// blobs saved before a section existed come back with a repaired order.
func (s *Server) loadResume(ctx context.Context, id, userID uuid.UUID) (*db.Resume, types.Document, error) {
	store, err := s.resumeStore()
	if err != nil {
		return nil, types.Document{}, err
	}

	resume, err := store.GetResume(ctx, id, userID)
	if err != nil {
		return nil, types.Document{}, fmt.Errorf("get resume: %w", err)
	}
	if resume == nil {
		return nil, types.Document{}, &ErrResumeNotFound{ID: id}
	}

	doc, err := document.Decode(resume.Data)
	if err != nil {
		log.Printf("[server] resume %s has an unreadable blob, using defaults: %v", id, err)
	}
	return resume, doc, nil
}

// resumeRequest resolves the caller and the {id} résumé, writing the error
// response itself when either is missing.
func (s *Server) resumeRequest(w http.ResponseWriter, r *http.Request) (*db.Resume, types.Document, bool) {
	userID, ok := requestUser(w, r)
	if !ok {
		return nil, types.Document{}, false
	}
	id, ok := pathID(w, r)
	if !ok {
		return nil, types.Document{}, false
	}
	resume, doc, err := s.loadResume(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return nil, types.Document{}, false
	}
	return resume, doc, true
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, doc, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}

	data, err := document.Encode(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	resume.Data = data
	jsonResponse(w, http.StatusOK, ResumeResponse{Resume: resume})
}

func (s *Server) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	resume, doc, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}
	filename := ""
	if r.URL.Query().Has("download") {
		filename = downloadName(resume.Title)
	}
	s.writeMarkup(w, rendering.TemplateFor(resume.TemplateID, doc), doc, filename)
}

// handleResumePDF renders the saved résumé with its own template and prints it.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	if s.capturer == nil {
		writeError(w, &ErrUnavailable{Service: "PDF capture"})
		return
	}
	resume, doc, ok := s.resumeRequest(w, r)
	if !ok {
		return
	}

	renderer := s.templates.Get(rendering.TemplateFor(resume.TemplateID, doc))
	markup, err := renderer.Markup(doc)
	if err != nil {
		log.Printf("[server] render %s for pdf failed: %v", renderer.ID(), err)
		errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}

	pdf, err := s.capturer.PDF(r.Context(), markup)
	if err != nil {
		log.Printf("[server] pdf capture for resume %s failed: %v", resume.ID, err)
		errorResponse(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName(resume.Title)+`.pdf"`)
	w.Header().Set("X-Template-Id", renderer.ID())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[server] write pdf: %v", err)
	}
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	store, err := s.resumeStore()
	if err != nil {
		writeError(w, err)
		return
	}

	err = store.DeleteResume(r.Context(), id, userID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, &ErrResumeNotFound{ID: id})
		return
	}
	if err != nil {
		writeError(w, fmt.Errorf("delete resume: %w", err))
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume deleted"})
}
