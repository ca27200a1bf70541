package server

import (
	"log"
	"net/http"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// TemplatesResponse lists the registered templates.
type TemplatesResponse struct {
	Templates []rendering.TemplateInfo `json:"templates"`
	Default   string                   `json:"default"`
}

// PreviewResponse is the component tree for the interactive preview.
// TemplateID is the requested id, or the document's own when none was sent.
// ResolvedTemplateID differs from it when that id was unknown.
type PreviewResponse struct {
	TemplateID         string          `json:"templateId"`
	ResolvedTemplateID string          `json:"resolvedTemplateId"`
	Document           types.Document  `json:"document"`
	Tree               *rendering.Node `json:"tree"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	resp := TemplatesResponse{Templates: s.templates.List()}
	if d := s.templates.Default(); d != nil {
		resp.Default = d.ID()
	}
	jsonResponse(w, http.StatusOK, resp)
}

// decodeRenderRequest reads a render request and rebuilds its document the
// same way a stored blob is rebuilt.
func decodeRenderRequest(w http.ResponseWriter, r *http.Request) (types.RenderRequest, types.Document, bool) {
	var req types.RenderRequest
	if !decodeJSON(w, r, &req) {
		return req, types.Document{}, false
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return req, types.Document{}, false
	}

	doc, err := document.Decode(req.Document)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "document must be a JSON object")
		return req, types.Document{}, false
	}
	return req, doc, true
}

func (s *Server) handleRenderPreview(w http.ResponseWriter, r *http.Request) {
	req, doc, ok := decodeRenderRequest(w, r)
	if !ok {
		return
	}

	templateID := rendering.TemplateFor(req.TemplateID, doc)
	renderer := s.templates.Get(templateID)
	jsonResponse(w, http.StatusOK, PreviewResponse{
		TemplateID:         templateID,
		ResolvedTemplateID: renderer.ID(),
		Document:           doc,
		Tree:               renderer.Tree(doc),
	})
}

func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	req, doc, ok := decodeRenderRequest(w, r)
	if !ok {
		return
	}
	s.writeMarkup(w, rendering.TemplateFor(req.TemplateID, doc), doc, "")
}

// writeMarkup renders the export markup of doc. A non-empty filename makes
// the response a download.
func (s *Server) writeMarkup(w http.ResponseWriter, templateID string, doc types.Document, filename string) {
	renderer := s.templates.Get(templateID)
	markup, err := renderer.Markup(doc)
	if err != nil {
		log.Printf("[server] render %s failed: %v", renderer.ID(), err)
		errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Template-Id", renderer.ID())
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.html"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(markup)); err != nil {
		log.Printf("[server] write markup: %v", err)
	}
}
