package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// DraftResponse is the caller's autosaved working copy. Found is false when
// nothing was saved yet and Document holds the defaults.
type DraftResponse struct {
	Found    bool           `json:"found"`
	Document types.Document `json:"document"`
}

type saveDraftRequest struct {
	Document json.RawMessage `json:"document"`
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	doc, found, err := s.drafts.Load(r.Context(), userID.String())
	if err != nil {
		writeError(w, fmt.Errorf("load draft: %w", err))
		return
	}
	if !found {
		doc = document.Defaults()
	}
	jsonResponse(w, http.StatusOK, DraftResponse{Found: found, Document: doc})
}

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req saveDraftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Document) == 0 {
		errorResponse(w, http.StatusBadRequest, "validation error: Document - required")
		return
	}
	doc, err := document.Decode(req.Document)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "document must be a JSON object")
		return
	}

	if err := s.drafts.Save(r.Context(), userID.String(), doc); err != nil {
		writeError(w, fmt.Errorf("save draft: %w", err))
		return
	}
	jsonResponse(w, http.StatusOK, DraftResponse{Found: true, Document: doc})
}
