package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/ingestion"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/llm"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// UploadResponse is the result of reading an uploaded résumé file.
// Structured is the raw model output; Document is what the builder loads.
type UploadResponse struct {
	Raw        string              `json:"raw"`
	Structured types.Candidate     `json:"structured"`
	Document   types.Document      `json:"document"`
	Optimized  *llm.OptimizeResult `json:"optimized,omitempty"`
}

// OptimizeResponse is the model's assessment plus the document it implies.
type OptimizeResponse struct {
	llm.OptimizeResult
	Document types.Document `json:"document"`
}

// handleUpload extracts text from an uploaded file and asks the model to
// structure it. A jobDescription form field also runs the optimizer.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		writeError(w, &ErrUnavailable{Service: "AI extraction"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		errorResponse(w, http.StatusBadRequest, "Expected a multipart form with a file")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	text, err := ingestion.ExtractText(header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[server] extracted %d characters from %q", len(text), header.Filename)

	structured, err := llm.ExtractResume(r.Context(), s.llm, text)
	if err != nil {
		log.Printf("[server] extraction failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Resume extraction failed")
		return
	}

	resp := UploadResponse{
		Raw:        text,
		Structured: structured,
		Document:   document.FromCandidate(structured),
	}

	if jd := strings.TrimSpace(r.FormValue("jobDescription")); jd != "" {
		result, err := llm.Optimize(r.Context(), s.llm, text, jd)
		if err != nil {
			log.Printf("[server] optimization after upload failed: %v", err)
		} else {
			resp.Optimized = &result
			resp.Document = document.MergeCandidate(resp.Document, result.Improved)
		}
	}

	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		writeError(w, &ErrUnavailable{Service: "AI optimization"})
		return
	}

	var req types.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := llm.Optimize(r.Context(), s.llm, req.ResumeText, req.JobDescription)
	if errors.Is(err, llm.ErrEmptyResume) {
		errorResponse(w, http.StatusBadRequest, "Resume text is required")
		return
	}
	if err != nil {
		log.Printf("[server] optimization failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "Optimization failed")
		return
	}

	prev := document.Defaults()
	if req.Previous != nil {
		prev = document.Build(document.FromDocument(*req.Previous))
	}
	jsonResponse(w, http.StatusOK, OptimizeResponse{
		OptimizeResult: result,
		Document:       document.MergeCandidate(prev, result.Improved),
	})
}
