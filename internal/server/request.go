package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/schemas"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/server/middleware"
)

// decodeJSON reads a size-limited JSON body into dst. On failure it writes a
// 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// First failure only; the builder shows one message at a time.
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// writeError maps err to a status. Server faults are logged and replaced by a
// generic message so internals do not leak.
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		jsonResponse(w, status, map[string]any{
			"error":   "document failed validation",
			"details": schemaErr.Errors,
		})
		return
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Printf("[server] request failed: %v", err)
		errorResponse(w, status, "Internal server error")
		return
	}
	errorResponse(w, status, err.Error())
}

// requestUser returns the authenticated user, writing 401 when there is none.
func requestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {id} path value, writing 400 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return uuid.Nil, false
	}
	return id, true
}
