package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/ingestion"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/schemas"
)

func TestErrorMessages(t *testing.T) {
	userID := uuid.New()
	resumeID := uuid.New()

	assert.Equal(t, "email already registered: a@b.co", (&ErrEmailAlreadyExists{Email: "a@b.co"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "user not found: "+userID.String(), (&ErrUserNotFound{UserID: userID}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())
	assert.Equal(t, "resume not found: "+resumeID.String(), (&ErrResumeNotFound{ID: resumeID}).Error())
	assert.Equal(t, "validation error: email - invalid format", (&ErrValidation{Field: "email", Message: "invalid format"}).Error())
	assert.Equal(t, "PDF capture is not configured", (&ErrUnavailable{Service: "PDF capture"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.co"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"resume not found", &ErrResumeNotFound{ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "title"}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"unsupported file", &ingestion.UnsupportedFormatError{Filename: "cv.doc"}, http.StatusBadRequest},
		{"unreadable file", &ingestion.ExtractionError{Format: "pdf", Cause: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"unavailable", &ErrUnavailable{Service: "database"}, http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("save: %w", &ErrResumeNotFound{}), http.StatusNotFound},
		{"generic", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
