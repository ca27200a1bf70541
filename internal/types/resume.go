package types

import "encoding/json"

// SaveResumeRequest is the body of POST /resume/save and PUT /resume/{id}.
// Data is the document blob and is stored verbatim.
type SaveResumeRequest struct {
	Title      string          `json:"title" validate:"required,max=200"`
	TemplateID string          `json:"templateId" validate:"required,max=64"`
	Data       json.RawMessage `json:"data" validate:"required"`
}

// Validate validates the SaveResumeRequest.
func (r *SaveResumeRequest) Validate() error {
	return validate.Struct(r)
}

// RenderRequest is the body of the preview and HTML export endpoints.
type RenderRequest struct {
	TemplateID string          `json:"templateId" validate:"max=64"`
	Document   json.RawMessage `json:"document" validate:"required"`
}

// Validate validates the RenderRequest.
func (r *RenderRequest) Validate() error {
	return validate.Struct(r)
}

// OptimizeRequest is the body of POST /resume/optimize.
type OptimizeRequest struct {
	ResumeText     string    `json:"resumeText" validate:"required"`
	JobDescription string    `json:"jobDescription" validate:"max=20000"`
	Previous       *Document `json:"previous,omitempty"`
}

// Validate validates the OptimizeRequest.
func (r *OptimizeRequest) Validate() error {
	return validate.Struct(r)
}
