// Package rendering turns a résumé Document into one of several page layouts,
// either as a component tree for the live preview or as self-contained A4 markup.
package rendering

import "fmt"

// TemplateError represents an error executing the page shell template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure serializing a component tree to markup
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// EquivalenceError reports that the preview tree and the export markup of one
// template disagree on section titles, order or text.
type EquivalenceError struct {
	TemplateID string
	Detail     string
}

func (e *EquivalenceError) Error() string {
	return fmt.Sprintf("equivalence error: template %q: %s", e.TemplateID, e.Detail)
}
