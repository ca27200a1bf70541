// Package sections resolves a document's section order into renderable sections.
// It knows nothing about layouts.
package sections

import (
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/normalize"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// Section is one resolved, display-ready section.
type Section struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        []string `json:"body"`
	Placeholder bool     `json:"placeholder,omitempty"`
	Builtin     bool     `json:"builtin,omitempty"`
	// Paragraph marks free text that renders as written, never as a list.
	Paragraph bool `json:"paragraph,omitempty"`
}

type builtin struct {
	title       string
	placeholder string
}

var builtins = map[string]builtin{
	types.SectionSummary:    {title: "Summary", placeholder: "Add a short professional summary tailored to your target job."},
	types.SectionSkills:     {title: "Skills", placeholder: "List your key skills."},
	types.SectionExperience: {title: "Experience", placeholder: "Add your most relevant roles and achievements."},
	types.SectionEducation:  {title: "Education", placeholder: "Add your degrees, institutions and years."},
}

// Title returns the fixed label of a built-in section, or "" for other ids.
func Title(id string) string {
	return builtins[id].title
}

// Placeholder returns the display-only fallback text of a built-in section.
func Placeholder(id string) string {
	return builtins[id].placeholder
}

// Resolve returns the renderable form of one section id. The boolean is false
// when id is a custom id with no matching custom section.
//
// Empty built-in sections get their placeholder text. Custom sections never do:
// empty content resolves to an empty body.
func Resolve(doc types.Document, id string) (Section, bool) {
	if b, ok := builtins[id]; ok {
		body := builtinBody(doc, id)
		if len(body) == 0 {
			return Section{ID: id, Title: b.title, Body: []string{b.placeholder}, Placeholder: true, Builtin: true, Paragraph: id == types.SectionSummary}, true
		}
		return Section{ID: id, Title: b.title, Body: body, Builtin: true, Paragraph: id == types.SectionSummary}, true
	}

	cs, ok := doc.CustomSection(id)
	if !ok {
		return Section{}, false
	}
	return Section{ID: id, Title: strings.TrimSpace(cs.Title), Body: normalize.Split(cs.Content, normalize.Experience)}, true
}

// ResolveOrder resolves every id of the (repaired) section order, skipping ids
// that do not resolve.
func ResolveOrder(doc types.Document) []Section {
	order := document.RepairSectionOrder(doc.SectionOrder, doc.CustomSections)

	out := make([]Section, 0, len(order))
	for _, id := range order {
		if s, ok := Resolve(doc, id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the section with the given id.
func Find(list []Section, id string) (Section, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Without returns list minus the section with the given id. The input is not modified.
func Without(list []Section, id string) []Section {
	out := make([]Section, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

func builtinBody(doc types.Document, id string) []string {
	switch id {
	case types.SectionSummary:
		// The summary is one paragraph however many lines it has, even when
		// they start with bullet markers.
		if s := strings.TrimSpace(doc.Summary); s != "" {
			return []string{s}
		}
		return nil
	case types.SectionSkills:
		return normalize.Normalize(doc.Skills, normalize.Skills)
	case types.SectionExperience:
		return normalize.Normalize(doc.Experience, normalize.Experience)
	case types.SectionEducation:
		return normalize.Normalize(doc.Education, normalize.Education)
	}
	return nil
}
