package document

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/normalize"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
	"github.com/microcosm-cc/bluemonday"
)

// plainText strips every tag from untrusted candidate text.
var plainText = bluemonday.StrictPolicy()

// Decode rebuilds a Document from a persisted blob. Missing or malformed
// fields fall back to defaults and the section order is repaired. Only input
// that is not a JSON object is an error.
func Decode(blob []byte) (types.Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Defaults(), fmt.Errorf("failed to decode document: %w", err)
	}
	return Build(partialFromRaw(raw)), nil
}

// DecodeLenient is Decode for callers that must not fail: bad input yields Defaults.
func DecodeLenient(blob []byte) types.Document {
	doc, _ := Decode(blob)
	return doc
}

// Encode serializes doc into the persisted blob form.
func Encode(doc types.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// partialFromRaw reads each key on its own so one wrongly-typed field does not
// discard the rest of the blob.
func partialFromRaw(raw map[string]json.RawMessage) Partial {
	p := Partial{
		FullName:   rawString(raw["fullName"]),
		Title:      rawString(raw["title"]),
		Email:      rawString(raw["email"]),
		Phone:      rawString(raw["phone"]),
		Location:   rawString(raw["location"]),
		GitHub:     rawString(raw["github"]),
		LinkedIn:   rawString(raw["linkedin"]),
		Summary:    rawString(raw["summary"]),
		Skills:     json.RawMessage(raw["skills"]),
		Experience: json.RawMessage(raw["experience"]),
		Education:  json.RawMessage(raw["education"]),
	}

	if v, ok := raw["customSections"]; ok {
		var list []json.RawMessage
		if json.Unmarshal(v, &list) == nil {
			for _, item := range list {
				var fields map[string]json.RawMessage
				if json.Unmarshal(item, &fields) != nil {
					continue
				}
				p.CustomSections = append(p.CustomSections, types.CustomSection{
					ID:      rawString(fields["id"]),
					Title:   rawString(fields["title"]),
					Content: rawString(fields["content"]),
				})
			}
		}
	}

	if v, ok := raw["sectionOrder"]; ok {
		var list []json.RawMessage
		if json.Unmarshal(v, &list) == nil {
			for _, item := range list {
				p.SectionOrder = append(p.SectionOrder, rawString(item))
			}
		}
	}

	if v, ok := raw["design"]; ok {
		var fields map[string]json.RawMessage
		if json.Unmarshal(v, &fields) == nil {
			p.Style = &PartialStyle{
				Font:        rawString(fields["font"]),
				Size:        rawString(fields["size"]),
				AccentColor: rawString(fields["color"]),
				TextColor:   rawString(fields["textColor"]),
				TemplateID:  rawString(fields["template"]),
			}
		}
	}

	return p
}

// rawString reads a JSON string, or the text of a JSON number. Anything else reads as "".
func rawString(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}
	return ""
}

// FromCandidate builds a fresh Document from an AI extraction result.
func FromCandidate(c types.Candidate) types.Document {
	doc := Defaults()
	return applyCandidate(doc, c, false)
}

// MergeCandidate applies an optimization result over prev. Identity and summary
// fields keep their previous values when the candidate leaves them empty; the
// list fields are always replaced by the normalized candidate lists.
func MergeCandidate(prev types.Document, c types.Candidate) types.Document {
	return applyCandidate(prev.Clone(), c, true)
}

func applyCandidate(doc types.Document, c types.Candidate, keepPrevious bool) types.Document {
	set := func(dst *string, src *string) {
		v := sanitize(types.Str(src))
		if v != "" || !keepPrevious {
			*dst = v
		}
	}

	set(&doc.FullName, c.FullName)
	set(&doc.Title, c.Title)
	set(&doc.Email, c.Email)
	set(&doc.Phone, c.Phone)
	set(&doc.Location, c.Location)
	set(&doc.GitHub, c.GitHub)
	set(&doc.LinkedIn, c.LinkedIn)
	set(&doc.Summary, c.Summary)

	doc.Skills = sanitizeList(normalize.Normalize(c.Skills, normalize.Skills))
	doc.Experience = sanitizeList(normalize.Normalize(c.Experience, normalize.Experience))
	doc.Education = sanitizeList(normalize.Normalize(c.Education, normalize.Education))

	doc.SectionOrder = RepairSectionOrder(doc.SectionOrder, doc.CustomSections)
	return doc
}

func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

func sanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := sanitize(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
