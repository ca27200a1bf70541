package types

import "encoding/json"

// Candidate is a résumé as returned by AI extraction or optimization.
// Nothing about it is trusted: every field may be absent, null or of the wrong shape.
// The list fields stay raw until the normalization boundary decodes them.
type Candidate struct {
	FullName   *string         `json:"fullName,omitempty"`
	Title      *string         `json:"title,omitempty"`
	Email      *string         `json:"email,omitempty"`
	Phone      *string         `json:"phone,omitempty"`
	Location   *string         `json:"location,omitempty"`
	GitHub     *string         `json:"github,omitempty"`
	LinkedIn   *string         `json:"linkedin,omitempty"`
	Summary    *string         `json:"summary,omitempty"`
	Skills     json.RawMessage `json:"skills,omitempty"`
	Experience json.RawMessage `json:"experience,omitempty"`
	Education  json.RawMessage `json:"education,omitempty"`
}

// UnmarshalJSON accepts any JSON value for the scalar fields; non-string scalars are dropped.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Candidate{
		FullName:   stringField(raw["fullName"]),
		Title:      stringField(raw["title"]),
		Email:      stringField(raw["email"]),
		Phone:      stringField(raw["phone"]),
		Location:   stringField(raw["location"]),
		GitHub:     stringField(raw["github"]),
		LinkedIn:   stringField(raw["linkedin"]),
		Summary:    stringField(raw["summary"]),
		Skills:     raw["skills"],
		Experience: raw["experience"],
		Education:  raw["education"],
	}
	return nil
}

func stringField(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// Str returns the value of an optional candidate string, or "" when absent.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
