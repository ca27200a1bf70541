// Package types provides type definitions for structured data used throughout the resume builder.
package types

// Built-in section identifiers. Every repaired section order contains all four.
const (
	SectionSummary    = "summary"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
)

// BuiltinSectionIDs returns the built-in section ids in canonical order.
func BuiltinSectionIDs() []string {
	return []string{SectionSummary, SectionSkills, SectionExperience, SectionEducation}
}

// IsBuiltinSection reports whether id names one of the four built-in sections.
func IsBuiltinSection(id string) bool {
	switch id {
	case SectionSummary, SectionSkills, SectionExperience, SectionEducation:
		return true
	}
	return false
}

// FontFamily selects the font stack used by every layout.
type FontFamily string

const (
	FontSans  FontFamily = "sans"
	FontSerif FontFamily = "serif"
	FontMono  FontFamily = "mono"
)

// Valid reports whether f is one of the known families.
func (f FontFamily) Valid() bool {
	return f == FontSans || f == FontSerif || f == FontMono
}

// FontSize selects one of three fixed type scales.
type FontSize string

const (
	SizeSmall  FontSize = "small"
	SizeMedium FontSize = "medium"
	SizeLarge  FontSize = "large"
)

// Valid reports whether s is one of the known sizes.
func (s FontSize) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// Style holds per-document presentation settings.
// The JSON keys match the blobs written by the editor ("color", "template").
type Style struct {
	Font        FontFamily `json:"font"`
	Size        FontSize   `json:"size"`
	AccentColor string     `json:"color"`
	TextColor   string     `json:"textColor"`
	TemplateID  string     `json:"template,omitempty"`
}

// CustomSection is a user-defined section referenced from Document.SectionOrder by ID.
type CustomSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"` // newline-delimited bullet text
}

// Document is the canonical résumé.
type Document struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`

	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`

	CustomSections []CustomSection `json:"customSections"`
	SectionOrder   []string        `json:"sectionOrder"`
	Style          Style           `json:"design"`
}

// CustomSection returns the custom section with the given id.
func (d Document) CustomSection(id string) (CustomSection, bool) {
	for _, cs := range d.CustomSections {
		if cs.ID == id {
			return cs, true
		}
	}
	return CustomSection{}, false
}

// Clone returns a deep copy so editing operations never alias the caller's slices.
func (d Document) Clone() Document {
	out := d
	out.Skills = cloneStrings(d.Skills)
	out.Experience = cloneStrings(d.Experience)
	out.Education = cloneStrings(d.Education)
	out.SectionOrder = cloneStrings(d.SectionOrder)
	if d.CustomSections != nil {
		out.CustomSections = make([]CustomSection, len(d.CustomSections))
		copy(out.CustomSections, d.CustomSections)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
