// Package document builds, repairs and edits the canonical résumé Document.
package document

import (
	"regexp"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/normalize"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// Style defaults applied field by field.
const (
	DefaultFont        = types.FontSans
	DefaultSize        = types.SizeMedium
	DefaultAccentColor = "#0f172a"
	DefaultTextColor   = "#334155"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether c is a #rgb or #rrggbb color.
func IsHexColor(c string) bool {
	return hexColor.MatchString(c)
}

// Partial is the loosely-typed input to Build. Every field is optional and list
// fields accept anything normalize.Normalize understands.
type Partial struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`

	Skills     any `json:"skills"`
	Experience any `json:"experience"`
	Education  any `json:"education"`

	CustomSections []types.CustomSection `json:"customSections"`
	SectionOrder   []string              `json:"sectionOrder"`
	Style          *PartialStyle         `json:"design"`
}

// PartialStyle carries whichever style keys were provided.
type PartialStyle struct {
	Font        string `json:"font"`
	Size        string `json:"size"`
	AccentColor string `json:"color"`
	TextColor   string `json:"textColor"`
	TemplateID  string `json:"template"`
}

// Defaults returns an empty Document with every default applied.
func Defaults() types.Document {
	return types.Document{
		Skills:         []string{},
		Experience:     []string{},
		Education:      []string{},
		CustomSections: []types.CustomSection{},
		SectionOrder:   types.BuiltinSectionIDs(),
		Style:          DefaultStyle(),
	}
}

// DefaultStyle returns the default presentation settings.
func DefaultStyle() types.Style {
	return types.Style{
		Font:        DefaultFont,
		Size:        DefaultSize,
		AccentColor: DefaultAccentColor,
		TextColor:   DefaultTextColor,
	}
}

// Build merges p over Defaults. It never fails: unusable values fall back to
// their defaults and the section order is repaired.
func Build(p Partial) types.Document {
	doc := Defaults()

	doc.FullName = strings.TrimSpace(p.FullName)
	doc.Title = strings.TrimSpace(p.Title)
	doc.Email = strings.TrimSpace(p.Email)
	doc.Phone = strings.TrimSpace(p.Phone)
	doc.Location = strings.TrimSpace(p.Location)
	doc.GitHub = strings.TrimSpace(p.GitHub)
	doc.LinkedIn = strings.TrimSpace(p.LinkedIn)
	doc.Summary = strings.TrimSpace(p.Summary)

	doc.Skills = normalize.Normalize(p.Skills, normalize.Skills)
	doc.Experience = normalize.Normalize(p.Experience, normalize.Experience)
	doc.Education = normalize.Normalize(p.Education, normalize.Education)

	doc.CustomSections = cleanCustomSections(p.CustomSections)
	doc.SectionOrder = RepairSectionOrder(p.SectionOrder, doc.CustomSections)
	doc.Style = MergeStyle(p.Style)

	return doc
}

// MergeStyle applies each provided style key over DefaultStyle.
func MergeStyle(p *PartialStyle) types.Style {
	style := DefaultStyle()
	if p == nil {
		return style
	}

	if f := types.FontFamily(strings.ToLower(strings.TrimSpace(p.Font))); f.Valid() {
		style.Font = f
	}
	if s := types.FontSize(strings.ToLower(strings.TrimSpace(p.Size))); s.Valid() {
		style.Size = s
	}
	if c := strings.TrimSpace(p.AccentColor); IsHexColor(c) {
		style.AccentColor = c
	}
	if c := strings.TrimSpace(p.TextColor); IsHexColor(c) {
		style.TextColor = c
	}
	style.TemplateID = strings.TrimSpace(p.TemplateID)

	return style
}

// FromDocument converts an existing Document back into a Partial so it can be
// rebuilt after field edits.
func FromDocument(doc types.Document) Partial {
	return Partial{
		FullName:       doc.FullName,
		Title:          doc.Title,
		Email:          doc.Email,
		Phone:          doc.Phone,
		Location:       doc.Location,
		GitHub:         doc.GitHub,
		LinkedIn:       doc.LinkedIn,
		Summary:        doc.Summary,
		Skills:         doc.Skills,
		Experience:     doc.Experience,
		Education:      doc.Education,
		CustomSections: doc.CustomSections,
		SectionOrder:   doc.SectionOrder,
		Style: &PartialStyle{
			Font:        string(doc.Style.Font),
			Size:        string(doc.Style.Size),
			AccentColor: doc.Style.AccentColor,
			TextColor:   doc.Style.TextColor,
			TemplateID:  doc.Style.TemplateID,
		},
	}
}

// cleanCustomSections drops entries without an id and keeps the first of any duplicate ids.
func cleanCustomSections(in []types.CustomSection) []types.CustomSection {
	out := make([]types.CustomSection, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, cs := range in {
		id := strings.TrimSpace(cs.ID)
		if id == "" || types.IsBuiltinSection(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, types.CustomSection{ID: id, Title: cs.Title, Content: cs.Content})
	}
	return out
}
