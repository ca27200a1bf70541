package rendering

import (
	"github.com/TheSagarV/ATS-AI-RESUME/internal/sections"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// Modern puts the name, contacts and skills in an accent-colored sidebar and
// the remaining sections in the main column.
type Modern struct{}

// Build implements Layout.
func (Modern) Build(v View) *Node {
	th := v.Theme
	onAccent := css("color", "#ffffff")

	sidebar := El("aside", css(
		"width", "68mm",
		"flex-shrink", "0",
		"background", th.AccentColor,
		"color", "#ffffff",
		"padding", "14mm 7mm",
		"box-sizing", "border-box",
	),
		nameNode(v, onAccent.With("font-size", "1.6em")),
		titleNode(v, onAccent.With("opacity", "0.85")),
		contactLine(v.Contacts, "•", css("margin", "5mm 0 7mm", "font-size", "0.9em", "display", "flex", "flex-wrap", "wrap", "row-gap", "1mm")),
	)

	if skills, ok := sections.Find(v.Sections, types.SectionSkills); ok {
		sidebar.Append(sectionNode(skills, nil,
			headingNode(skills.Title, onAccent.With("text-transform", "uppercase", "letter-spacing", "0.08em", "font-size", "1em")),
			bodyNode(skills, Theme{TextColor: "#ffffff"}, bodyOptions{
				chips:     true,
				chipStyle: css("background", "rgba(255, 255, 255, 0.18)", "border-radius", "999px", "padding", "0.6mm 2.5mm", "font-size", "0.9em"),
			}),
		))
	}

	main := El("main", css("flex", "1", "padding", "14mm 10mm", "box-sizing", "border-box"))
	heading := th.Accent().With("border-left", "3px solid "+th.AccentColor, "padding-left", "2mm")
	for _, s := range sections.Without(v.Sections, types.SectionSkills) {
		main.Append(standardSection(s, th, css("margin-bottom", "6mm"), heading, bodyOptions{}))
	}

	return pageNode(th, css("display", "flex", "align-items", "stretch"), sidebar, main)
}
