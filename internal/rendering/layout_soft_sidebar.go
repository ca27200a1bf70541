package rendering

import (
	"github.com/TheSagarV/ATS-AI-RESUME/internal/sections"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// SoftSidebar is a pale sidebar with the contact block and skills beside the
// main column.
type SoftSidebar struct{}

// Build implements Layout.
func (SoftSidebar) Build(v View) *Node {
	th := v.Theme

	sidebar := El("aside", css(
		"width", "62mm",
		"flex-shrink", "0",
		"background", "#f1f5f9",
		"padding", "14mm 7mm",
		"box-sizing", "border-box",
	),
		El("div", css("margin-bottom", "6mm"),
			El("h3", th.Accent().With("margin", "0 0 2mm", "font-size", "0.95em", "text-transform", "uppercase", "letter-spacing", "0.08em"), Txt("Contact")),
			contactLine(v.Contacts, "•", css("font-size", "0.9em", "display", "flex", "flex-wrap", "wrap", "row-gap", "1mm", "word-break", "break-all")),
		),
	)

	if skills, ok := sections.Find(v.Sections, types.SectionSkills); ok {
		sidebar.Append(standardSection(skills, th, nil,
			th.Accent().With("font-size", "0.95em", "text-transform", "uppercase", "letter-spacing", "0.08em"),
			bodyOptions{},
		))
	}

	main := El("main", css("flex", "1", "padding", "14mm 11mm", "box-sizing", "border-box"),
		El("header", css("margin-bottom", "7mm"),
			nameNode(v, th.Accent().With("font-size", "2em")),
			titleNode(v, th.Body()),
		),
	)
	heading := th.Accent().With("border-bottom", "1px solid #e2e8f0", "padding-bottom", "1mm")
	for _, s := range sections.Without(v.Sections, types.SectionSkills) {
		main.Append(standardSection(s, th, css("margin-bottom", "6mm"), heading, bodyOptions{}))
	}

	return pageNode(th, css("display", "flex", "align-items", "stretch"), sidebar, main)
}
