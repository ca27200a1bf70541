package rendering

// CleanResume is a plain, centered-header single column that parses well in
// applicant tracking systems.
type CleanResume struct{}

// Build implements Layout.
func (CleanResume) Build(v View) *Node {
	th := v.Theme

	header := El("header", css("text-align", "center", "margin-bottom", "7mm"),
		nameNode(v, th.Accent().With("font-size", "2em")),
		titleNode(v, th.Body()),
		contactLine(v.Contacts, "•", css("margin-top", "2mm", "font-size", "0.9em")),
	)

	page := pageNode(th, css("padding", "15mm 18mm"), header)

	heading := th.Accent().With(
		"font-size", "1em",
		"text-transform", "uppercase",
		"border-bottom", "2px solid "+th.AccentColor,
		"padding-bottom", "0.8mm",
	)
	for _, s := range v.Sections {
		page.Append(standardSection(s, th, css("margin-bottom", "5mm"), heading, bodyOptions{}))
	}
	return page
}
