package rendering

// Classic is a single column with a ruled header and uppercase section headings.
type Classic struct{}

// Build implements Layout.
func (Classic) Build(v View) *Node {
	th := v.Theme

	header := El("header", css("border-bottom", "1px solid #d1d5db", "padding-bottom", "4mm", "margin-bottom", "6mm"),
		nameNode(v, th.Accent()),
		titleNode(v, th.Body()),
		contactLine(v.Contacts, "•", css("margin-top", "2mm", "font-size", "0.9em", "display", "flex", "flex-wrap", "wrap", "align-items", "center")),
	)

	page := pageNode(th, css("padding", "14mm 16mm"), header)

	heading := th.Accent().With(
		"text-transform", "uppercase",
		"letter-spacing", "0.1em",
		"border-bottom", "1px solid #d1d5db",
		"padding-bottom", "1mm",
	)
	for _, s := range v.Sections {
		page.Append(standardSection(s, th, css("margin-bottom", "6mm"), heading, bodyOptions{}))
	}
	return page
}
