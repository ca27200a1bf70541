package rendering

// RoundedSections puts the header and every section on its own rounded card.
type RoundedSections struct{}

// Build implements Layout.
func (RoundedSections) Build(v View) *Node {
	th := v.Theme
	card := css(
		"background", "#ffffff",
		"border", "1px solid #e2e8f0",
		"border-radius", "12px",
		"padding", "5mm 6mm",
		"margin-bottom", "4mm",
	)

	header := El("header", card.With("border-top", "4px solid "+th.AccentColor),
		nameNode(v, th.Accent()),
		titleNode(v, th.Body()),
		contactLine(v.Contacts, "•", css("margin-top", "2mm", "font-size", "0.9em")),
	)

	page := pageNode(th, css("padding", "10mm 12mm", "background", "#f8fafc"), header)

	heading := th.Accent().With("font-size", "1.05em")
	for _, s := range v.Sections {
		page.Append(standardSection(s, th, card, heading, bodyOptions{}))
	}
	return page
}
