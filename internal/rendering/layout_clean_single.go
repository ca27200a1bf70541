package rendering

// CleanSingle is a basic professional single column.
type CleanSingle struct{}

// Build implements Layout.
func (CleanSingle) Build(v View) *Node {
	th := v.Theme

	header := El("header", css("margin-bottom", "5mm"),
		nameNode(v, th.Accent()),
		titleNode(v, th.Body()),
		contactLine(v.Contacts, "·", css("margin-top", "1.5mm", "font-size", "0.9em")),
	)

	page := pageNode(th, css("padding", "12mm 15mm"), header,
		El("hr", css("border", "0", "border-top", "1px solid #cbd5e1", "margin", "0 0 5mm")),
	)

	heading := th.Accent().With("font-size", "1em")
	for _, s := range v.Sections {
		page.Append(standardSection(s, th, css("margin-bottom", "5mm"), heading, bodyOptions{}))
	}
	return page
}
