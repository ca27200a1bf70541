package rendering

// Minimal is a whitespace-heavy single column with light headings and no rules.
type Minimal struct{}

// Build implements Layout.
func (Minimal) Build(v View) *Node {
	th := v.Theme

	header := El("header", css("margin-bottom", "12mm"),
		nameNode(v, th.Accent().With("font-size", "2.2em", "font-weight", "300", "letter-spacing", "0.02em")),
		titleNode(v, css("color", "#64748b", "font-weight", "400")),
		contactLine(v.Contacts, "|", css("margin-top", "3mm", "font-size", "0.9em", "color", "#64748b")),
	)

	page := pageNode(th, css("padding", "22mm 24mm"), header)

	heading := css(
		"color", "#94a3b8",
		"font-size", "0.85em",
		"font-weight", "600",
		"text-transform", "uppercase",
		"letter-spacing", "0.2em",
		"margin-bottom", "3mm",
	)
	for _, s := range v.Sections {
		page.Append(standardSection(s, th, css("margin-bottom", "10mm"), heading, bodyOptions{itemStyle: css("line-height", "1.6")}))
	}
	return page
}
