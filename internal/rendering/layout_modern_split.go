package rendering

// ModernSplit opens with an accent header band; every section is split into a
// heading gutter on the left and its body on the right.
type ModernSplit struct{}

// Build implements Layout.
func (ModernSplit) Build(v View) *Node {
	th := v.Theme
	onAccent := css("color", "#ffffff")

	band := El("header", css("background", th.AccentColor, "color", "#ffffff", "padding", "12mm 16mm 9mm"),
		nameNode(v, onAccent.With("font-size", "2em")),
		titleNode(v, onAccent.With("opacity", "0.85")),
		contactLine(v.Contacts, "•", css("margin-top", "3mm", "font-size", "0.9em")),
	)

	content := El("div", css("padding", "9mm 16mm"))
	for _, s := range v.Sections {
		row := sectionNode(s, css(
			"display", "grid",
			"grid-template-columns", "36mm 1fr",
			"column-gap", "6mm",
			"margin-bottom", "6mm",
		),
			headingNode(s.Title, th.Accent().With(
				"font-size", "0.9em",
				"text-transform", "uppercase",
				"letter-spacing", "0.08em",
				"text-align", "right",
				"margin", "0.5mm 0 0",
			)),
			bodyNode(s, th, bodyOptions{}),
		)
		content.Append(row)
	}

	return pageNode(th, nil, band, content)
}
