package rendering

import "github.com/TheSagarV/ATS-AI-RESUME/internal/types"

// DenseUX packs sections into a compact two-column grid of bordered cells.
// Cells follow the section order; experience spans both columns.
type DenseUX struct{}

// Build implements Layout.
func (DenseUX) Build(v View) *Node {
	th := v.Theme

	header := El("header", css(
		"display", "flex",
		"justify-content", "space-between",
		"align-items", "flex-end",
		"gap", "6mm",
		"border-bottom", "2px solid "+th.AccentColor,
		"padding-bottom", "3mm",
		"margin-bottom", "4mm",
	),
		El("div", nil, nameNode(v, th.Accent().With("font-size", "1.6em")), titleNode(v, th.Body())),
		contactLine(v.Contacts, "/", css("font-size", "0.85em", "text-align", "right", "max-width", "95mm")),
	)

	grid := El("div", css("display", "grid", "grid-template-columns", "1fr 1fr", "gap", "3mm"))
	heading := th.Accent().With("font-size", "0.95em", "text-transform", "uppercase", "letter-spacing", "0.05em", "margin-bottom", "1.5mm")
	for _, s := range v.Sections {
		cell := css("border", "1px solid #e2e8f0", "border-radius", "2px", "padding", "3mm", "break-inside", "avoid")
		if s.ID == types.SectionExperience {
			cell = cell.With("grid-column", "1 / -1")
		}
		grid.Append(standardSection(s, th, cell, heading, bodyOptions{itemStyle: css("line-height", "1.3")}))
	}

	return pageNode(th, css("padding", "10mm 11mm"), header, grid)
}
