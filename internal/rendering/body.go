package rendering

import (
	"regexp"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/sections"
)

// BodyKind is the shape a section body takes.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyParagraph
	BodyList
)

var bulletMarker = regexp.MustCompile(`^[-•*]\s*`)

// BodyItems applies the list-vs-paragraph rule: a single item that does not
// start with a bullet marker is a paragraph; anything else is a list whose items
// have their leading marker stripped.
func BodyItems(body []string) (BodyKind, []string) {
	switch {
	case len(body) == 0:
		return BodyEmpty, nil
	case len(body) == 1 && !bulletMarker.MatchString(body[0]):
		return BodyParagraph, []string{body[0]}
	}

	items := make([]string, 0, len(body))
	for _, item := range body {
		if stripped := strings.TrimSpace(bulletMarker.ReplaceAllString(item, "")); stripped != "" {
			items = append(items, stripped)
		}
	}
	if len(items) == 0 {
		return BodyEmpty, nil
	}
	return BodyList, items
}

// bodyOptions tweaks how a layout presents list bodies. Item text is never changed.
type bodyOptions struct {
	chips     bool   // list items as inline chips
	chipStyle Styles // used when chips is set
	itemStyle Styles
}

// bodyNode renders a resolved section body.
func bodyNode(s sections.Section, th Theme, opts bodyOptions) *Node {
	body := El("div", th.Body()).Role(RoleSectionBody)

	kind, items := BodyItems(s.Body)
	if s.Paragraph && kind != BodyEmpty {
		kind, items = BodyParagraph, []string{strings.Join(s.Body, "\n")}
	}
	switch kind {
	case BodyParagraph:
		style := css("margin", "0", "white-space", "pre-line").Merge(opts.itemStyle)
		if s.Placeholder {
			style = style.With("font-style", "italic", "opacity", "0.7")
		}
		body.Append(El("p", style, Txt(items[0])).Role(RoleItem))

	case BodyList:
		if opts.chips {
			wrap := El("div", css("display", "flex", "flex-wrap", "wrap", "gap", "1.5mm"))
			for _, item := range items {
				wrap.Append(El("span", opts.chipStyle, Txt(item)).Role(RoleItem))
			}
			body.Append(wrap)
			break
		}
		list := El("ul", css("margin", "0", "padding-left", "1.1em", "list-style-type", "disc"))
		for _, item := range items {
			list.Append(El("li", css("margin-bottom", "1mm").Merge(opts.itemStyle), Txt(item)).Role(RoleItem))
		}
		body.Append(list)
	}
	return body
}
