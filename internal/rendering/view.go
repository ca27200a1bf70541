package rendering

import (
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/sections"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// NameFallback is shown when the document has no name.
const NameFallback = "Your Name"

// View is everything a layout needs, derived once per render. Layouts only
// place these parts; they never derive content themselves.
type View struct {
	Doc      types.Document
	Theme    Theme
	Name     string
	Contacts []ContactLink
	Sections []sections.Section
}

// NewView resolves doc into a View.
func NewView(doc types.Document) View {
	name := strings.TrimSpace(doc.FullName)
	if name == "" {
		name = NameFallback
	}
	return View{
		Doc:      doc,
		Theme:    NewTheme(doc.Style),
		Name:     name,
		Contacts: ContactLinks(doc),
		Sections: sections.ResolveOrder(doc),
	}
}

// Layout places a View on an A4 page. Implementations must not fail or panic
// on missing optional fields.
type Layout interface {
	Build(v View) *Node
}

// LayoutFunc adapts a function to Layout.
type LayoutFunc func(v View) *Node

// Build implements Layout.
func (f LayoutFunc) Build(v View) *Node { return f(v) }

// pageNode returns the A4 page root.
func pageNode(th Theme, extra Styles, children ...*Node) *Node {
	return El("div", th.Base().Merge(extra), children...).Attr("class", "page")
}

func nameNode(v View, style Styles) *Node {
	return El("h1", css("margin", "0", "font-size", "1.8em", "font-weight", "700").Merge(style), Txt(v.Name)).Role(RoleName)
}

// titleNode returns nil when the document has no headline.
func titleNode(v View, style Styles) *Node {
	title := strings.TrimSpace(v.Doc.Title)
	if title == "" {
		return nil
	}
	return El("p", css("margin", "1mm 0 0", "font-size", "1.1em", "font-weight", "500").Merge(style), Txt(title)).Role(RoleTitle)
}

func headingNode(title string, style Styles) *Node {
	return El("h2", css("margin", "0 0 2mm", "font-size", "1.1em", "font-weight", "700").Merge(style), Txt(title)).Role(RoleSectionTitle)
}

// sectionNode wraps a heading and body into a section container tagged with its id.
func sectionNode(s sections.Section, style Styles, children ...*Node) *Node {
	return El("section", style, children...).Attr(attrSection, s.ID)
}

// standardSection is the heading-then-body arrangement most layouts use.
func standardSection(s sections.Section, th Theme, wrap, heading Styles, opts bodyOptions) *Node {
	return sectionNode(s, wrap, headingNode(s.Title, heading), bodyNode(s, th, opts))
}
