package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// OutlineEntry is the content signature of one rendered section: what must be
// identical between the preview tree and the export markup.
type OutlineEntry struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Text  []string `json:"text"`
}

// OutlineTree extracts the section outline from a component tree in document order.
func OutlineTree(root *Node) []OutlineEntry {
	var out []OutlineEntry
	root.Walk(func(n *Node) bool {
		id, ok := n.Attrs[attrSection]
		if n.Type != ElementNode || !ok {
			return true
		}

		entry := OutlineEntry{ID: id, Text: []string{}}
		if titles := n.Find(attrRole, RoleSectionTitle); len(titles) > 0 {
			entry.Title = titles[0].TextContent()
		}
		for _, item := range n.Find(attrRole, RoleItem) {
			entry.Text = append(entry.Text, item.TextContent())
		}
		out = append(out, entry)
		return false
	})
	return out
}

// OutlineMarkup extracts the section outline from export markup.
func OutlineMarkup(markup string) ([]OutlineEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var out []OutlineEntry
	doc.Find("[" + attrSection + "]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr(attrSection)
		entry := OutlineEntry{
			ID:    id,
			Title: s.Find(roleSelector(RoleSectionTitle)).First().Text(),
			Text:  []string{},
		}
		s.Find(roleSelector(RoleItem)).Each(func(_ int, item *goquery.Selection) {
			entry.Text = append(entry.Text, item.Text())
		})
		out = append(out, entry)
	})
	return out, nil
}

func roleSelector(role string) string {
	return fmt.Sprintf(`[%s="%s"]`, attrRole, role)
}

// CheckEquivalence renders doc with r to both targets and compares their outlines.
func CheckEquivalence(r *Renderer, doc types.Document) error {
	tree := OutlineTree(r.Tree(doc))

	markup, err := r.Markup(doc)
	if err != nil {
		return err
	}
	exported, err := OutlineMarkup(markup)
	if err != nil {
		return &EquivalenceError{TemplateID: r.ID(), Detail: err.Error()}
	}

	if len(tree) != len(exported) {
		return &EquivalenceError{
			TemplateID: r.ID(),
			Detail:     fmt.Sprintf("preview has %d sections, export has %d", len(tree), len(exported)),
		}
	}
	for i := range tree {
		a, b := tree[i], exported[i]
		switch {
		case a.ID != b.ID:
			return &EquivalenceError{TemplateID: r.ID(), Detail: fmt.Sprintf("section %d: preview %q, export %q", i, a.ID, b.ID)}
		case a.Title != b.Title:
			return &EquivalenceError{TemplateID: r.ID(), Detail: fmt.Sprintf("section %q: title %q vs %q", a.ID, a.Title, b.Title)}
		case !equalStrings(a.Text, b.Text):
			return &EquivalenceError{TemplateID: r.ID(), Detail: fmt.Sprintf("section %q: body %q vs %q", a.ID, a.Text, b.Text)}
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
