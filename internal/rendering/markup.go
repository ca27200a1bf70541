package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed assets/*
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "assets/page.html.tmpl"))

type pageData struct {
	Title      string
	Stylesheet template.CSS
	Body       template.HTML
}

// stylesheet is the page-level CSS shared by every layout. Layout styling
// lives in inline style attributes on the tree itself.
func stylesheet(th Theme) string {
	return strings.Join([]string{
		"@page { size: A4; margin: 0; }",
		"* { box-sizing: border-box; }",
		"html, body { margin: 0; padding: 0; background: #ffffff; }",
		fmt.Sprintf("body { font-family: %s; font-size: %s; color: %s; -webkit-print-color-adjust: exact; print-color-adjust: exact; }",
			th.FontFamily, th.FontSize, th.TextColor),
		fmt.Sprintf(".page { width: %s; min-height: %s; overflow: hidden; }", pageWidth, pageHeight),
		"a { color: inherit; text-decoration: none; }",
		"h1, h2, h3, p, ul { margin-top: 0; }",
		"section, li { break-inside: avoid; }",
	}, "\n")
}

// Markup serializes a page tree into a complete, self-contained HTML document
// sized for A4 capture.
func Markup(root *Node, th Theme, title string) (string, error) {
	var body bytes.Buffer
	if root != nil {
		if err := html.Render(&body, toHTML(root)); err != nil {
			return "", &RenderError{Message: "failed to serialize page tree", Cause: err}
		}
	}

	var out strings.Builder
	err := pageTemplate.Execute(&out, pageData{
		Title:      title,
		Stylesheet: template.CSS(stylesheet(th)),
		Body:       template.HTML(body.String()), //nolint:gosec // produced by html.Render, which escapes text and attributes
	})
	if err != nil {
		return "", &TemplateError{Message: "failed to execute page template", Cause: err}
	}
	return out.String(), nil
}

// toHTML converts a component tree into an x/net/html tree. Attributes are
// emitted in a fixed order so output is deterministic.
func toHTML(n *Node) *html.Node {
	if n.Type == TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}
	if style := n.Style.String(); style != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: style})
	}

	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}
