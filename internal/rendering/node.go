package rendering

import (
	"sort"
	"strings"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType string

const (
	ElementNode NodeType = "element"
	TextNode    NodeType = "text"
)

// Data roles mark the parts of a tree that carry content. Both render targets
// keep them, which is what outline extraction relies on.
const (
	RoleName         = "name"
	RoleTitle        = "title"
	RoleContacts     = "contacts"
	RoleContact      = "contact"
	RoleSeparator    = "separator"
	RoleSectionTitle = "section-title"
	RoleSectionBody  = "section-body"
	RoleItem         = "item"

	attrRole    = "data-role"
	attrSection = "data-section"
)

// Styles is a set of inline CSS declarations.
type Styles map[string]string

// css builds Styles from property/value pairs.
func css(pairs ...string) Styles {
	s := make(Styles, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		s[pairs[i]] = pairs[i+1]
	}
	return s
}

// With returns a copy of s with the given pairs added or replaced.
func (s Styles) With(pairs ...string) Styles {
	return s.Merge(css(pairs...))
}

// Merge returns a copy of s with every declaration of other applied on top.
func (s Styles) Merge(other Styles) Styles {
	out := make(Styles, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// String renders s as a style attribute value with properties in sorted order.
func (s Styles) String() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s[k])
	}
	return b.String()
}

// Node is one element or text node of the component tree.
type Node struct {
	Type     NodeType          `json:"type"`
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    Styles            `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// El creates an element node. Nil children are skipped.
func El(tag string, style Styles, children ...*Node) *Node {
	n := &Node{Type: ElementNode, Tag: tag, Style: style}
	return n.Append(children...)
}

var textCleaner = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "")

// Txt creates a text node. Line endings are stored the way an HTML parser
// reads them back, so both render targets carry identical text.
func Txt(s string) *Node {
	return &Node{Type: TextNode, Text: textCleaner.Replace(s)}
}

// Append adds the non-nil children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr sets an attribute and returns n.
func (n *Node) Attr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Role sets the data-role attribute.
func (n *Node) Role(role string) *Node {
	return n.Attr(attrRole, role)
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextContent concatenates every descendant text node.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// Find returns every descendant (including n) whose attribute key equals value.
func (n *Node) Find(key, value string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode && c.Attrs[key] == value {
			out = append(out, c)
		}
		return true
	})
	return out
}
