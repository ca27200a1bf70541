package rendering

import (
	"net/url"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// ContactKind identifies a contact field.
type ContactKind string

const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactLocation ContactKind = "location"
	ContactGitHub   ContactKind = "github"
	ContactLinkedIn ContactKind = "linkedin"
)

// ContactLink is one present contact value with its link target.
type ContactLink struct {
	Kind  ContactKind `json:"kind"`
	Label string      `json:"label"`
	Href  string      `json:"href"`
}

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// ContactLinks returns the present contact fields of doc in display order.
func ContactLinks(doc types.Document) []ContactLink {
	fields := []struct {
		kind  ContactKind
		value string
	}{
		{ContactEmail, doc.Email},
		{ContactPhone, doc.Phone},
		{ContactLocation, doc.Location},
		{ContactGitHub, doc.GitHub},
		{ContactLinkedIn, doc.LinkedIn},
	}

	links := make([]ContactLink, 0, len(fields))
	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		links = append(links, ContactLink{Kind: f.kind, Label: value, Href: contactHref(f.kind, value)})
	}
	return links
}

func contactHref(kind ContactKind, value string) string {
	switch kind {
	case ContactEmail:
		return "mailto:" + value
	case ContactPhone:
		return "tel:" + value
	case ContactLocation:
		return mapSearchURL + strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	default:
		if strings.HasPrefix(value, "http") {
			return value
		}
		return "https://" + value
	}
}

// contactLine renders links separated by sep. Separators only sit between
// two present items. It returns nil when there is nothing to show.
func contactLine(links []ContactLink, sep string, style Styles) *Node {
	if len(links) == 0 {
		return nil
	}

	line := El("div", style).Role(RoleContacts)
	for i, link := range links {
		if i > 0 {
			line.Append(El("span", css("margin", "0 1.5mm", "opacity", "0.7"), Txt(sep)).Role(RoleSeparator))
		}
		a := El("a", css("color", "inherit", "text-decoration", "none"), Txt(link.Label)).
			Role(RoleContact).
			Attr("href", link.Href).
			Attr("data-kind", string(link.Kind))
		line.Append(a)
	}
	return line
}
