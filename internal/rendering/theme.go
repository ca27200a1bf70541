package rendering

import (
	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// Theme is the style derivation shared by every layout.
type Theme struct {
	FontFamily  string
	FontSize    string
	AccentColor string
	TextColor   string
}

var fontStacks = map[types.FontFamily]string{
	types.FontSans:  "ui-sans-serif, system-ui, sans-serif",
	types.FontSerif: "Georgia, serif",
	types.FontMono:  "'Courier New', monospace",
}

var fontScales = map[types.FontSize]string{
	types.SizeSmall:  "0.7rem",
	types.SizeMedium: "0.8rem",
	types.SizeLarge:  "0.9rem",
}

// NewTheme derives a Theme from document style settings. Unknown or empty
// values use the document defaults, and so do colors that are not hex, since
// they end up inside the page stylesheet.
func NewTheme(s types.Style) Theme {
	th := Theme{
		FontFamily:  fontStacks[document.DefaultFont],
		FontSize:    fontScales[document.DefaultSize],
		AccentColor: document.DefaultAccentColor,
		TextColor:   document.DefaultTextColor,
	}
	if f, ok := fontStacks[s.Font]; ok {
		th.FontFamily = f
	}
	if sz, ok := fontScales[s.Size]; ok {
		th.FontSize = sz
	}
	if document.IsHexColor(s.AccentColor) {
		th.AccentColor = s.AccentColor
	}
	if document.IsHexColor(s.TextColor) {
		th.TextColor = s.TextColor
	}
	return th
}

// Base returns the declarations every page root carries.
func (th Theme) Base() Styles {
	return css(
		"font-family", th.FontFamily,
		"font-size", th.FontSize,
		"color", th.TextColor,
		"line-height", "1.45",
		"box-sizing", "border-box",
		"width", pageWidth,
		"min-height", pageHeight,
		"margin", "0 auto",
		"background", "#ffffff",
	)
}

// Accent returns declarations for accent-colored text.
func (th Theme) Accent() Styles {
	return css("color", th.AccentColor)
}

// Body returns declarations for body text.
func (th Theme) Body() Styles {
	return css("color", th.TextColor)
}

// A4 page box. Physical units only.
const (
	pageWidth  = "210mm"
	pageHeight = "297mm"
)
