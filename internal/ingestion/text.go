// Package ingestion turns uploaded résumé files into cleaned plain text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	bulletGlyphs   = regexp.MustCompile(`[•●▪◦■►‣]`)
	inlineSpace    = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	extraBlankLine = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text while keeping its line structure.
// Bullet glyphs are unified to "•", runs of spaces collapse to one, and at
// most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = extraBlankLine.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line
func cleanLine(line string) string {
	line = bulletGlyphs.ReplaceAllString(line, "•")
	line = inlineSpace.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "•")
}

// CountBullets returns how many lines of cleaned text are bullet items.
func CountBullets(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if isBulletLine(line) {
			n++
		}
	}
	return n
}
