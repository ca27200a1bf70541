package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_UnifiesBulletGlyphs(t *testing.T) {
	result := CleanText("● Led team\n▪ Shipped\n◦ Hired\n• Kept")

	assert.Equal(t, "• Led team\n• Shipped\n• Hired\n• Kept", result)
}

func TestCleanText_CollapsesSpaces(t *testing.T) {
	result := CleanText("Go    developer\twith   five   years")

	assert.Equal(t, "Go developer with five years", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Experience\n\n\n\n\nEducation\n \n \n \nSkills")

	assert.Equal(t, "Experience\n\nEducation\n\nSkills", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Résumé with émojis 🚀 and spéciàl chàracters")

	assert.Contains(t, result, "émojis 🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test   content\n\n\n• a\n● b"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestCountBullets(t *testing.T) {
	text := CleanText("Summary\n● one\n- two\n* three\nplain")
	assert.Equal(t, 3, CountBullets(text))
	assert.Equal(t, 0, CountBullets(""))
}
