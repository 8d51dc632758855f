package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ten points per rune keeps the arithmetic easy to follow
func runeMeasure(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrapTextWordBoundaries(t *testing.T) {
	lines := wrapText(runeMeasure, "replace front brake pads", 100)
	assert.Equal(t, []string{"replace", "front", "brake pads"}, lines)
}

func TestWrapTextFitsOnOneLine(t *testing.T) {
	lines := wrapText(runeMeasure, "oil change", 200)
	assert.Equal(t, []string{"oil change"}, lines)
}

func TestWrapTextPreservesParagraphs(t *testing.T) {
	lines := wrapText(runeMeasure, "first\r\n\r\nsecond", 200)
	assert.Equal(t, []string{"first", "", "second"}, lines)
}

func TestWrapTextHardSplitsLongWords(t *testing.T) {
	lines := wrapText(runeMeasure, "abcdefghij", 40)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, lines)

	for _, line := range lines {
		assert.LessOrEqual(t, runeMeasure(line), 40.0, "no line may overflow the column")
	}
}

func TestWrapTextLongWordAmongShortOnes(t *testing.T) {
	lines := wrapText(runeMeasure, "fit turbocharger-intercooler-pipework kit", 150)
	for _, line := range lines {
		assert.LessOrEqual(t, runeMeasure(line), 150.0)
	}
	assert.Equal(t, "fit", lines[0])
	assert.Contains(t, strings.Join(lines, ""), "kit")
}

func TestWrapTextEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText(runeMeasure, "", 100))
	assert.Equal(t, []string{""}, wrapText(runeMeasure, "   ", 100))
}

func TestWrapTextNarrowerThanOneChar(t *testing.T) {
	// even when a single character is wider than the column, progress is
	// made one character per line
	lines := wrapText(runeMeasure, "ab", 5)
	assert.Equal(t, []string{"a", "b"}, lines)
}
