package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runeWidth measures one unit per rune, which makes the wrap boundaries
// exact and independent of real font metrics.
type runeWidth struct{}

func (runeWidth) GetStringWidth(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapTextEveryLineFits(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog near the riverbank"
	lines := wrapText(runeWidth{}, text, 16)

	require.NotEmpty(t, lines)
	for _, ln := range lines {
		assert.LessOrEqual(t, runeWidth{}.GetStringWidth(ln), 16.0, "line %q", ln)
	}
}

func TestWrapTextRejoinReproducesInput(t *testing.T) {
	text := "  alpha   beta\tgamma  delta epsilon "
	lines := wrapText(runeWidth{}, text, 12)

	joined := strings.Join(lines, " ")
	assert.Equal(t, strings.Join(strings.Fields(text), " "), joined)
}

func TestWrapTextOverwideWordStandsAlone(t *testing.T) {
	lines := wrapText(runeWidth{}, "a incomprehensibilities b", 10)
	require.Equal(t, []string{"a", "incomprehensibilities", "b"}, lines)
}

func TestWrapTextNoWhitespaceSingleLine(t *testing.T) {
	lines := wrapText(runeWidth{}, "unbroken-token-without-spaces", 5)
	require.Equal(t, []string{"unbroken-token-without-spaces"}, lines)
}

func TestWrapTextEmpty(t *testing.T) {
	assert.Nil(t, wrapText(runeWidth{}, "", 10))
}

func TestWrapTextGreedyBoundary(t *testing.T) {
	// "aa bb" is exactly 5 wide: the second word must still fit.
	lines := wrapText(runeWidth{}, "aa bb cc", 5)
	require.Equal(t, []string{"aa bb", "cc"}, lines)
}

func TestCapLines(t *testing.T) {
	in := []string{"one", "two", "three", "four"}

	assert.Equal(t, in, capLines(in, 4))
	assert.Equal(t, in, capLines(in, 0))

	capped := capLines(in, 2)
	require.Len(t, capped, 2)
	assert.Equal(t, "one", capped[0])
	assert.Equal(t, "two...", capped[1])
	// The input slice stays untouched.
	assert.Equal(t, "two", in[1])
}
