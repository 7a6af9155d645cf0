package render

import "strings"

// measurer reports the rendered width of a string at the active font and
// size. Satisfied by *gofpdf.Fpdf; tests substitute a fixed-advance stub.
type measurer interface {
	GetStringWidth(s string) float64
}

// wrapText greedily wraps text so that every produced line measures at
// most maxW at the font and size currently set on m. The current line is
// extended word by word while it still fits; a word that would overflow
// closes the line and opens the next one. A single word wider than maxW
// stands alone on its own line (no hyphenation). Input with no
// whitespace comes back unchanged as one line.
func wrapText(m measurer, text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	if len(words) == 1 {
		return []string{words[0]}
	}

	lines := make([]string, 0, 2)
	cur := words[0]
	for _, w := range words[1:] {
		if m.GetStringWidth(cur+" "+w) <= maxW {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// capLines bounds a wrapped block to at most n lines, marking the cut
// with a trailing ellipsis. Bounds worst-case row growth in tables.
func capLines(lines []string, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	capped := make([]string, n)
	copy(capped, lines[:n])
	capped[n-1] += "..."
	return capped
}
