package scene

import "strings"

// averageCharWidth is the width of an average glyph as a fraction of the
// font size for proportional sans-serif fonts.
const averageCharWidth = 0.6

// EstimateTextWidth gives a rough rendered width of text at fontSize.
func EstimateTextWidth(text string, fontSize float64) float64 {
	if fontSize <= 0 || text == "" {
		return 0
	}
	return float64(len([]rune(text))) * fontSize * averageCharWidth
}

// LineHeight is the baseline-to-baseline distance used for stacked text.
func LineHeight(fontSize float64) float64 {
	if fontSize <= 0 {
		return 15
	}
	return fontSize * 1.2
}

// Wrap breaks text into lines no wider than width, splitting on spaces.
// A single word wider than width stays on its own line.
func Wrap(text string, width, fontSize float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if EstimateTextWidth(candidate, fontSize) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
