package pdf

import "strings"

// wrapText breaks text into lines no wider than maxWidth according to the
// measure function. Paragraph breaks are preserved. A single word wider
// than the column is hard-split character by character so no line ever
// overflows.
func wrapText(measure func(string) float64, text string, maxWidth float64) []string {
	normalized := strings.ReplaceAll(text, "\r", "")
	var lines []string

	for _, paragraph := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range strings.Fields(paragraph) {
			segments := []string{word}
			if measure(word) > maxWidth {
				segments = splitLongWord(measure, word, maxWidth)
			}
			for _, segment := range segments {
				candidate := segment
				if current != "" {
					candidate = current + " " + segment
				}
				if measure(candidate) <= maxWidth {
					current = candidate
					continue
				}
				if current != "" {
					lines = append(lines, current)
				}
				current = segment
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func splitLongWord(measure func(string) float64, word string, maxWidth float64) []string {
	var out []string
	current := ""
	for _, ch := range word {
		candidate := current + string(ch)
		if measure(candidate) <= maxWidth || current == "" {
			current = candidate
			continue
		}
		out = append(out, current)
		current = string(ch)
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
