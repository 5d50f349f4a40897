package terminal

import "strings"

// Wrap greedily wraps text into lines of at most width columns. All
// whitespace, newlines included, collapses to single spaces, the way classic
// message readers reflow stored bodies. Words longer than width get a line
// of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
