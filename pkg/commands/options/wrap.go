// Package options holds flag helpers shared by the longread commands.
package options

import "strings"

// Wrap80 wraps text for cobra help output.
func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap breaks text on word boundaries so no line exceeds width, unless a
// single word is longer.
func Wrap(text string, width int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(words[0])
	room := width - len(words[0])
	for _, word := range words[1:] {
		if len(word)+1 > room {
			b.WriteString("\n" + word)
			room = width - len(word)
			continue
		}
		b.WriteString(" " + word)
		room -= 1 + len(word)
	}
	return b.String()
}
