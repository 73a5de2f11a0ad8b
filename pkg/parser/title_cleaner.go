package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bulletMarkers are the list markers language models put around titles.
const bulletMarkers = "-•*"

// CleanLine trims bullet markers and whitespace from both ends of a line and
// returns it in NFC form. Clean input is returned unchanged.
func CleanLine(line string) string {
	trimmed := strings.TrimFunc(line, isMarkerOrSpace)
	return norm.NFC.String(trimmed)
}

// CleanTitles splits model output into lines, cleans each and drops the
// empty ones, keeping their original order.
func CleanTitles(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := CleanLine(line); cleaned != "" {
			titles = append(titles, cleaned)
		}
	}
	return titles
}

func isMarkerOrSpace(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(bulletMarkers, r)
}
