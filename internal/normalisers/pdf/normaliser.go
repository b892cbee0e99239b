// Package pdf normalises extracted PDF page text into a single document
// string: pages are joined with newlines and whitespace is collapsed.
package pdf

import (
	"regexp"
	"strings"
)

var (
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// JoinPages joins per-page text into one normalised document.
func JoinPages(pages []string) string {
	content := strings.Join(pages, "\n")

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
