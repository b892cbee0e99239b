// Package html converts scraped HTML into readable plain text.
//
// Non-content markup (scripts, styles, noscript blocks) is removed, the
// main content region is preferred over boilerplate when one can be
// identified, and whitespace is collapsed.
package html

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML extraction.
var (
	titleTag     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag      = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)

	// Main-content candidates, tried in order. The first match wins;
	// otherwise the whole remaining document is used.
	mainTag      = regexp.MustCompile(`(?is)<main[^>]*>(.*?)</main>`)
	articleTag   = regexp.MustCompile(`(?is)<article[^>]*>(.*?)</article>`)
	roleMainTag  = regexp.MustCompile(`(?is)<([a-z][a-z0-9]*)[^>]*\brole=["']?main["']?[^>]*>(.*)</`)
	contentClass = regexp.MustCompile(`(?is)<([a-z][a-z0-9]*)[^>]*\b(?:class|id)=["'][^"']*\bcontent\b[^"']*["'][^>]*>(.*)</`)

	blockClose    = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	blockOpen     = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// ExtractText converts an HTML document to plain text.
func ExtractText(raw string) string {
	// Drop non-content markup entirely.
	content := scriptTag.ReplaceAllString(raw, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Prefer the main content region over navigation and boilerplate.
	content = selectMainContent(content)

	// Turn block boundaries into newlines before stripping tags.
	content = blockOpen.ReplaceAllString(content, "\n")
	content = blockClose.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")

	content = html.UnescapeString(content)

	// Collapse runs of spaces, keep paragraph structure.
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	var kept []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// ExtractTitle returns the document title, or "" when none is present.
func ExtractTitle(raw string) string {
	matches := titleTag.FindStringSubmatch(raw)
	if len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// selectMainContent narrows the document to its primary content region
// when a <main>, <article>, role=main, or content class/id container is
// present. Falls back to the whole document.
func selectMainContent(content string) string {
	if m := mainTag.FindStringSubmatch(content); len(m) > 1 {
		return m[1]
	}
	if m := articleTag.FindStringSubmatch(content); len(m) > 1 {
		return m[1]
	}
	if m := roleMainTag.FindStringSubmatch(content); len(m) > 2 {
		return m[2]
	}
	if m := contentClass.FindStringSubmatch(content); len(m) > 2 {
		return m[2]
	}
	return content
}
