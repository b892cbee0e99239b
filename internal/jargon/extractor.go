// Package jargon identifies a text's high-signal technical vocabulary
// using length, casing, and frequency heuristics rather than a curated
// dictionary. The resulting terms drive highlighting in the study UI.
package jargon

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxTerms is the default cap on returned terms.
const DefaultMaxTerms = 30

// minLongWordLen is the exclusive length threshold for plain long words.
const minLongWordLen = 10

// minTechTermLen is the inclusive length threshold for technical-pattern
// matches.
const minTechTermLen = 6

// techTermWeight is the score added per technical-pattern occurrence.
// Casing and hyphenation are a stronger jargon signal than raw length, so
// they count double.
const techTermWeight = 2

// Pre-compiled token patterns.
var (
	// wordPattern tokenises on letter-led alphanumeric runs.
	wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9]*`)

	// techPattern matches camelCase, PascalCase with an internal capital,
	// or hyphenated lowercase pairs.
	techPattern = regexp.MustCompile(`[a-z]+[A-Z][a-zA-Z]*|[A-Z][a-z]+[A-Z][a-zA-Z]*|[a-z]+-[a-z]+`)

	// hasLowerPattern checks that a token is not an all-caps acronym.
	hasLowerPattern = regexp.MustCompile(`[a-z]`)
)

// Extractor scores and ranks candidate jargon terms.
type Extractor struct {
	maxTerms int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxTerms sets the cap on returned terms.
func WithMaxTerms(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxTerms = n
		}
	}
}

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxTerms: DefaultMaxTerms}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text's jargon terms, lowercased, ordered by
// descending frequency score with ties kept in first-seen order.
//
// Two passes share one counter: plain tokens longer than ten characters
// that are not stop words and not all-caps acronyms score one point per
// occurrence; technical-pattern matches of six or more characters score
// two. A term can accumulate from both passes.
func (e *Extractor) Extract(text string) []string {
	scores := make(map[string]int)
	var order []string

	add := func(term string, points int) {
		if _, seen := scores[term]; !seen {
			order = append(order, term)
		}
		scores[term] += points
	}

	for _, token := range wordPattern.FindAllString(text, -1) {
		if len(token) <= minLongWordLen {
			continue
		}
		if !hasLowerPattern.MatchString(token) {
			continue
		}
		lower := strings.ToLower(token)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		add(lower, 1)
	}

	for _, match := range techPattern.FindAllString(text, -1) {
		if len(match) < minTechTermLen {
			continue
		}
		lower := strings.ToLower(match)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		add(lower, techTermWeight)
	}

	// Stable sort keeps first-seen order within equal scores.
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > e.maxTerms {
		order = order[:e.maxTerms]
	}
	return order
}
