// Package segmenter splits raw text into overlapping chunks suitable for
// embedding. Cuts prefer natural boundaries: a paragraph break wins over a
// sentence end, which wins over a hard cut at the size limit.
package segmenter

import "strings"

// DefaultMaxChunkSize is the default number of characters per chunk.
const DefaultMaxChunkSize = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks.
const DefaultOverlap = 200

// sentenceMarks are the terminators searched for when no paragraph break
// falls within the boundary window. The cut lands immediately after the
// punctuation character.
var sentenceMarks = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// Segmenter produces overlapping, boundary-aware chunks.
type Segmenter struct {
	maxChunkSize int
	overlap      int
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithMaxChunkSize sets the chunk size limit in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Segmenter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
// Overlaps at or above the chunk size are permitted; the advance rule in
// Segment still guarantees termination.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a Segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		maxChunkSize: DefaultMaxChunkSize,
		overlap:      DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment splits text into overlapping chunks.
//
// Whitespace-only input yields no chunks. Text that fits within the size
// limit is returned whole, trimmed. Otherwise each chunk ends at the best
// boundary found in the trailing overlap window of the candidate cut:
// first the last paragraph break, then the rightmost sentence terminator,
// then a hard cut at the size limit. The final chunk always extends to the
// end of the text. Each chunk is trimmed and empty results are dropped.
func (s *Segmenter) Segment(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.maxChunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + s.maxChunkSize
		if end >= len(text) {
			// Remaining tail fits; the last chunk takes all of it.
			end = len(text)
		} else {
			end = s.cutPoint(text, start, end)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}

		// Step back by the overlap, but never stall: if the overlap would
		// put the next start at or before the current one, jump to the cut
		// instead so the loop always makes forward progress.
		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// cutPoint finds where to end a non-final chunk whose candidate window is
// text[start:end]. Only the last overlap-sized portion of the window is
// searched for a boundary.
func (s *Segmenter) cutPoint(text string, start, end int) int {
	windowStart := end - s.overlap
	if windowStart < start {
		windowStart = start
	}
	window := text[windowStart:end]

	// A paragraph break is the strongest boundary; cut right after it.
	if i := strings.LastIndex(window, "\n\n"); i >= 0 {
		return windowStart + i + 2
	}

	// Otherwise take the rightmost sentence terminator across all marks
	// and cut right after the punctuation character.
	best := -1
	for _, mark := range sentenceMarks {
		if i := strings.LastIndex(window, mark); i > best {
			best = i
		}
	}
	if best >= 0 {
		return windowStart + best + 1
	}

	// No boundary in the window: hard cut at the size limit.
	return end
}
