package services

import (
	"fmt"
	"strings"

	"legaldoc/models"
)

// Default chunking parameters for Q&A retrieval
const (
	DefaultChunkSize    = 4000
	DefaultChunkOverlap = 400
)

// defaultSeparators orders split points from coarsest to finest: paragraph,
// line, sentence, word, character.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveSplitter splits text into overlapping chunks sized for retrieval.
// It prefers coarse boundaries and falls back to finer ones only for pieces
// that still exceed the chunk size.
type RecursiveSplitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewRecursiveSplitter creates a splitter with the given chunk size and
// overlap. The overlap must be smaller than the chunk size.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) (*RecursiveSplitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", models.ErrConfiguration, chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be non-negative and smaller than chunk size %d",
			models.ErrConfiguration, chunkOverlap, chunkSize)
	}
	return &RecursiveSplitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}, nil
}

// SplitDocument splits every page of a document, tagging each chunk with the
// page it came from
func (s *RecursiveSplitter) SplitDocument(doc models.Document) []models.Chunk {
	var chunks []models.Chunk
	for _, page := range doc.Pages {
		for _, piece := range s.Split(page.Text) {
			chunks = append(chunks, models.Chunk{
				Text:      piece,
				PageStart: page.Index,
				PageEnd:   page.Index,
			})
		}
	}
	return chunks
}

// Split breaks text into pieces no longer than the chunk size, carrying
// roughly chunkOverlap characters over between consecutive pieces
func (s *RecursiveSplitter) Split(text string) []string {
	return s.splitRecursive(text, s.separators)
}

func (s *RecursiveSplitter) splitRecursive(text string, separators []string) []string {
	// Pick the coarsest separator that actually occurs in the text.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var final []string
	var good []string
	for _, piece := range splitKeepSeparator(text, separator) {
		if len(piece) <= s.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good)...)
			good = nil
		}
		if len(remaining) == 0 {
			// Nothing finer to try; the piece passes through oversized.
			final = append(final, piece)
		} else {
			final = append(final, s.splitRecursive(piece, remaining)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good)...)
	}
	return final
}

// merge packs consecutive small pieces into chunks up to chunkSize, dropping
// pieces from the front of the window until the carryover fits the overlap
// budget whenever a chunk is emitted.
func (s *RecursiveSplitter) merge(splits []string) []string {
	var chunks []string
	var window []string
	total := 0

	for _, piece := range splits {
		if total+len(piece) > s.chunkSize && len(window) > 0 {
			if chunk := strings.TrimSpace(strings.Join(window, "")); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.chunkOverlap || (total+len(piece) > s.chunkSize && total > 0) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += len(piece)
	}

	if chunk := strings.TrimSpace(strings.Join(window, "")); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// splitKeepSeparator splits text on separator, keeping the separator attached
// to the preceding piece so that joins are lossless. An empty separator splits
// into individual characters.
func splitKeepSeparator(text, separator string) []string {
	if separator == "" {
		parts := make([]string, 0, len(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
		return parts
	}

	pieces := strings.Split(text, separator)
	parts := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		if i < len(pieces)-1 {
			piece += separator
		}
		if piece != "" {
			parts = append(parts, piece)
		}
	}
	return parts
}
