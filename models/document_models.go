package models

import "strings"

// Page is a single page of text extracted from an uploaded document
type Page struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Document is the ordered sequence of pages extracted from one upload. It is
// immutable once loaded and scoped to a single request.
type Document struct {
	Pages []Page `json:"pages"`
}

// FullText joins the text of all pages with newlines
func (d Document) FullText() string {
	texts := make([]string, len(d.Pages))
	for i, page := range d.Pages {
		texts[i] = page.Text
	}
	return strings.Join(texts, "\n")
}

// Chunk is a bounded slice of document text used as a retrieval unit
type Chunk struct {
	Text      string `json:"text"`
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
}

// ScoredChunk pairs a chunk with its similarity score from the vector index
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}
