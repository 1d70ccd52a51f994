package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"legaldoc/models"
)

// DefaultTopK is the number of chunks retrieved per question
const DefaultTopK = 5

// Retriever finds the chunks most similar to a query using an embedding-backed
// vector index. A fresh in-memory index is built for every request's chunk
// set; nothing is cached or reused across requests.
type Retriever struct {
	embedder chromem.EmbeddingFunc
	topK     int
}

// NewRetriever creates a retriever over the given embedding function
func NewRetriever(embedder chromem.EmbeddingFunc, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, topK: topK}
}

// Retrieve embeds the chunks and the query and returns the topK most similar
// chunks. An empty chunk set yields an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, chunks []models.Chunk, query string) ([]models.ScoredChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection("document", nil, r.embedder)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create collection: %v", models.ErrRetrieval, err)
	}

	for i, chunk := range chunks {
		doc := chromem.Document{
			ID:      strconv.Itoa(i),
			Content: chunk.Text,
			Metadata: map[string]string{
				"page_start": strconv.Itoa(chunk.PageStart),
				"page_end":   strconv.Itoa(chunk.PageEnd),
			},
		}
		if err := collection.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("%w: failed to index chunk %d: %v", models.ErrRetrieval, i, err)
		}
	}

	// The index rejects queries asking for more results than it holds.
	k := r.topK
	if count := collection.Count(); k > count {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	results, err := collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query failed: %v", models.ErrRetrieval, err)
	}

	scored := make([]models.ScoredChunk, 0, len(results))
	for _, result := range results {
		pageStart, _ := strconv.Atoi(result.Metadata["page_start"])
		pageEnd, _ := strconv.Atoi(result.Metadata["page_end"])
		scored = append(scored, models.ScoredChunk{
			Chunk: models.Chunk{
				Text:      result.Content,
				PageStart: pageStart,
				PageEnd:   pageEnd,
			},
			Score: result.Similarity,
		})
	}
	return scored, nil
}
