// ABOUTME: Retriever scores every corpus chunk and returns the top-K matches
// ABOUTME: Brute-force scan; corpora are bio-document-sized, not web-scale
package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// Default retrieval parameters, overridable via configuration
const (
	DefaultTopK = 5

	// DefaultMinSimilarity is the single acceptance threshold shared by both
	// scoring strategies: at least 30% of meaningful query words must match.
	DefaultMinSimilarity = 0.3
)

// Retriever runs the active scoring strategy over a corpus
type Retriever struct {
	scorer        Scorer
	topK          int
	minSimilarity float64
}

// NewRetriever creates a Retriever. Non-positive topK falls back to the default.
func NewRetriever(scorer Scorer, topK int, minSimilarity float64) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		scorer:        scorer,
		topK:          topK,
		minSimilarity: minSimilarity,
	}
}

// Strategy returns the name of the active scoring strategy
func (r *Retriever) Strategy() string {
	return r.scorer.Name()
}

// Search scores every chunk against the query, keeps those at or above the
// minimum similarity, and returns at most topK results ordered most-to-least
// relevant. Ties preserve corpus order so results are deterministic. An empty
// result is a normal outcome, not an error.
func (r *Retriever) Search(ctx context.Context, query string, corpus []models.EmbeddingChunk) ([]models.SearchResult, error) {
	q, err := r.scorer.Prepare(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("preparing query: %w", err)
	}

	results := make([]models.SearchResult, 0, r.topK)
	for i := range corpus {
		score, err := r.scorer.Score(q, &corpus[i])
		if err != nil {
			return nil, fmt.Errorf("scoring chunk %s: %w", corpus[i].ID, err)
		}
		if score >= r.minSimilarity {
			results = append(results, models.SearchResult{
				Chunk:      &corpus[i],
				Similarity: score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > r.topK {
		results = results[:r.topK]
	}
	return results, nil
}
