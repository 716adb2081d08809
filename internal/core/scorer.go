// ABOUTME: Relevance scoring strategies for query/chunk matching
// ABOUTME: Cosine similarity over embeddings plus a lexical-overlap fallback
package core

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// minTokenChars filters stop-word-sized query tokens without a stop-word list:
// only tokens longer than this many characters count toward lexical overlap.
const minTokenChars = 3

// Query is the prepared form of a user query. Lexical scoring uses Tokens;
// cosine scoring uses Embedding.
type Query struct {
	Text      string
	Tokens    []string
	Embedding []float64
}

// Scorer ranks a chunk's relevance to a prepared query. Preparation happens
// once per query; Score is then called for every chunk in the corpus.
type Scorer interface {
	Name() string
	Prepare(ctx context.Context, query string) (Query, error)
	Score(q Query, chunk *models.EmbeddingChunk) (float64, error)
}

// Embedder converts text into a vector. Satisfied by the OpenAI client.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|) in a single pass.
// A length mismatch is a corpus/build bug and fails loudly; a zero-magnitude
// vector yields 0 rather than dividing by zero.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (magA * magB), nil
}

// CosineScorer scores chunks by cosine similarity between the query's
// embedding and each chunk's stored embedding.
type CosineScorer struct {
	embedder Embedder
}

// NewCosineScorer creates a cosine scorer backed by the given embedder
func NewCosineScorer(embedder Embedder) *CosineScorer {
	return &CosineScorer{embedder: embedder}
}

func (s *CosineScorer) Name() string { return "cosine" }

// Prepare embeds the query text once so scoring the corpus stays O(n)
func (s *CosineScorer) Prepare(ctx context.Context, query string) (Query, error) {
	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return Query{}, fmt.Errorf("embedding query: %w", err)
	}
	return Query{Text: query, Embedding: embedding}, nil
}

func (s *CosineScorer) Score(q Query, chunk *models.EmbeddingChunk) (float64, error) {
	return CosineSimilarity(q.Embedding, chunk.Embedding)
}

// LexicalScorer scores chunks by the fraction of meaningful query tokens that
// appear in the chunk text. It is the fallback used when real embeddings are
// not available, so retrieval still works without an embedding API.
//
// Matching is naive substring containment, not word-boundary matching, so a
// token can match inside a longer word (e.g. "art" inside "start"). Kept for
// compatibility with existing retrieval behavior.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical-overlap scorer
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

func (s *LexicalScorer) Name() string { return "lexical" }

func (s *LexicalScorer) Prepare(_ context.Context, query string) (Query, error) {
	return Query{Text: query, Tokens: queryTokens(query)}, nil
}

func (s *LexicalScorer) Score(q Query, chunk *models.EmbeddingChunk) (float64, error) {
	if len(q.Tokens) == 0 {
		return 0, nil
	}

	textLower := strings.ToLower(chunk.Text)
	matched := 0
	for _, token := range q.Tokens {
		if strings.Contains(textLower, token) {
			matched++
		}
	}
	return float64(matched) / float64(len(q.Tokens)), nil
}

// queryTokens lower-cases and splits the query on whitespace, dropping short
// tokens and duplicates. Each distinct meaningful word counts once.
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= minTokenChars || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}
