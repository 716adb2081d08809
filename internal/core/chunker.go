// ABOUTME: Splits source documents into bounded, overlapping text chunks
// ABOUTME: Sentence-greedy accumulation with trailing-overlap continuity
package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

const (
	// charsPerToken is a fixed approximation (no tokenizer dependency).
	charsPerToken = 4

	// minChunkChars drops near-empty fragments such as stray punctuation.
	minChunkChars = 20

	// DefaultMaxTokens is the per-chunk token budget.
	DefaultMaxTokens = 512

	// DefaultOverlapTokens is the continuity overlap carried between chunks.
	DefaultOverlapTokens = 50
)

// sentencePattern matches runs of non-terminator characters followed by one
// or more of . ! ? plus trailing whitespace.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+\s*`)

// ChunkText splits text into chunks of approximately maxTokens, with
// overlapTokens of trailing context repeated at each chunk boundary.
// Sentences are never split: a single sentence longer than the budget is
// emitted whole, favoring semantic coherence over a strict size bound.
func ChunkText(text string, maxTokens, overlapTokens int) []string {
	maxChars := maxTokens * charsPerToken
	overlapChars := overlapTokens * charsPerToken

	sentences := sentencePattern.FindAllString(text, -1)
	if sentences == nil {
		// No terminator anywhere: treat the whole text as one sentence.
		sentences = []string{text}
	}

	var chunks []string
	current := ""

	for _, sentence := range sentences {
		if len(current)+len(sentence) > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(current))

			// Seed the next chunk with the tail of the one just flushed so
			// context carries across the boundary. The offset backs up to a
			// rune boundary so multi-byte characters are never split.
			overlapStart := len(current) - overlapChars
			if overlapStart < 0 {
				overlapStart = 0
			}
			for overlapStart > 0 && !utf8.RuneStart(current[overlapStart]) {
				overlapStart--
			}
			current = current[overlapStart:] + sentence
		} else {
			current += sentence
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	kept := chunks[:0]
	for _, chunk := range chunks {
		if len(chunk) >= minChunkChars {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// ProcessDocument chunks one source document and tags each chunk with its
// provenance. The source name becomes part of the chunk id:
// {source}-chunk-{index}.
func ProcessDocument(source, text string, maxTokens int) []models.DocumentChunk {
	texts := ChunkText(text, maxTokens, DefaultOverlapTokens)

	chunks := make([]models.DocumentChunk, len(texts))
	for i, t := range texts {
		chunks[i] = models.DocumentChunk{
			ID:   fmt.Sprintf("%s-chunk-%d", source, i),
			Text: t,
			Metadata: models.ChunkMetadata{
				Source:      source,
				ChunkIndex:  i,
				TotalChunks: len(texts),
			},
		}
	}
	return chunks
}
