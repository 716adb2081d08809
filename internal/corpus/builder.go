// ABOUTME: Offline corpus builder: documents in, embedding snapshot out
// ABOUTME: Chunks ordered sources and optionally embeds them in batches
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// embedBatchSize bounds how many chunks go to the embedding API per request
const embedBatchSize = 50

// BatchEmbedder is the port to an embedding model. Satisfied by the OpenAI
// client; nil means the snapshot keeps empty placeholder embeddings and the
// service falls back to lexical matching at serve time.
type BatchEmbedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// Builder turns source documents into an EmbeddingChunk corpus
type Builder struct {
	maxTokens int
	embedder  BatchEmbedder
}

// NewBuilder creates a Builder. Non-positive maxTokens uses the default.
func NewBuilder(maxTokens int, embedder BatchEmbedder) *Builder {
	if maxTokens <= 0 {
		maxTokens = core.DefaultMaxTokens
	}
	return &Builder{maxTokens: maxTokens, embedder: embedder}
}

// BuildFromDirectory chunks every markdown/plain-text file in dir, in sorted
// name order so rebuilds are deterministic.
func (b *Builder) BuildFromDirectory(ctx context.Context, dir string) ([]models.EmbeddingChunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".md", ".txt":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no source documents found in %s", dir)
	}

	return b.BuildFromFiles(ctx, paths)
}

// BuildFromFiles chunks a curated, ordered list of source documents and
// concatenates the results, preserving per-document chunk ordering. Missing
// files are skipped with a log line rather than failing the whole build.
func (b *Builder) BuildFromFiles(ctx context.Context, paths []string) ([]models.EmbeddingChunk, error) {
	var all []models.EmbeddingChunk

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("skipping (not found): %s", filepath.Base(path))
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		source := filepath.Base(path)
		chunks := core.ProcessDocument(source, string(data), b.maxTokens)
		if len(chunks) == 0 {
			log.Printf("no chunks generated from %s", source)
			continue
		}

		for _, chunk := range chunks {
			all = append(all, models.EmbeddingChunk{DocumentChunk: chunk, Embedding: []float64{}})
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no chunks generated from any source document")
	}

	if b.embedder != nil {
		if err := b.embedAll(ctx, all); err != nil {
			return nil, err
		}
	}
	return all, nil
}

// embedAll fills in real embeddings batch by batch
func (b *Builder) embedAll(ctx context.Context, chunks []models.EmbeddingChunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = chunks[i].Text
		}

		vectors, err := b.embedder.GenerateEmbeddings(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch %d-%d: %w", start, end, err)
		}
		for i, vector := range vectors {
			chunks[start+i].Embedding = vector
		}
	}
	return nil
}

// Summary describes a written snapshot, saved alongside it for inspection
type Summary struct {
	GeneratedAt         time.Time `json:"generatedAt"`
	TotalChunks         int       `json:"totalChunks"`
	MatchingStrategy    string    `json:"matchingStrategy"`
	EmbeddingDimensions int       `json:"embeddingDimensions"`
	Sources             []string  `json:"sources"`
	AverageChunkLength  int       `json:"averageChunkLength"`
}

// WriteSnapshot persists the corpus as JSON plus a summary file next to it
func WriteSnapshot(path string, chunks []models.EmbeddingChunk) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	summary := summarize(chunks)
	summaryData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}

	summaryPath := strings.TrimSuffix(path, filepath.Ext(path)) + "-summary.json"
	if err := os.WriteFile(summaryPath, summaryData, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func summarize(chunks []models.EmbeddingChunk) Summary {
	seen := make(map[string]bool)
	var sources []string
	totalLen := 0
	dims := 0
	for _, chunk := range chunks {
		if !seen[chunk.Metadata.Source] {
			seen[chunk.Metadata.Source] = true
			sources = append(sources, chunk.Metadata.Source)
		}
		totalLen += len(chunk.Text)
		if len(chunk.Embedding) > 0 {
			dims = len(chunk.Embedding)
		}
	}

	strategy := "keyword-based"
	if dims > 0 {
		strategy = "embedding-based"
	}

	avg := 0
	if len(chunks) > 0 {
		avg = totalLen / len(chunks)
	}

	return Summary{
		GeneratedAt:         time.Now().UTC(),
		TotalChunks:         len(chunks),
		MatchingStrategy:    strategy,
		EmbeddingDimensions: dims,
		Sources:             sources,
		AverageChunkLength:  avg,
	}
}
