// ABOUTME: Read-only corpus store backed by an embedding snapshot file
// ABOUTME: Loads once, validates invariants, then serves chunks from memory
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// Store serves chunks from a snapshot file. The snapshot is loaded lazily on
// first access and never reloaded; errors are memoized the same way so a
// broken snapshot fails every call consistently.
type Store struct {
	path   string
	once   sync.Once
	chunks []models.EmbeddingChunk
	err    error
}

// NewStore creates a Store for the snapshot at path. Nothing is read until
// the first Chunks call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Chunks returns the full corpus, loading it on first call
func (s *Store) Chunks() ([]models.EmbeddingChunk, error) {
	s.once.Do(s.load)
	return s.chunks, s.err
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.err = fmt.Errorf("reading corpus snapshot %s: %w", s.path, err)
		return
	}

	var chunks []models.EmbeddingChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		s.err = fmt.Errorf("parsing corpus snapshot %s: %w", s.path, err)
		return
	}
	if len(chunks) == 0 {
		s.err = fmt.Errorf("corpus snapshot %s contains no chunks", s.path)
		return
	}

	if err := validate(chunks); err != nil {
		s.err = fmt.Errorf("invalid corpus snapshot %s: %w", s.path, err)
		return
	}
	s.chunks = chunks
}

// validate enforces corpus invariants: non-empty identifiers and text,
// in-range chunk indices, and a single embedding dimension across all
// embedded chunks.
func validate(chunks []models.EmbeddingChunk) error {
	dims := -1
	for i, chunk := range chunks {
		if chunk.ID == "" {
			return fmt.Errorf("chunk %d has empty id", i)
		}
		if chunk.Text == "" {
			return fmt.Errorf("chunk %q has empty text", chunk.ID)
		}
		meta := chunk.Metadata
		if meta.ChunkIndex < 0 || meta.ChunkIndex >= meta.TotalChunks {
			return fmt.Errorf("chunk %q has index %d out of range [0, %d)", chunk.ID, meta.ChunkIndex, meta.TotalChunks)
		}
		if len(chunk.Embedding) == 0 {
			continue
		}
		if dims == -1 {
			dims = len(chunk.Embedding)
		} else if len(chunk.Embedding) != dims {
			return fmt.Errorf("chunk %q has embedding dimension %d, expected %d", chunk.ID, len(chunk.Embedding), dims)
		}
	}
	return nil
}

// DefaultSnapshotPath returns the XDG data-home location for the snapshot
func DefaultSnapshotPath() string {
	return filepath.Join(xdg.DataHome, "portfolio-assistant", "embeddings.json")
}
