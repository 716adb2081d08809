// ABOUTME: Tests for the snapshot-backed corpus store
// ABOUTME: Covers lazy loading, validation failures, and memoized errors
package corpus

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeSnapshotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "embeddings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	return path
}

const validSnapshot = `[
  {
    "id": "resume.md-chunk-0",
    "text": "Sushin worked at PSEG as a software engineer.",
    "metadata": {"source": "resume.md", "chunkIndex": 0, "totalChunks": 2},
    "embedding": [0.1, 0.2, 0.3]
  },
  {
    "id": "resume.md-chunk-1",
    "text": "Earlier roles focused on data pipelines and tooling.",
    "metadata": {"source": "resume.md", "chunkIndex": 1, "totalChunks": 2},
    "embedding": [0.4, 0.5, 0.6]
  }
]`

func TestStoreLoadsSnapshot(t *testing.T) {
	store := NewStore(writeSnapshotFile(t, validSnapshot))
	chunks, err := store.Chunks()
	if err != nil {
		t.Fatalf("Chunks() error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].ID != "resume.md-chunk-0" {
		t.Errorf("first chunk ID = %q", chunks[0].ID)
	}
	if chunks[0].Metadata.Source != "resume.md" {
		t.Errorf("metadata source = %q", chunks[0].Metadata.Source)
	}
}

func TestStoreMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := store.Chunks(); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	// Error is memoized, not retried
	if _, err := store.Chunks(); err == nil {
		t.Error("expected the same error on repeat calls")
	}
}

func TestStoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"not": "an array"`},
		{"empty corpus", `[]`},
		{
			"empty id",
			`[{"id": "", "text": "some text", "metadata": {"source": "a.md", "chunkIndex": 0, "totalChunks": 1}, "embedding": []}]`,
		},
		{
			"empty text",
			`[{"id": "a.md-chunk-0", "text": "", "metadata": {"source": "a.md", "chunkIndex": 0, "totalChunks": 1}, "embedding": []}]`,
		},
		{
			"index out of range",
			`[{"id": "a.md-chunk-3", "text": "some text", "metadata": {"source": "a.md", "chunkIndex": 3, "totalChunks": 2}, "embedding": []}]`,
		},
		{
			"mixed embedding dimensions",
			`[
			  {"id": "a.md-chunk-0", "text": "first chunk text", "metadata": {"source": "a.md", "chunkIndex": 0, "totalChunks": 2}, "embedding": [0.1, 0.2]},
			  {"id": "a.md-chunk-1", "text": "second chunk text", "metadata": {"source": "a.md", "chunkIndex": 1, "totalChunks": 2}, "embedding": [0.1, 0.2, 0.3]}
			]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(writeSnapshotFile(t, tt.content))
			if _, err := store.Chunks(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStoreAllowsUnembeddedChunks(t *testing.T) {
	// Lexical-only corpora carry empty embeddings; still valid
	content := `[
	  {"id": "a.md-chunk-0", "text": "keyword only corpus entry", "metadata": {"source": "a.md", "chunkIndex": 0, "totalChunks": 1}, "embedding": []}
	]`
	if _, err := NewStore(writeSnapshotFile(t, content)).Chunks(); err != nil {
		t.Errorf("Chunks() error: %v", err)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(writeSnapshotFile(t, validSnapshot))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			chunks, err := store.Chunks()
			if err != nil {
				t.Errorf("Chunks() error: %v", err)
				return
			}
			if len(chunks) != 2 {
				t.Errorf("got %d chunks, want 2", len(chunks))
			}
		}()
	}
	wg.Wait()
}
