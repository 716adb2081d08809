// ABOUTME: Tests for the corpus builder
// ABOUTME: Covers ordering, embedding batches, and snapshot round-trips
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEmbedder returns deterministic vectors keyed by call order
type fakeEmbedder struct {
	calls      int
	batchSizes []int
	err        error
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	f.batchSizes = append(f.batchSizes, len(texts))
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{float64(len(texts[i])), 1.0, 0.5}
	}
	return vectors, nil
}

func writeSourceFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestBuildFromDirectory(t *testing.T) {
	dir := writeSourceFiles(t, map[string]string{
		"bravo.md":    "Bravo file first sentence here. Bravo file second sentence here.",
		"alpha.md":    "Alpha file opening sentence goes here. Alpha continues with more detail.",
		"notes.txt":   "Plain text notes are also picked up by the builder.",
		"ignored.pdf": "binary-ish content that must not be chunked",
	})

	builder := NewBuilder(0, nil)
	chunks, err := builder.BuildFromDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("BuildFromDirectory() error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks, got none")
	}

	// Sorted name order: alpha before bravo before notes
	var order []string
	for _, chunk := range chunks {
		if len(order) == 0 || order[len(order)-1] != chunk.Metadata.Source {
			order = append(order, chunk.Metadata.Source)
		}
	}
	want := []string{"alpha.md", "bravo.md", "notes.txt"}
	if len(order) != len(want) {
		t.Fatalf("sources = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("source order[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	for _, chunk := range chunks {
		if chunk.Metadata.Source == "ignored.pdf" {
			t.Error("non-text file was chunked")
		}
		if chunk.Embedding == nil || len(chunk.Embedding) != 0 {
			t.Errorf("chunk %s: expected empty placeholder embedding without an embedder", chunk.ID)
		}
	}
}

func TestBuildFromDirectoryEmpty(t *testing.T) {
	if _, err := NewBuilder(0, nil).BuildFromDirectory(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for directory with no source documents")
	}
}

func TestBuildFromFilesSkipsMissing(t *testing.T) {
	dir := writeSourceFiles(t, map[string]string{
		"resume.md": "Sushin worked at PSEG as a software engineer for several years.",
	})

	paths := []string{
		filepath.Join(dir, "resume.md"),
		filepath.Join(dir, "does-not-exist.md"),
	}
	chunks, err := NewBuilder(0, nil).BuildFromFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("BuildFromFiles() error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].ID != "resume.md-chunk-0" {
		t.Errorf("chunk ID = %q, want %q", chunks[0].ID, "resume.md-chunk-0")
	}
}

func TestBuildEmbedsInBatches(t *testing.T) {
	// Enough sentences to produce more chunks than one batch at tiny maxTokens
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "Sentence number %d carries enough words to pass the minimum length. ", i)
	}
	dir := writeSourceFiles(t, map[string]string{"big.md": sb.String()})

	embedder := &fakeEmbedder{}
	chunks, err := NewBuilder(20, embedder).BuildFromDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("BuildFromDirectory() error: %v", err)
	}
	if len(chunks) <= embedBatchSize {
		t.Fatalf("test needs more than %d chunks to exercise batching, got %d", embedBatchSize, len(chunks))
	}
	if embedder.calls < 2 {
		t.Errorf("expected multiple embedding batches, got %d call(s)", embedder.calls)
	}

	total := 0
	for _, size := range embedder.batchSizes {
		if size > embedBatchSize {
			t.Errorf("batch size %d exceeds limit %d", size, embedBatchSize)
		}
		total += size
	}
	if total != len(chunks) {
		t.Errorf("embedded %d texts for %d chunks", total, len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != 3 {
			t.Fatalf("chunk %s embedding dimension = %d, want 3", chunk.ID, len(chunk.Embedding))
		}
	}
}

func TestBuildEmbeddingFailure(t *testing.T) {
	dir := writeSourceFiles(t, map[string]string{
		"about.md": "This sentence is long enough to survive the chunk length filter.",
	})
	embedder := &fakeEmbedder{err: fmt.Errorf("api down")}
	if _, err := NewBuilder(0, embedder).BuildFromDirectory(context.Background(), dir); err == nil {
		t.Error("expected embedding failure to fail the build")
	}
}

func TestWriteSnapshotRoundTrip(t *testing.T) {
	dir := writeSourceFiles(t, map[string]string{
		"projects.md": "The assistant project answers questions about past work and skills.",
	})
	chunks, err := NewBuilder(0, &fakeEmbedder{}).BuildFromDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("build error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "data", "embeddings.json")
	if err := WriteSnapshot(path, chunks); err != nil {
		t.Fatalf("WriteSnapshot() error: %v", err)
	}

	loaded, err := NewStore(path).Chunks()
	if err != nil {
		t.Fatalf("loading written snapshot: %v", err)
	}
	if len(loaded) != len(chunks) {
		t.Fatalf("round trip: got %d chunks, want %d", len(loaded), len(chunks))
	}
	for i := range chunks {
		if loaded[i].ID != chunks[i].ID || loaded[i].Text != chunks[i].Text {
			t.Errorf("chunk %d changed across round trip", i)
		}
	}

	summaryPath := filepath.Join(filepath.Dir(path), "embeddings-summary.json")
	if _, err := os.Stat(summaryPath); err != nil {
		t.Errorf("summary file not written: %v", err)
	}
}
