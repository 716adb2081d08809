// ABOUTME: Chunk models for the retrieval corpus
// ABOUTME: Defines DocumentChunk, EmbeddingChunk, and SearchResult structures
package models

// ChunkMetadata records the provenance of a chunk within its source document
type ChunkMetadata struct {
	Source      string `json:"source"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
}

// DocumentChunk is a bounded segment of a source document, the unit of retrieval
type DocumentChunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// EmbeddingChunk is a DocumentChunk with an optional embedding vector.
// Embedding is empty when the deployment uses lexical matching instead of
// semantic embeddings; when non-empty, every chunk in a corpus shares the
// same dimensionality.
type EmbeddingChunk struct {
	DocumentChunk
	Embedding []float64 `json:"embedding"`
}

// SearchResult pairs a corpus chunk with its relevance to a query.
// Results are transient per query and never persisted.
type SearchResult struct {
	Chunk      *EmbeddingChunk `json:"chunk"`
	Similarity float64         `json:"similarity"`
}
