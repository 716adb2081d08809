// ABOUTME: Assistant orchestrates rate limiting, retrieval, and generation
// ABOUTME: Sole place where failures are caught, classified, and translated
package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// Generator is the narrow port to a language-model provider. Implementations
// must honor the context deadline; the assistant never retries a generation.
type Generator interface {
	Generate(ctx context.Context, system string, messages []models.Message, temperature float64, maxTokens int) (string, error)
}

// CorpusSource supplies the immutable chunk corpus searched at request time
type CorpusSource interface {
	Chunks() ([]models.EmbeddingChunk, error)
}

// AssistantConfig carries the orchestration policy knobs
type AssistantConfig struct {
	Owner           string
	MaxHistory      int           // most recent messages forwarded to the model
	Temperature     float64       // low for factual, low-variance answers
	MaxOutputTokens int           // bound on generated output
	Timeout         time.Duration // deadline on the model call
	MinSimilarity   float64       // threshold for "has relevant context"
}

// Reply is a successful answer plus the caller's remaining quota
type Reply struct {
	Message   string `json:"message"`
	Remaining int    `json:"-"`
}

// Assistant composes the retriever, formatter, rate limiter, and generator
// into the end-to-end answer operation.
type Assistant struct {
	retriever *Retriever
	limiter   *RateLimiter
	corpus    CorpusSource
	generator Generator
	cfg       AssistantConfig
}

// NewAssistant wires the assistant. generator may be nil when no API key is
// configured; requests then fail fast with ErrUnavailable.
func NewAssistant(retriever *Retriever, limiter *RateLimiter, corpus CorpusSource, generator Generator, cfg AssistantConfig) *Assistant {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Assistant{
		retriever: retriever,
		limiter:   limiter,
		corpus:    corpus,
		generator: generator,
		cfg:       cfg,
	}
}

// Answer runs the per-request state machine: rate check, input validation,
// retrieval, context assembly, and generation. Rejections surface as the
// package's sentinel errors; any other error is a provider/internal failure
// whose details belong in logs, not in the caller-facing message.
func (a *Assistant) Answer(ctx context.Context, sessionKey string, messages []models.Message) (*Reply, error) {
	decision := a.limiter.Check(sessionKey)
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: try again after %s",
			ErrRateLimited, decision.ResetAt.Format(time.RFC1123))
	}

	last, ok := models.LastUserMessage(messages)
	if !ok {
		return nil, fmt.Errorf("%w: conversation must end with a user message", ErrInvalidInput)
	}
	for _, m := range messages {
		if !m.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, m.Role)
		}
	}

	// Fail fast before spending retrieval work when no model is configured.
	if a.generator == nil {
		return nil, fmt.Errorf("%w: language model is not configured", ErrUnavailable)
	}

	corpus, err := a.corpus.Chunks()
	if err != nil {
		log.Printf("corpus unavailable: %v", err)
		return nil, fmt.Errorf("%w: knowledge base not loaded", ErrUnavailable)
	}

	results, err := a.retriever.Search(ctx, last.Content, corpus)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	contextBlock := FormatContextForLLM(results)
	hasContext := len(results) > 0 && results[0].Similarity >= a.cfg.MinSimilarity

	system := systemPrompt(a.cfg.Owner) + "\n\n" + contextInstruction(a.cfg.Owner, contextBlock, hasContext)
	recent := recentMessages(messages, a.cfg.MaxHistory)

	genCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	// Generative calls are costly and non-idempotent; a failure here is
	// surfaced, never retried.
	text, err := a.generator.Generate(genCtx, system, recent, a.cfg.Temperature, a.cfg.MaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	return &Reply{Message: text, Remaining: decision.Remaining}, nil
}

// recentMessages bounds the conversation window forwarded to the model
func recentMessages(messages []models.Message, max int) []models.Message {
	if len(messages) <= max {
		return messages
	}
	return messages[len(messages)-max:]
}
