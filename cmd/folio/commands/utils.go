// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates stack wiring and output helpers across commands
package commands

import (
	"fmt"

	"github.com/sushinbandha/portfolio-assistant/internal/config"
	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/corpus"
	"github.com/sushinbandha/portfolio-assistant/internal/llm"
)

// retrievalStack bundles the components shared by search, ask, and mcp
type retrievalStack struct {
	cfg       *config.Config
	client    *llm.Client
	retriever *core.Retriever
	store     *corpus.Store
}

// newRetrievalStack wires the retriever and corpus store from configuration.
// The OpenAI client is nil when no API key is set; cosine retrieval then
// fails with a configuration error.
func newRetrievalStack(corpusPath string) (*retrievalStack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if corpusPath != "" {
		cfg.CorpusPath = corpusPath
	}

	var client *llm.Client
	if cfg.OpenAIKey != "" {
		client, err = llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
	}

	var scorer core.Scorer
	if cfg.RetrievalStrategy == config.StrategyCosine {
		if client == nil {
			return nil, fmt.Errorf("cosine retrieval requires OPENAI_API_KEY for query embeddings")
		}
		scorer = core.NewCosineScorer(client)
	} else {
		scorer = core.NewLexicalScorer()
	}

	return &retrievalStack{
		cfg:       cfg,
		client:    client,
		retriever: core.NewRetriever(scorer, cfg.TopK, cfg.MinSimilarity),
		store:     corpus.NewStore(cfg.CorpusPath),
	}, nil
}

// assistant wires the full answer pipeline on top of the retrieval stack
func (s *retrievalStack) assistant() *core.Assistant {
	var generator core.Generator
	if s.client != nil {
		generator = s.client
	}
	limiter := core.NewRateLimiter(s.cfg.RateLimit, s.cfg.RateLimitWindow)
	return core.NewAssistant(s.retriever, limiter, s.store, generator, core.AssistantConfig{
		Owner:           s.cfg.SiteOwner,
		MaxHistory:      s.cfg.MaxHistory,
		Temperature:     s.cfg.Temperature,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		Timeout:         s.cfg.Timeout,
		MinSimilarity:   s.cfg.MinSimilarity,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
