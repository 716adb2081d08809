// ABOUTME: Main entry point for the portfolio assistant HTTP server
// ABOUTME: Wires config, corpus, retriever, analytics DB, and graceful shutdown
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sushinbandha/portfolio-assistant/internal/api"
	"github.com/sushinbandha/portfolio-assistant/internal/config"
	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/corpus"
	"github.com/sushinbandha/portfolio-assistant/internal/llm"
	"github.com/sushinbandha/portfolio-assistant/internal/storage/sqlite"
	"github.com/sushinbandha/portfolio-assistant/internal/util"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Language model client is optional; without it chat reports 503
	var client *llm.Client
	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - chat generation will be unavailable")
	} else {
		client, err = llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		log.Printf("OpenAI client initialized (key %s)", util.Redact(cfg.OpenAIKey))
	}

	var scorer core.Scorer
	if cfg.RetrievalStrategy == config.StrategyCosine {
		if client == nil {
			log.Fatal("cosine retrieval requires OPENAI_API_KEY for query embeddings")
		}
		scorer = core.NewCosineScorer(client)
	} else {
		scorer = core.NewLexicalScorer()
	}

	retriever := core.NewRetriever(scorer, cfg.TopK, cfg.MinSimilarity)
	limiter := core.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	store := corpus.NewStore(cfg.CorpusPath)

	var generator core.Generator
	if client != nil {
		generator = client
	}
	assistant := core.NewAssistant(retriever, limiter, store, generator, core.AssistantConfig{
		Owner:           cfg.SiteOwner,
		MaxHistory:      cfg.MaxHistory,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Timeout:         cfg.Timeout,
		MinSimilarity:   cfg.MinSimilarity,
	})

	// Analytics database is optional; endpoints degrade when absent
	var visits *sqlite.VisitStore
	var contacts *sqlite.ContactStore
	if cfg.DatabasePath == "" {
		log.Println("PORTFOLIO_DB_PATH not set, visit logging and contact storage disabled")
	} else {
		db, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open analytics database: %v", err)
		}
		defer func() { _ = db.Close() }()
		visits = sqlite.NewVisitStore(db)
		contacts = sqlite.NewContactStore(db)
		log.Printf("Analytics database ready at %s", db.Path())
	}

	handler := api.NewHandler(assistant, visits, contacts, api.HandlerConfig{
		Owner:       cfg.SiteOwner,
		AdminToken:  cfg.AdminToken,
		RateLimit:   cfg.RateLimit,
		ExcludedIPs: cfg.ExcludedIPs,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Portfolio assistant listening on %s (strategy=%s)", cfg.ListenAddr, retriever.Strategy())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received, draining connections...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: shutdown error: %v", err)
		}
		log.Println("Shutdown complete")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}
}
