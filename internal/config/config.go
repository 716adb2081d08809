// ABOUTME: Centralized configuration for the portfolio assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Retrieval strategy names selectable via PORTFOLIO_RETRIEVAL_STRATEGY
const (
	StrategyLexical = "lexical"
	StrategyCosine  = "cosine"
)

// Config holds all configuration for the assistant service
type Config struct {
	// Site settings
	SiteOwner  string
	ListenAddr string
	AdminToken string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	CorpusPath        string
	RetrievalStrategy string
	TopK              int
	MinSimilarity     float64
	MaxHistory        int
	MaxOutputTokens   int
	Temperature       float64

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	// Analytics
	DatabasePath string
	ExcludedIPs  []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		SiteOwner:         getEnv("PORTFOLIO_OWNER", "Sushin"),
		ListenAddr:        getEnv("PORTFOLIO_LISTEN_ADDR", ":8080"),
		AdminToken:        os.Getenv("PORTFOLIO_ADMIN_TOKEN"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		ChatModel:         getEnv("PORTFOLIO_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("PORTFOLIO_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:           getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:        getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		CorpusPath:        getEnv("PORTFOLIO_CORPUS_PATH", "embeddings.json"),
		RetrievalStrategy: getEnv("PORTFOLIO_RETRIEVAL_STRATEGY", StrategyLexical),
		TopK:              getEnvInt("PORTFOLIO_TOP_K", 5),
		MinSimilarity:     getEnvFloat("PORTFOLIO_MIN_SIMILARITY", 0.3),
		MaxHistory:        getEnvInt("PORTFOLIO_MAX_HISTORY", 5),
		MaxOutputTokens:   getEnvInt("PORTFOLIO_MAX_OUTPUT_TOKENS", 600),
		Temperature:       getEnvFloat("PORTFOLIO_TEMPERATURE", 0.3),
		RateLimit:         getEnvInt("PORTFOLIO_RATE_LIMIT", 10),
		RateLimitWindow:   getEnvDuration("PORTFOLIO_RATE_WINDOW", time.Hour),
		DatabasePath:      os.Getenv("PORTFOLIO_DB_PATH"),
		ExcludedIPs:       getEnvList("EXCLUDED_IPS", []string{"127.0.0.1", "::1", "::ffff:127.0.0.1"}),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.RetrievalStrategy != StrategyLexical && c.RetrievalStrategy != StrategyCosine {
		return fmt.Errorf("PORTFOLIO_RETRIEVAL_STRATEGY must be %q or %q, got %q",
			StrategyLexical, StrategyCosine, c.RetrievalStrategy)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("PORTFOLIO_MIN_SIMILARITY must be 0-1, got %f", c.MinSimilarity)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("PORTFOLIO_TOP_K must be positive, got %d", c.TopK)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("PORTFOLIO_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("PORTFOLIO_RATE_WINDOW must be positive, got %v", c.RateLimitWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
