// ABOUTME: OpenAI client for chat generation and corpus embeddings
// ABOUTME: Embedding calls retry with backoff; chat generation never retries
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sushinbandha/portfolio-assistant/internal/models"
	"github.com/sushinbandha/portfolio-assistant/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ClientConfig holds configuration for the OpenAI client. Model names are
// plain strings so they can come straight from configuration; conversion to
// the SDK's named types happens once, inside NewClientWithConfig.
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	RetryDelay     time.Duration
	Timeout        time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: string(DefaultEmbeddingModel),
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
		Timeout:        30 * time.Second,
	}
}

// Client wraps the OpenAI API client. It implements the core Generator and
// Embedder ports.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	maxRetries     int
	retryDelay     time.Duration
	timeout        time.Duration
}

// NewClient creates a client with the default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	client := openai.NewClient(config.APIKey)

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := openai.EmbeddingModel(config.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:         client,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		timeout:        timeout,
	}, nil
}

// Generate produces a chat completion for the given system instruction and
// conversation window. Generative calls are not retried: they are paid and
// non-idempotent, so failures surface to the caller instead.
func (c *Client) Generate(ctx context.Context, system string, messages []models.Message, temperature float64, maxTokens int) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    chatMessages,
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateEmbedding generates an embedding vector for one text, retrying
// transient failures with exponential backoff.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings generates embedding vectors for a batch of texts. Used
// by the offline corpus builder, where retrying is safe.
func (c *Client) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d inputs", attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float64, len(resp.Data))
		for i, item := range resp.Data {
			vector := make([]float64, len(item.Embedding))
			for j, v := range item.Embedding {
				vector[j] = float64(v)
			}
			vectors[i] = vector
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", c.maxRetries+1, lastErr)
}
