package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// anthropicClient adapts the Anthropic Messages API to the Client capability.
type anthropicClient struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// newAnthropicClient creates an Anthropic-backed client.
func newAnthropicClient(cfg Config, logger *zap.Logger) (*anthropicClient, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}

	return &anthropicClient{
		client:      anthropic.NewClient(cfg.AnthropicAPIKey),
		model:       cfg.anthropicModel(),
		maxTokens:   cfg.maxTokens(),
		temperature: float32(cfg.Temperature),
		logger:      logger.Named("anthropic"),
	}, nil
}

// Complete sends the prompt and returns the raw response text.
func (c *anthropicClient) Complete(ctx context.Context, prompt, systemMessage string) (string, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemMessage,
		MaxTokens:   c.maxTokens,
		Temperature: &c.temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text = *block.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("anthropic: no text content in response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.InputTokens),
		zap.Int("completion_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// Provider implements Client.
func (c *anthropicClient) Provider() Provider {
	return ProviderAnthropic
}

// Model implements Client.
func (c *anthropicClient) Model() string {
	return c.model
}

var _ Client = (*anthropicClient)(nil)
