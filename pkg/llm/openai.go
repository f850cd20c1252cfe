package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// openAIClient adapts the OpenAI chat completion API to the Client
// capability. It also serves OpenAI-compatible endpoints via BaseURL.
type openAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// newOpenAIClient creates an OpenAI-backed client.
func newOpenAIClient(cfg Config, logger *zap.Logger) (*openAIClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.OpenAIBaseURL, "/")
	}

	return &openAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.openAIModel(),
		maxTokens:   cfg.maxTokens(),
		temperature: float32(cfg.Temperature),
		logger:      logger.Named("openai"),
	}, nil
}

// Complete sends the prompt and returns the raw response text.
func (c *openAIClient) Complete(ctx context.Context, prompt, systemMessage string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	if systemMessage != "" {
		messages = append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		}, messages...)
	}

	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

// Provider implements Client.
func (c *openAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Model implements Client.
func (c *openAIClient) Model() string {
	return c.model
}

var _ Client = (*openAIClient)(nil)
