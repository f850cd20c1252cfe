package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/apperrors"
)

// Default models used when the configuration names none.
const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultOpenAIModel    = "gpt-4o"
	DefaultMaxTokens      = 4096
)

// Config holds everything needed to construct a provider client. Credentials
// are looked up once at the composition root and passed here as data; the
// pipeline itself never reads the environment.
type Config struct {
	// Provider selects a vendor explicitly. When empty, ResolveProvider
	// picks one from the available credentials.
	Provider Provider

	AnthropicAPIKey string
	AnthropicModel  string

	OpenAIAPIKey string
	OpenAIModel  string
	// OpenAIBaseURL overrides the endpoint for OpenAI-compatible servers.
	OpenAIBaseURL string

	// MaxTokens caps the completion length; 0 means DefaultMaxTokens.
	MaxTokens int
	// Temperature is passed through to providers that accept it.
	Temperature float64
}

func (c Config) anthropicModel() string {
	if c.AnthropicModel != "" {
		return c.AnthropicModel
	}
	return DefaultAnthropicModel
}

func (c Config) openAIModel() string {
	if c.OpenAIModel != "" {
		return c.OpenAIModel
	}
	return DefaultOpenAIModel
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}

// ResolveProvider returns the provider to use. An explicit selection wins.
// Otherwise detection is deterministic: Anthropic is preferred when both
// credentials are present, and apperrors.ErrNoCredential is returned before
// any network call when neither is.
func ResolveProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderAnthropic, ProviderOpenAI:
		return cfg.Provider, nil
	case "":
		// fall through to detection
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, cfg.Provider)
	}

	if cfg.AnthropicAPIKey != "" {
		return ProviderAnthropic, nil
	}
	if cfg.OpenAIAPIKey != "" {
		return ProviderOpenAI, nil
	}
	return "", apperrors.ErrNoCredential
}

// NewClient constructs the client for the resolved provider. A provider
// selected explicitly but missing its credential is reported as
// apperrors.ErrNoCredential. If logger is nil, a no-op logger is used.
func NewClient(cfg Config, logger *zap.Logger) (Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider, err := ResolveProvider(cfg)
	if err != nil {
		return nil, err
	}

	switch provider {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: anthropic selected", apperrors.ErrNoCredential)
		}
		return newAnthropicClient(cfg, logger)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: openai selected", apperrors.ErrNoCredential)
		}
		return newOpenAIClient(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, provider)
	}
}
