// Package config loads CLI configuration. Configuration can come from an
// entigen.yaml file or environment variables; environment variables always
// override YAML values, and secrets (connection URL, API keys) come from
// the environment only. Lookup happens once here, at the boundary; the
// pipeline packages receive the values as plain data.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/entigen/entigen/pkg/llm"
)

// FileName is the config file looked up in the working directory.
const FileName = "entigen.yaml"

// Config holds all configuration for the entigen CLI.
type Config struct {
	Datasource DatasourceConfig `yaml:"datasource"`
	LLM        LLMConfig        `yaml:"llm"`

	Version string `yaml:"-"` // Set at load time, not from config
}

// DatasourceConfig holds the connection descriptor and inspection options.
type DatasourceConfig struct {
	// URL is the connection descriptor. It may carry credentials, so it is
	// a secret: environment only, never YAML.
	URL string `yaml:"-" env:"ENTIGEN_DATASOURCE_URL"`

	// ExcludeSchemasStr is a comma-separated list of schema names to skip.
	ExcludeSchemasStr string `yaml:"exclude_schemas" env:"ENTIGEN_EXCLUDE_SCHEMAS" env-default:""`

	// ExcludeSchemas is parsed from ExcludeSchemasStr (not from config file).
	ExcludeSchemas []string `yaml:"-"`

	CollectRowCounts bool `yaml:"collect_row_counts" env:"ENTIGEN_COLLECT_ROW_COUNTS" env-default:"true"`
}

// LLMConfig holds hosted-provider selection and credentials.
type LLMConfig struct {
	// Provider selects a vendor explicitly ("anthropic" or "openai").
	// Empty means deterministic detection from the available credentials.
	Provider string `yaml:"provider" env:"ENTIGEN_LLM_PROVIDER" env-default:""`

	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model" env:"ENTIGEN_ANTHROPIC_MODEL" env-default:""`

	OpenAIAPIKey  string `yaml:"-" env:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"openai_model" env:"ENTIGEN_OPENAI_MODEL" env-default:""`
	OpenAIBaseURL string `yaml:"openai_base_url" env:"ENTIGEN_OPENAI_BASE_URL" env-default:""`

	MaxTokens   int     `yaml:"max_tokens" env:"ENTIGEN_LLM_MAX_TOKENS" env-default:"4096"`
	Temperature float64 `yaml:"temperature" env:"ENTIGEN_LLM_TEMPERATURE" env-default:"0.2"`
}

// ClientConfig maps the loaded configuration onto the llm client config.
func (c *LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		Provider:        llm.Provider(c.Provider),
		AnthropicAPIKey: c.AnthropicAPIKey,
		AnthropicModel:  c.AnthropicModel,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIModel:     c.OpenAIModel,
		OpenAIBaseURL:   c.OpenAIBaseURL,
		MaxTokens:       c.MaxTokens,
		Temperature:     c.Temperature,
	}
}

// Load reads configuration from entigen.yaml (when present) with environment
// variable overrides. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(FileName); err == nil {
		if err := cleanenv.ReadConfig(FileName, cfg); err != nil {
			return nil, fmt.Errorf("read %s: %w", FileName, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	cfg.Datasource.ExcludeSchemas = parseList(cfg.Datasource.ExcludeSchemasStr)

	return cfg, nil
}

// parseList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func parseList(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
