package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/entigen/entigen/pkg/llm"
)

// chdir changes the working directory for the duration of the test.
// It stands in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENTIGEN_DATASOURCE_URL", "postgres://alice:secret@db/crm")
	t.Setenv("ENTIGEN_EXCLUDE_SCHEMAS", "audit, staging")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ENTIGEN_LLM_PROVIDER", "")

	cfg, err := Load("1.2.3")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", cfg.Version)
	}
	if cfg.Datasource.URL != "postgres://alice:secret@db/crm" {
		t.Errorf("Datasource.URL = %q", cfg.Datasource.URL)
	}
	if len(cfg.Datasource.ExcludeSchemas) != 2 ||
		cfg.Datasource.ExcludeSchemas[0] != "audit" ||
		cfg.Datasource.ExcludeSchemas[1] != "staging" {
		t.Errorf("ExcludeSchemas = %v, want [audit staging]", cfg.Datasource.ExcludeSchemas)
	}
	if !cfg.Datasource.CollectRowCounts {
		t.Error("CollectRowCounts default = false, want true")
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.LLM.MaxTokens)
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `datasource:
  exclude_schemas: "internal"
llm:
  provider: openai
  openai_model: gpt-4o-mini
  max_tokens: 2048
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("ENTIGEN_LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ENTIGEN_DATASOURCE_URL", "")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Environment wins over the file.
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic (env override)", cfg.LLM.Provider)
	}
	// File values without env overrides survive.
	if cfg.LLM.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini", cfg.LLM.OpenAIModel)
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", cfg.LLM.MaxTokens)
	}
	if len(cfg.Datasource.ExcludeSchemas) != 1 || cfg.Datasource.ExcludeSchemas[0] != "internal" {
		t.Errorf("ExcludeSchemas = %v, want [internal]", cfg.Datasource.ExcludeSchemas)
	}
}

func TestSecretsNeverReadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `datasource:
  url: "postgres://file:leaked@db/crm"
llm:
  anthropic_api_key: "sk-ant-from-file"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("ENTIGEN_DATASOURCE_URL", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Datasource.URL != "" {
		t.Errorf("Datasource.URL = %q, want empty (secrets are env-only)", cfg.Datasource.URL)
	}
	if cfg.LLM.AnthropicAPIKey != "" {
		t.Errorf("AnthropicAPIKey = %q, want empty (secrets are env-only)", cfg.LLM.AnthropicAPIKey)
	}
}

func TestClientConfig(t *testing.T) {
	llmCfg := LLMConfig{
		Provider:        "openai",
		OpenAIAPIKey:    "sk-test",
		OpenAIModel:     "gpt-4o-mini",
		OpenAIBaseURL:   "http://localhost:8080/v1",
		MaxTokens:       1024,
		Temperature:     0.5,
		AnthropicAPIKey: "sk-ant-test",
	}

	got := llmCfg.ClientConfig()
	if got.Provider != llm.ProviderOpenAI {
		t.Errorf("Provider = %q", got.Provider)
	}
	if got.OpenAIAPIKey != "sk-test" || got.OpenAIModel != "gpt-4o-mini" ||
		got.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("openai fields not mapped: %+v", got)
	}
	if got.MaxTokens != 1024 || got.Temperature != 0.5 {
		t.Errorf("tuning fields not mapped: %+v", got)
	}
}
