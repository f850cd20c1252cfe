// Package llm provides the hosted language-model client adapters used by
// ontology generation. Adapters send a prompt and return the raw response
// text; they never interpret the content.
package llm

import "context"

// Provider identifies a hosted language-model vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Client is the single capability the pipeline needs from a provider:
// send a prompt, receive free-form text.
type Client interface {
	// Complete sends the prompt with an optional system message and returns
	// the raw response text.
	Complete(ctx context.Context, prompt, systemMessage string) (string, error)

	// Provider returns the vendor identity of this client.
	Provider() Provider

	// Model returns the configured model name.
	Model() string
}
