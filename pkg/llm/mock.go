package llm

import "context"

// MockClient is a configurable mock for testing pipeline stages without a
// hosted provider. Set the function field to control behavior.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked. If nil, Complete
	// returns an empty string and nil error.
	CompleteFunc func(ctx context.Context, prompt, systemMessage string) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Prompts records every prompt passed to Complete, in call order.
	Prompts []string

	CompleteCalls int
}

// NewMockClient creates a mock that always returns the given response.
func NewMockClient(response string) *MockClient {
	return &MockClient{
		CompleteFunc: func(context.Context, string, string) (string, error) {
			return response, nil
		},
	}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, prompt, systemMessage string) (string, error) {
	m.CompleteCalls++
	m.Prompts = append(m.Prompts, prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage)
	}
	return "", nil
}

// Provider implements Client.
func (m *MockClient) Provider() Provider {
	return ProviderOpenAI
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

var _ Client = (*MockClient)(nil)
