package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientFixedResponse(t *testing.T) {
	mock := NewMockClient(`{"name": "crm"}`)

	got, err := mock.Complete(context.Background(), "first prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "crm"}`, got)

	_, err = mock.Complete(context.Background(), "second prompt", "system")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.CompleteCalls)
	assert.Equal(t, []string{"first prompt", "second prompt"}, mock.Prompts)
}

func TestMockClientCustomFunc(t *testing.T) {
	wantErr := errors.New("model unavailable")
	mock := &MockClient{
		CompleteFunc: func(ctx context.Context, prompt, systemMessage string) (string, error) {
			return "", wantErr
		},
		ModelName: "test-model",
	}

	_, err := mock.Complete(context.Background(), "prompt", "system")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, "test-model", mock.Model())
}

func TestMockClientDefaults(t *testing.T) {
	mock := &MockClient{}

	got, err := mock.Complete(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "mock-model", mock.Model())
	assert.Equal(t, ProviderOpenAI, mock.Provider())
}
