package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "unauthorized",
			err:           errors.New("401 Unauthorized: invalid api key"),
			wantType:      ErrorTypeAuth,
			wantRetryable: false,
		},
		{
			name:          "model not found",
			err:           errors.New("model claude-opus-9 does not exist"),
			wantType:      ErrorTypeModel,
			wantRetryable: false,
		},
		{
			name:          "endpoint missing",
			err:           errors.New("404 page not found"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: false,
		},
		{
			name:          "connection refused",
			err:           errors.New("dial tcp 127.0.0.1:11434: connection refused"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: true,
		},
		{
			name:          "deadline exceeded",
			err:           errors.New("context deadline exceeded"),
			wantType:      ErrorTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "rate limited",
			err:           errors.New("429 Too Many Requests"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: true,
		},
		{
			name:          "server error",
			err:           errors.New("500 Internal Server Error"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: true,
		},
		{
			name:          "anything else",
			err:           errors.New("unexpected end of stream"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error does not wrap the cause")
			}
		})
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if got := ClassifyError(nil); got != nil {
		t.Errorf("ClassifyError(nil) = %v, want nil", got)
	}
}

func TestClassifyErrorPassesThroughStructured(t *testing.T) {
	orig := NewError(ErrorTypeTimeout, "request timed out", true, nil)
	wrapped := fmt.Errorf("complete: %w", orig)

	if got := ClassifyError(wrapped); got != orig {
		t.Errorf("ClassifyError() = %v, want original structured error", got)
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{
		Type:       ErrorTypeAuth,
		Message:    "authentication failed",
		StatusCode: 401,
		Model:      "gpt-4o",
		Cause:      errors.New("bad key"),
	}

	got := e.Error()
	want := "auth HTTP 401 model=gpt-4o authentication failed: bad key"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorIsRetryable(t *testing.T) {
	if !NewError(ErrorTypeTimeout, "timeout", true, nil).IsRetryable() {
		t.Error("retryable error reported as not retryable")
	}
	if NewError(ErrorTypeAuth, "auth", false, nil).IsRetryable() {
		t.Error("auth error reported as retryable")
	}
}
