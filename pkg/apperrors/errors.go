// Package apperrors defines the sentinel error kinds shared across the
// pipeline. Callers distinguish failure modes with errors.Is.
package apperrors

import "errors"

var (
	// ErrConnection indicates the datasource was unreachable or rejected
	// the supplied credentials. Fatal; never retried by the builder.
	ErrConnection = errors.New("datasource connection failed")

	// ErrNoCredential indicates neither provider credential was present.
	// Raised before any network call is attempted.
	ErrNoCredential = errors.New("no LLM provider credential configured")

	// ErrMalformedResponse indicates the model output contained no parseable
	// JSON, or the parsed JSON violated ontology referential invariants.
	// The caller may retry the whole prompt/call/assemble cycle.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrUnknownProvider indicates a provider selector outside the known set.
	ErrUnknownProvider = errors.New("unknown LLM provider")

	// ErrUnsupportedDatasource indicates a connection descriptor scheme with
	// no registered adapter.
	ErrUnsupportedDatasource = errors.New("unsupported datasource type")
)
