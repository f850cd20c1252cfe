// Package ontology assembles model responses into validated Ontology values
// and drives the generate/refine/suggest cycles.
package ontology

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entigen/entigen/pkg/apperrors"
	"github.com/entigen/entigen/pkg/llm"
	"github.com/entigen/entigen/pkg/logging"
	"github.com/entigen/entigen/pkg/models"
)

// snippetLen bounds the raw-response excerpt carried on assembly errors.
const snippetLen = 200

// Assemble locates the first well-formed JSON object embedded in raw model
// output, parses it, applies defaults for missing optional fields, and
// validates the referential invariants. Any failure surfaces as
// apperrors.ErrMalformedResponse with a raw snippet for diagnosis; no
// partial Ontology is ever returned. Assemble never retries; that decision
// belongs to the caller of the whole prompt/call/assemble cycle.
func Assemble(raw string) (*models.Ontology, error) {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, malformed("no JSON object in response", raw)
	}

	// An ontology payload is a top-level object; a top-level array is the
	// suggestions shape and is rejected here.
	if !strings.HasPrefix(strings.TrimSpace(jsonStr), "{") {
		return nil, malformed("expected a JSON object, got an array", raw)
	}

	var result models.Ontology
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, malformed(fmt.Sprintf("unmarshal ontology: %v", err), raw)
	}

	applyDefaults(&result)

	if err := result.Validate(); err != nil {
		return nil, malformed(fmt.Sprintf("invariant violation: %v", err), raw)
	}

	return &result, nil
}

// AssembleSuggestions parses raw model output into a flat list of
// improvement strings. The expected payload is a top-level JSON array;
// anything else is apperrors.ErrMalformedResponse.
func AssembleSuggestions(raw string) ([]string, error) {
	jsonStr, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, malformed("no JSON array in response", raw)
	}

	if !strings.HasPrefix(strings.TrimSpace(jsonStr), "[") {
		return nil, malformed("expected a JSON array, got an object", raw)
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(jsonStr), &suggestions); err != nil {
		return nil, malformed(fmt.Sprintf("unmarshal suggestions: %v", err), raw)
	}

	return suggestions, nil
}

// applyDefaults fills the documented defaults for missing optional fields.
// Scalar defaults (parent_class, range, is_required, is_unique) fall out of
// Go zero values; only the metadata mapping needs materializing.
func applyDefaults(o *models.Ontology) {
	if o.Metadata == nil {
		o.Metadata = map[string]any{}
	}
}

func malformed(reason, raw string) error {
	return fmt.Errorf("%w: %s (raw: %q)", apperrors.ErrMalformedResponse, reason, logging.TruncateString(strings.TrimSpace(raw), snippetLen))
}
