package ontology

import (
	"errors"
	"testing"

	"github.com/entigen/entigen/pkg/apperrors"
)

const validOntologyJSON = `{
	"name": "crm",
	"description": "Customer domain",
	"classes": [
		{"name": "Company", "description": "A company", "properties": ["name"], "source_tables": ["public.companies"]},
		{"name": "Person", "description": "A person", "properties": ["name"], "source_tables": ["public.people"]}
	],
	"properties": [
		{"name": "name", "description": "Display name", "data_type": "string", "domain": ["Company", "Person"], "is_required": true, "is_unique": false}
	],
	"relationships": [
		{"name": "worksFor", "description": "Employment", "source_class": "Person", "target_class": "Company", "cardinality": "many-to-one"}
	]
}`

func TestAssemble(t *testing.T) {
	result, err := Assemble(validOntologyJSON)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if result.Name != "crm" {
		t.Errorf("Name = %q, want crm", result.Name)
	}
	if len(result.Classes) != 2 || len(result.Properties) != 1 || len(result.Relationships) != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1",
			len(result.Classes), len(result.Properties), len(result.Relationships))
	}
	// Missing metadata defaults to an empty map, not nil.
	if result.Metadata == nil {
		t.Error("Metadata = nil, want empty map")
	}
}

func TestAssembleExtractsFromProse(t *testing.T) {
	raw := "Here is the ontology:\n\n" + validOntologyJSON + "\n\nLet me know if this works."

	result, err := Assemble(raw)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if result.Name != "crm" {
		t.Errorf("Name = %q, want crm", result.Name)
	}
}

func TestAssembleMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no json at all", "I cannot design an ontology for this."},
		{"truncated json", `{"name": "crm", "classes": [`},
		{"array payload", `["suggestion one", "suggestion two"]`},
		{"unknown class in relationship", `{
			"name": "crm",
			"classes": [{"name": "Person", "description": "", "properties": [], "source_tables": []}],
			"properties": [],
			"relationships": [{"name": "worksFor", "description": "", "source_class": "Person", "target_class": "Ghost", "cardinality": "many-to-one"}]
		}`},
		{"unknown property on class", `{
			"name": "crm",
			"classes": [{"name": "Person", "description": "", "properties": ["missing"], "source_tables": []}],
			"properties": [],
			"relationships": []
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Assemble(tt.raw)
			if !errors.Is(err, apperrors.ErrMalformedResponse) {
				t.Errorf("Assemble() error = %v, want ErrMalformedResponse", err)
			}
			if result != nil {
				t.Errorf("Assemble() = %+v, want nil on failure", result)
			}
		})
	}
}

func TestAssembleSuggestions(t *testing.T) {
	raw := "Some thoughts:\n[\"Add an email property\", \"Merge Firm into Company\"]"

	suggestions, err := AssembleSuggestions(raw)
	if err != nil {
		t.Fatalf("AssembleSuggestions() error = %v", err)
	}

	want := []string{"Add an email property", "Merge Firm into Company"}
	if len(suggestions) != len(want) {
		t.Fatalf("got %d suggestions, want %d", len(suggestions), len(want))
	}
	for i := range want {
		if suggestions[i] != want[i] {
			t.Errorf("suggestions[%d] = %q, want %q", i, suggestions[i], want[i])
		}
	}
}

func TestAssembleSuggestionsRejectsObject(t *testing.T) {
	_, err := AssembleSuggestions(`{"name": "crm"}`)
	if !errors.Is(err, apperrors.ErrMalformedResponse) {
		t.Errorf("AssembleSuggestions() error = %v, want ErrMalformedResponse", err)
	}
}

func TestAssembleSuggestionsEmptyArray(t *testing.T) {
	suggestions, err := AssembleSuggestions("[]")
	if err != nil {
		t.Fatalf("AssembleSuggestions() error = %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("got %d suggestions, want 0", len(suggestions))
	}
}
