package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/entigen/entigen/pkg/apperrors"
	"github.com/entigen/entigen/pkg/llm"
	"github.com/entigen/entigen/pkg/models"
)

func TestNewCommandTree(t *testing.T) {
	app := New("test")

	if app.Name != "entigen" {
		t.Errorf("Name = %q, want entigen", app.Name)
	}

	want := map[string]bool{
		"new": false, "inspect": false, "generate": false, "refine": false, "suggest": false,
	}
	for _, c := range app.Commands {
		if _, ok := want[c.Name]; ok {
			want[c.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q missing from the tree", name)
		}
	}
}

func TestURLFlagListsRegisteredAdapters(t *testing.T) {
	app := New("test")

	for _, c := range app.Commands {
		if c.Name != "inspect" {
			continue
		}
		for _, f := range c.Flags {
			sf, ok := f.(*cli.StringFlag)
			if !ok || sf.Name != "url" {
				continue
			}
			for _, typ := range []string{"postgres", "sqlserver"} {
				if !strings.Contains(sf.Usage, typ) {
					t.Errorf("url flag usage %q does not list %q", sf.Usage, typ)
				}
			}
			return
		}
	}
	t.Fatal("inspect command has no url flag")
}

func TestWriteAndLoadOntology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ontology.json")

	original := &models.Ontology{
		Name: "crm",
		Classes: []models.OntologyClass{
			{Name: "Person", Properties: []string{"name"}, SourceTables: []string{"public.people"}},
		},
		Properties: []models.OntologyProperty{
			{Name: "name", DataType: models.DataTypeString, Domain: []string{"Person"}},
		},
		Metadata: map[string]any{},
	}

	if err := writeJSON(path, original); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	loaded, err := loadOntology(path)
	if err != nil {
		t.Fatalf("loadOntology() error = %v", err)
	}
	if loaded.Name != "crm" || len(loaded.Classes) != 1 {
		t.Errorf("loadOntology() = %+v", loaded)
	}
}

func TestLoadOntologyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	invalid := `{"name": "crm", "classes": [], "properties": [], "relationships": [{"name": "r", "source_class": "Ghost", "target_class": "Ghost", "cardinality": "many-to-one"}]}`
	if err := os.WriteFile(path, []byte(invalid), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadOntology(path); err == nil {
		t.Error("loadOntology() accepted an ontology violating referential integrity")
	}
}

func TestCycleRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "malformed response retries",
			err:  fmt.Errorf("assemble: %w", apperrors.ErrMalformedResponse),
			want: true,
		},
		{
			name: "transient provider error retries",
			err:  fmt.Errorf("generate ontology: %w", llm.NewError(llm.ErrorTypeTimeout, "request timed out", true, nil)),
			want: true,
		},
		{
			name: "auth error does not retry",
			err:  fmt.Errorf("generate ontology: %w", llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, nil)),
			want: false,
		},
		{
			name: "plain error does not retry",
			err:  errors.New("disk full"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cycleRetryable(tt.err); got != tt.want {
				t.Errorf("cycleRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestLoadOntologyMissingFile(t *testing.T) {
	if _, err := loadOntology(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("loadOntology() accepted a missing file")
	}
}
