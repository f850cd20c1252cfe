package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "acme-resolution")

	gen := NewGenerator(nil)
	err := gen.Generate(Options{
		Name:        "acme-resolution",
		Dir:         dir,
		Description: "Deduplicate the ACME customer base",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, rel := range []string{
		"entigen.yaml",
		"README.md",
		".gitignore",
		filepath.Join("rules", "matching.yaml"),
	} {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file %s: %v", rel, err)
		}
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "acme-resolution") {
		t.Error("README does not mention the project name")
	}
	if !strings.Contains(string(readme), "Deduplicate the ACME customer base") {
		t.Error("README does not carry the description")
	}

	// No template file may leak through unrendered.
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, ".tmpl") {
			t.Errorf("unrendered template file %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGenerateDefaultDescription(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	gen := NewGenerator(nil)
	if err := gen.Generate(Options{Name: "proj", Dir: dir}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "Entity resolution project proj") {
		t.Error("README missing the default description")
	}
}

func TestGenerateRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(nil)
	err := gen.Generate(Options{Name: "proj", Dir: dir})
	if err == nil {
		t.Fatal("Generate() succeeded into a non-empty directory")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error = %v, want non-empty directory refusal", err)
	}
}

func TestGenerateRequiresName(t *testing.T) {
	gen := NewGenerator(nil)
	if err := gen.Generate(Options{}); err == nil {
		t.Fatal("Generate() accepted empty project name")
	}
}

func TestGenerateAllowsEmptyExistingDir(t *testing.T) {
	dir := t.TempDir()

	gen := NewGenerator(nil)
	if err := gen.Generate(Options{Name: "proj", Dir: dir}); err != nil {
		t.Fatalf("Generate() error = %v, want success into empty dir", err)
	}
}
