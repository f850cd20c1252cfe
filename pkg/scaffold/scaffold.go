// Package scaffold instantiates the bundled entity-resolution project
// template into a new directory.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

// outputNames maps template file names onto their rendered names. Files not
// listed here keep their name minus the .tmpl suffix.
var outputNames = map[string]string{
	"gitignore.tmpl": ".gitignore",
}

// Options describes the project to scaffold.
type Options struct {
	// Name is the project name; it becomes the directory name unless Dir
	// is set.
	Name string

	// Dir is the target directory. Defaults to ./<Name>.
	Dir string

	// Description seeds the generated README and project config.
	Description string
}

// templateData is the value rendered into every template file.
type templateData struct {
	Name        string
	Description string
}

// Generator renders the bundled template. It holds no state between calls.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a generator. If logger is nil, a no-op logger is used.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger.Named("scaffold")}
}

// Generate instantiates the bundled template into the target directory.
// It refuses to write into an existing non-empty directory.
func (g *Generator) Generate(opts Options) error {
	if opts.Name == "" {
		return fmt.Errorf("project name is required")
	}

	dir := opts.Dir
	if dir == "" {
		dir = opts.Name
	}

	if err := checkTargetDir(dir); err != nil {
		return err
	}

	data := templateData{
		Name:        opts.Name,
		Description: opts.Description,
	}
	if data.Description == "" {
		data.Description = fmt.Sprintf("Entity resolution project %s", opts.Name)
	}

	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel("templates", path)
		if err != nil {
			return err
		}

		out := filepath.Join(dir, outputPath(rel))
		if err := g.renderFile(path, out, data); err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	g.logger.Info("project scaffolded",
		zap.String("name", opts.Name),
		zap.String("dir", dir))

	return nil
}

// checkTargetDir verifies the target is absent or an empty directory.
func checkTargetDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect target directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("target directory %s already exists and is not empty", dir)
	}
	return nil
}

// outputPath strips the .tmpl suffix and applies the rename table.
func outputPath(rel string) string {
	base := filepath.Base(rel)
	if renamed, ok := outputNames[base]; ok {
		return filepath.Join(filepath.Dir(rel), renamed)
	}
	return strings.TrimSuffix(rel, ".tmpl")
}

// renderFile renders one template file to its output path, creating parent
// directories as needed.
func (g *Generator) renderFile(src, dst string, data templateData) error {
	content, err := templatesFS.ReadFile(src)
	if err != nil {
		return err
	}

	tmpl, err := template.New(filepath.Base(src)).Parse(string(content))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return err
	}

	g.logger.Debug("rendered template file", zap.String("path", dst))
	return nil
}
