package ontology

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/llm"
	"github.com/entigen/entigen/pkg/models"
	"github.com/entigen/entigen/pkg/prompts"
)

// Designer runs the sequential prompt → model call → assemble pipeline.
// Every step completes before the next begins, and the designer holds no
// state across invocations beyond the client it was built with.
type Designer struct {
	client llm.Client
	logger *zap.Logger
}

// NewDesigner creates a designer. If logger is nil, a no-op logger is used.
func NewDesigner(client llm.Client, logger *zap.Logger) *Designer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Designer{
		client: client,
		logger: logger.Named("designer"),
	}
}

// Generate produces an ontology from a schema snapshot.
func (d *Designer) Generate(ctx context.Context, snapshot *models.SchemaSnapshot) (*models.Ontology, error) {
	prompt := prompts.BuildOntologyPrompt(snapshot)

	d.logger.Debug("generating ontology",
		zap.Int("tables", len(snapshot.Tables)),
		zap.String("provider", string(d.client.Provider())))

	raw, err := d.client.Complete(ctx, prompt, prompts.OntologySystemMessage())
	if err != nil {
		return nil, fmt.Errorf("generate ontology: %w", err)
	}

	result, err := Assemble(raw)
	if err != nil {
		return nil, err
	}
	stampProvenance(result, d.client)

	d.logger.Info("ontology generated",
		zap.String("name", result.Name),
		zap.Int("classes", len(result.Classes)),
		zap.Int("properties", len(result.Properties)),
		zap.Int("relationships", len(result.Relationships)))

	return result, nil
}

// Refine re-runs the cycle with the prior ontology and free-text feedback.
// The result is a complete replacement ontology, never a patch: the prompt
// carries the full prior state forward, and the input value is not mutated.
func (d *Designer) Refine(ctx context.Context, snapshot *models.SchemaSnapshot, current *models.Ontology, feedback string) (*models.Ontology, error) {
	prompt := prompts.BuildRefinementPrompt(snapshot, current, feedback)

	d.logger.Debug("refining ontology",
		zap.String("name", current.Name),
		zap.Int("feedback_len", len(feedback)))

	raw, err := d.client.Complete(ctx, prompt, prompts.OntologySystemMessage())
	if err != nil {
		return nil, fmt.Errorf("refine ontology: %w", err)
	}

	result, err := Assemble(raw)
	if err != nil {
		return nil, err
	}
	stampProvenance(result, d.client)

	d.logger.Info("ontology refined",
		zap.String("name", result.Name),
		zap.Int("classes", len(result.Classes)))

	return result, nil
}

// SuggestImprovements asks the model for a flat list of improvement
// suggestions, preserving the order the model returned them in.
func (d *Designer) SuggestImprovements(ctx context.Context, snapshot *models.SchemaSnapshot, current *models.Ontology) ([]string, error) {
	prompt := prompts.BuildSuggestionsPrompt(snapshot, current)

	raw, err := d.client.Complete(ctx, prompt, prompts.SuggestionsSystemMessage())
	if err != nil {
		return nil, fmt.Errorf("suggest improvements: %w", err)
	}

	suggestions, err := AssembleSuggestions(raw)
	if err != nil {
		return nil, err
	}

	d.logger.Info("improvement suggestions received",
		zap.Int("count", len(suggestions)))

	return suggestions, nil
}

// stampProvenance records which model produced the ontology and when. The
// generation id ties log lines and output files from the same run together.
func stampProvenance(o *models.Ontology, client llm.Client) {
	o.Metadata["generation_id"] = uuid.NewString()
	o.Metadata["generated_at"] = time.Now().UTC().Format(time.RFC3339)
	o.Metadata["model"] = client.Model()
	o.Metadata["provider"] = string(client.Provider())
}
