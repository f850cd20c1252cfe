// Package prompts builds the model prompts for ontology generation,
// refinement, and improvement suggestions. Every function here is a pure
// transformation of the snapshot and prior ontology; no side effects.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/entigen/entigen/pkg/models"
)

// OntologySystemMessage is the system message for generation and refinement.
func OntologySystemMessage() string {
	return `You are a data modeling expert. You design knowledge-graph ontologies (classes, properties, relationships) from relational database schemas. You respond with a single JSON object and no additional text.`
}

// SuggestionsSystemMessage is the system message for improvement suggestions.
func SuggestionsSystemMessage() string {
	return `You are a data modeling expert reviewing a knowledge-graph ontology against its source database schema. You respond with a single JSON array of strings and no additional text.`
}

// BuildOntologyPrompt renders the full table/column/key/relationship
// inventory of a snapshot plus the output contract for the ontology JSON.
func BuildOntologyPrompt(snapshot *models.SchemaSnapshot) string {
	var prompt strings.Builder

	prompt.WriteString("# Ontology Design\n\n")
	prompt.WriteString("Design an ontology for the following relational schema. ")
	prompt.WriteString("Model every likely entity table as a class, columns as properties, and foreign keys as relationships.\n\n")

	writeSchemaInventory(&prompt, snapshot)
	writeOntologyFormat(&prompt)

	return prompt.String()
}

// BuildRefinementPrompt includes the complete prior ontology plus free-text
// feedback. The response must be a full replacement ontology: the prompt is
// responsible for carrying forward state the feedback does not mention.
func BuildRefinementPrompt(snapshot *models.SchemaSnapshot, ontology *models.Ontology, feedback string) string {
	var prompt strings.Builder

	prompt.WriteString("# Ontology Refinement\n\n")
	prompt.WriteString("Revise the ontology below according to the feedback. ")
	prompt.WriteString("Return the COMPLETE revised ontology: keep every class, property, and relationship the feedback does not change.\n\n")

	writeSchemaInventory(&prompt, snapshot)

	prompt.WriteString("## Current Ontology\n\n```json\n")
	prompt.WriteString(marshalOntology(ontology))
	prompt.WriteString("\n```\n\n")

	prompt.WriteString("## Feedback\n\n")
	prompt.WriteString(feedback)
	prompt.WriteString("\n\n")

	writeOntologyFormat(&prompt)

	return prompt.String()
}

// BuildSuggestionsPrompt asks for improvement suggestions as a top-level
// JSON array of strings. The array shape is the discriminator that keeps
// suggestion payloads distinct from ontology payloads, which are objects.
func BuildSuggestionsPrompt(snapshot *models.SchemaSnapshot, ontology *models.Ontology) string {
	var prompt strings.Builder

	prompt.WriteString("# Ontology Review\n\n")
	prompt.WriteString("Review the ontology below against its source schema and suggest improvements.\n\n")

	writeSchemaInventory(&prompt, snapshot)

	prompt.WriteString("## Current Ontology\n\n```json\n")
	prompt.WriteString(marshalOntology(ontology))
	prompt.WriteString("\n```\n\n")

	prompt.WriteString("## Output Format\n\n")
	prompt.WriteString("Respond with a JSON array of strings, one suggestion per element, most important first. Example:\n\n")
	prompt.WriteString("```json\n[\"Add a required email property to Person\", \"Model employments as a relationship instead of a class\"]\n```\n\n")
	prompt.WriteString("Return ONLY the JSON array, no additional text.\n")

	return prompt.String()
}

// writeSchemaInventory renders tables, columns, keys, candidate scores, and
// relationships with inferred cardinalities.
func writeSchemaInventory(prompt *strings.Builder, snapshot *models.SchemaSnapshot) {
	prompt.WriteString("## Database Schema\n\n")

	for i := range snapshot.Tables {
		t := &snapshot.Tables[i]

		fmt.Fprintf(prompt, "### %s\n", t.QualifiedName())
		if t.RowCount != nil {
			fmt.Fprintf(prompt, "Row count: %d\n", *t.RowCount)
		}
		if len(t.PrimaryKey) > 0 {
			fmt.Fprintf(prompt, "Primary key: %s\n", strings.Join(t.PrimaryKey, ", "))
		}
		if t.IsLikelyEntity {
			fmt.Fprintf(prompt, "Entity candidate (suggested class name: %s)\n", ClassNameForTable(t.Name))
		} else if len(t.Reasons) > 0 {
			fmt.Fprintf(prompt, "Not an entity candidate: %s\n", strings.Join(t.Reasons, "; "))
		}

		prompt.WriteString("Columns:\n")
		for _, col := range t.Columns {
			flags := ""
			for _, fk := range t.ForeignKeys {
				if fk.SourceColumn == col.Name {
					flags += fmt.Sprintf(" [FK→%s.%s, %s]", fk.TargetTable, fk.TargetColumn, fk.Cardinality)
				}
			}
			nullInfo := ""
			if col.IsNullable {
				nullInfo = " (nullable)"
			}
			fmt.Fprintf(prompt, "- %s (%s)%s%s\n", col.Name, col.DataType, flags, nullInfo)
		}
		prompt.WriteString("\n")
	}
}

// writeOntologyFormat renders the JSON output contract for an ontology.
func writeOntologyFormat(prompt *strings.Builder) {
	prompt.WriteString("## Output Format\n\n")
	prompt.WriteString("Respond with a single JSON object:\n")
	prompt.WriteString("- `name`: ontology name\n")
	prompt.WriteString("- `description`: one-paragraph summary\n")
	prompt.WriteString("- `classes`: array of {`name`, `description`, `properties` (array of property names), `parent_class` (optional), `source_tables` (array of table names)}\n")
	prompt.WriteString("- `properties`: array of {`name`, `description`, `data_type` (one of string, integer, float, boolean, date, datetime), `domain` (array of class names), `range` (optional target class), `is_required`, `is_unique`}\n")
	prompt.WriteString("- `relationships`: array of {`name`, `description`, `source_class`, `target_class`, `cardinality` (one of one-to-one, one-to-many, many-to-one, many-to-many), `inverse_name` (optional), `source_foreign_key` (optional \"table.column\")}\n")
	prompt.WriteString("- `metadata`: object of string keys to scalar values\n\n")
	prompt.WriteString("Every class named by a relationship must appear in `classes`, and every property listed on a class must appear in `properties`.\n\n")
	prompt.WriteString("Return ONLY the JSON, no additional text.\n")
}

// marshalOntology renders an ontology for prompt embedding. Marshaling a
// value we built cannot fail; the fallback keeps the prompt usable anyway.
func marshalOntology(ontology *models.Ontology) string {
	data, err := json.MarshalIndent(ontology, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ClassNameForTable suggests a class name for a table: singularized and
// exported CamelCase, so "order_items" becomes "OrderItem" and "people"
// becomes "Person".
func ClassNameForTable(tableName string) string {
	singular := inflection.Singular(tableName)

	parts := strings.FieldsFunc(singular, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	var name strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		name.WriteString(string(runes))
	}

	return name.String()
}
