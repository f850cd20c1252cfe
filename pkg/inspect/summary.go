package inspect

import (
	"fmt"
	"strings"

	"github.com/entigen/entigen/pkg/models"
)

// Summary renders a human-readable view of a snapshot: schema counts, entity
// candidates with scores and reasons, and the relationship inventory with
// cardinalities. The output is for terminals, not for machine parsing.
func Summary(snapshot *models.SchemaSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Source: %s\n", snapshot.Source)
	fmt.Fprintf(&sb, "Schemas: %s\n", strings.Join(snapshot.Schemas, ", "))
	fmt.Fprintf(&sb, "Tables: %d\n\n", len(snapshot.Tables))

	sb.WriteString("Entity candidates:\n")
	candidates := 0
	for i := range snapshot.Tables {
		t := &snapshot.Tables[i]
		if !t.IsLikelyEntity {
			continue
		}
		candidates++
		fmt.Fprintf(&sb, "  %s (score %d)\n", t.QualifiedName(), t.EntityScore)
		for _, r := range t.Reasons {
			fmt.Fprintf(&sb, "    - %s\n", r)
		}
	}
	if candidates == 0 {
		sb.WriteString("  (none)\n")
	}

	sb.WriteString("\nOther tables:\n")
	others := 0
	for i := range snapshot.Tables {
		t := &snapshot.Tables[i]
		if t.IsLikelyEntity {
			continue
		}
		others++
		fmt.Fprintf(&sb, "  %s (score %d)\n", t.QualifiedName(), t.EntityScore)
		for _, r := range t.Reasons {
			fmt.Fprintf(&sb, "    - %s\n", r)
		}
	}
	if others == 0 {
		sb.WriteString("  (none)\n")
	}

	sb.WriteString("\nRelationships:\n")
	rels := 0
	for i := range snapshot.Tables {
		t := &snapshot.Tables[i]
		for _, fk := range t.ForeignKeys {
			rels++
			fmt.Fprintf(&sb, "  %s.%s -> %s.%s (%s)\n",
				t.QualifiedName(), fk.SourceColumn, fk.TargetTable, fk.TargetColumn, fk.Cardinality)
		}
	}
	if rels == 0 {
		sb.WriteString("  (none)\n")
	}

	return sb.String()
}
