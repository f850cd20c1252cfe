// Package inspect builds immutable schema snapshots from a datasource and
// derives the entity-candidate heuristics used by ontology generation.
package inspect

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
	"github.com/entigen/entigen/pkg/logging"
	"github.com/entigen/entigen/pkg/models"
)

// Scoring thresholds. Deterministic given the same schema; rule order is
// fixed and mirrored by the order of TableInfo.Reasons.
const (
	// attributeThreshold is the non-key column count a table must exceed to
	// earn attribute points.
	attributeThreshold = 1
	attributePoints    = 2

	// rowCountThreshold is the row count a table must exceed to earn data
	// points. Tables with unknown row counts earn none.
	rowCountThreshold = 100
	rowCountPoints    = 1

	// entityScoreThreshold is the minimum score for is_likely_entity.
	entityScoreThreshold = 2

	// junctionFKCount and junctionExtraColumns describe the junction-table
	// pattern: exactly two foreign-key columns with at most one additional
	// column of any kind.
	junctionFKCount      = 2
	junctionExtraColumns = 1
)

// Options controls one inspection session.
type Options struct {
	// Source is the original connection descriptor; it is sanitized before
	// being recorded on the snapshot.
	Source string

	// ExcludeSchemas are schema names left out of the snapshot.
	ExcludeSchemas []string

	// CollectRowCounts enables per-table row counting. A count failure on
	// one table is logged and recorded as absent; inspection continues.
	CollectRowCounts bool
}

// Builder produces SchemaSnapshot values from a SchemaInspector. The builder
// holds no state across Build calls.
type Builder struct {
	inspector datasource.SchemaInspector
	logger    *zap.Logger
}

// NewBuilder creates a snapshot builder. If logger is nil, a no-op logger
// is used.
func NewBuilder(inspector datasource.SchemaInspector, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		inspector: inspector,
		logger:    logger.Named("inspect"),
	}
}

// Build enumerates tables, columns, keys, and foreign keys, optionally
// samples row counts, and returns the finished snapshot. The snapshot is
// complete when returned; the builder never mutates it afterwards.
func (b *Builder) Build(ctx context.Context, opts Options) (*models.SchemaSnapshot, error) {
	excluded := make(map[string]struct{}, len(opts.ExcludeSchemas))
	for _, s := range opts.ExcludeSchemas {
		excluded[s] = struct{}{}
	}

	tables, err := b.inspector.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	fks, err := b.inspector.ListForeignKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foreign keys: %w", err)
	}
	fksByTable := make(map[string][]datasource.ForeignKeyMeta)
	for _, fk := range fks {
		key := fk.SourceSchema + "." + fk.SourceTable
		fksByTable[key] = append(fksByTable[key], fk)
	}

	snapshot := &models.SchemaSnapshot{
		Source: opts.Source,
	}
	schemaSet := make(map[string]struct{})

	for _, t := range tables {
		if _, skip := excluded[t.Schema]; skip {
			continue
		}
		schemaSet[t.Schema] = struct{}{}

		columns, err := b.inspector.ListColumns(ctx, t.Schema, t.Name)
		if err != nil {
			return nil, fmt.Errorf("list columns for %s.%s: %w", t.Schema, t.Name, err)
		}

		info := models.TableInfo{
			Schema: t.Schema,
			Name:   t.Name,
		}

		uniqueColumns := make(map[string]struct{})
		for _, c := range columns {
			info.Columns = append(info.Columns, models.ColumnInfo{
				Name:       c.Name,
				DataType:   c.DataType,
				IsNullable: c.IsNullable,
				HasDefault: c.HasDefault,
			})
			if c.IsPrimaryKey {
				info.PrimaryKey = append(info.PrimaryKey, c.Name)
			}
			if c.IsUnique || c.IsPrimaryKey {
				uniqueColumns[c.Name] = struct{}{}
			}
		}

		for _, fk := range fksByTable[t.Schema+"."+t.Name] {
			info.ForeignKeys = append(info.ForeignKeys, models.ForeignKeyInfo{
				SourceColumn: fk.SourceColumn,
				TargetTable:  fk.TargetTable,
				TargetColumn: fk.TargetColumn,
				Cardinality:  inferCardinality(fk.SourceColumn, uniqueColumns),
			})
		}

		if opts.CollectRowCounts {
			count, err := b.inspector.CountRows(ctx, t.Schema, t.Name)
			if err != nil {
				// Non-fatal: record the count as absent and keep going.
				// Driver errors may echo credentials, so log them redacted.
				b.logger.Warn("row count failed, continuing without it",
					zap.String("schema", t.Schema),
					zap.String("table", t.Name),
					zap.String("error", logging.SanitizeError(err)))
			} else {
				info.RowCount = &count
			}
		}

		scoreTable(&info)

		snapshot.Tables = append(snapshot.Tables, info)
	}

	snapshot.Schemas = make([]string, 0, len(schemaSet))
	for s := range schemaSet {
		snapshot.Schemas = append(snapshot.Schemas, s)
	}
	sort.Strings(snapshot.Schemas)

	b.logger.Info("schema snapshot built",
		zap.Int("schemas", len(snapshot.Schemas)),
		zap.Int("tables", len(snapshot.Tables)))

	return snapshot, nil
}

// inferCardinality derives the multiplicity of a foreign key from the
// referencing table's perspective: a uniqueness constraint on the
// referencing column means one-to-one, otherwise many-to-one. Direction is
// always from the table holding the foreign key toward the referenced table.
func inferCardinality(sourceColumn string, uniqueColumns map[string]struct{}) models.Cardinality {
	if _, unique := uniqueColumns[sourceColumn]; unique {
		return models.CardinalityOneToOne
	}
	return models.CardinalityManyToOne
}

// scoreTable applies the entity-candidate heuristics in a fixed order and
// records one reason per rule that fired. A junction-pattern table is never
// an entity candidate, regardless of row count.
func scoreTable(t *models.TableInfo) {
	nonKeyColumns := 0
	for _, c := range t.Columns {
		if !t.IsKeyColumn(c.Name) {
			nonKeyColumns++
		}
	}

	score := 0
	var reasons []string

	if nonKeyColumns > attributeThreshold {
		score += attributePoints
		reasons = append(reasons, fmt.Sprintf("has multiple attributes (%d non-key columns)", nonKeyColumns))
	}

	if t.RowCount != nil && *t.RowCount > rowCountThreshold {
		score += rowCountPoints
		reasons = append(reasons, fmt.Sprintf("contains significant data (%d rows)", *t.RowCount))
	}

	junction := isJunctionTable(t)
	if junction {
		score = 0
		reasons = append(reasons, fmt.Sprintf("junction table pattern (%d foreign keys, little attribute data)", len(t.ForeignKeys)))
	}

	t.EntityScore = score
	t.IsLikelyEntity = !junction && score >= entityScoreThreshold
	t.Reasons = reasons
}

// isJunctionTable reports whether the table matches the junction pattern:
// exactly two foreign-key columns and at most one additional column.
func isJunctionTable(t *models.TableInfo) bool {
	fkColumns := make(map[string]struct{}, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		fkColumns[fk.SourceColumn] = struct{}{}
	}
	if len(fkColumns) != junctionFKCount {
		return false
	}
	return len(t.Columns)-len(fkColumns) <= junctionExtraColumns
}
