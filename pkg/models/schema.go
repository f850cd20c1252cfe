package models

// Cardinality describes the multiplicity of a relationship between two
// linked entities, inferred from key and uniqueness constraints.
type Cardinality string

const (
	CardinalityOneToOne   Cardinality = "one-to-one"
	CardinalityOneToMany  Cardinality = "one-to-many"
	CardinalityManyToOne  Cardinality = "many-to-one"
	CardinalityManyToMany Cardinality = "many-to-many"
)

// SchemaSnapshot is an immutable, point-in-time view of a relational schema.
// Built once per inspection call and owned by the caller that requested it.
type SchemaSnapshot struct {
	// Source identifies the inspected datasource with credentials redacted.
	Source  string      `json:"source"`
	Schemas []string    `json:"schemas"`
	Tables  []TableInfo `json:"tables"`
}

// TableInfo describes one table plus the heuristic entity assessment
// derived during inspection.
type TableInfo struct {
	Schema      string           `json:"schema"`
	Name        string           `json:"name"`
	Columns     []ColumnInfo     `json:"columns"`
	PrimaryKey  []string         `json:"primary_key"`
	ForeignKeys []ForeignKeyInfo `json:"foreign_keys"`

	// RowCount is nil when row-count collection was disabled or failed for
	// this table. A failed count never aborts inspection of other tables.
	RowCount *int64 `json:"row_count,omitempty"`

	EntityScore    int      `json:"entity_score"`
	IsLikelyEntity bool     `json:"is_likely_entity"`
	Reasons        []string `json:"reasons"`
}

// QualifiedName returns "schema.table", or just the table name when the
// schema is empty.
func (t *TableInfo) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// IsKeyColumn reports whether the named column participates in the primary
// key or any foreign key of the table.
func (t *TableInfo) IsKeyColumn(name string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == name {
			return true
		}
	}
	for _, fk := range t.ForeignKeys {
		if fk.SourceColumn == name {
			return true
		}
	}
	return false
}

// ColumnInfo describes a single column.
type ColumnInfo struct {
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	IsNullable bool   `json:"is_nullable"`
	HasDefault bool   `json:"has_default"`
}

// ForeignKeyInfo describes one foreign key from the perspective of the table
// holding the referencing column. Cardinality is one-to-one when the
// referencing column carries a uniqueness constraint, many-to-one otherwise.
type ForeignKeyInfo struct {
	SourceColumn string      `json:"source_column"`
	TargetTable  string      `json:"target_table"`
	TargetColumn string      `json:"target_column"`
	Cardinality  Cardinality `json:"cardinality"`
}
