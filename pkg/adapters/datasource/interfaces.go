// Package datasource defines the introspection SPI implemented by each
// relational datasource adapter.
package datasource

import "context"

// SchemaInspector enumerates schemas, tables, columns, and keys for one
// datasource. Each implementation owns its connection and must be closed
// when done; Close is safe to call on every exit path.
type SchemaInspector interface {
	// ListTables returns all user tables, excluding system schemas.
	ListTables(ctx context.Context) ([]TableMeta, error)

	// ListColumns returns the columns of one table in ordinal order.
	ListColumns(ctx context.Context, schemaName, tableName string) ([]ColumnMeta, error)

	// ListForeignKeys returns every foreign key constraint in scope.
	ListForeignKeys(ctx context.Context) ([]ForeignKeyMeta, error)

	// CountRows returns the exact row count of one table. A failure here is
	// non-fatal to inspection: the builder records the count as absent and
	// continues with the remaining tables.
	CountRows(ctx context.Context, schemaName, tableName string) (int64, error)

	// Close releases the underlying connection.
	Close() error
}

// TableMeta identifies one table.
type TableMeta struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
}

// ColumnMeta describes one column as reported by the datasource catalog.
type ColumnMeta struct {
	Name            string `json:"name"`
	DataType        string `json:"data_type"`
	IsNullable      bool   `json:"is_nullable"`
	IsPrimaryKey    bool   `json:"is_primary_key"`
	IsUnique        bool   `json:"is_unique"`
	HasDefault      bool   `json:"has_default"`
	OrdinalPosition int    `json:"ordinal_position"`
}

// ForeignKeyMeta describes one foreign key constraint.
type ForeignKeyMeta struct {
	ConstraintName string `json:"constraint_name"`
	SourceSchema   string `json:"source_schema"`
	SourceTable    string `json:"source_table"`
	SourceColumn   string `json:"source_column"`
	TargetSchema   string `json:"target_schema"`
	TargetTable    string `json:"target_table"`
	TargetColumn   string `json:"target_column"`
}
