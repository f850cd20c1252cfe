// Package mssql implements datasource.SchemaInspector for Microsoft SQL
// Server using the sys catalog views.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb" // register the sqlserver driver
	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
	"github.com/entigen/entigen/pkg/apperrors"
	"github.com/entigen/entigen/pkg/logging"
)

// Inspector provides SQL Server schema introspection over database/sql.
type Inspector struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInspector connects to SQL Server and verifies the connection. A failed
// connect or rejected credential surfaces as apperrors.ErrConnection.
// If logger is nil, a no-op logger is used.
func NewInspector(ctx context.Context, desc *datasource.Descriptor, logger *zap.Logger) (*Inspector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Driver errors may echo the connection string; redact before wrapping.
	db, err := sql.Open("sqlserver", connString(desc))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConnection, logging.SanitizeError(err))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConnection, logging.SanitizeError(err))
	}

	return &Inspector{
		db:     db,
		logger: logger.Named("mssql"),
	}, nil
}

// Close releases the database connection.
func (i *Inspector) Close() error {
	if i.db != nil {
		return i.db.Close()
	}
	return nil
}

// ListTables returns all user tables, excluding system tables.
func (i *Inspector) ListTables(ctx context.Context) ([]datasource.TableMeta, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    SCHEMA_NAME(t.schema_id) AS table_schema,
	    t.name AS table_name
	FROM sys.tables t
	WHERE t.is_ms_shipped = 0
	ORDER BY table_schema, table_name
	`

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []datasource.TableMeta
	for rows.Next() {
		var t datasource.TableMeta
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}

	return tables, nil
}

// ListColumns returns columns for a specific table in ordinal order.
func (i *Inspector) ListColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMeta, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    c.name AS column_name,
	    tp.name AS data_type,
	    CASE WHEN c.is_nullable = 1 THEN 1 ELSE 0 END AS is_nullable,
	    CASE WHEN pk.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_primary_key,
	    CASE WHEN uq.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_unique,
	    CASE WHEN c.default_object_id <> 0 THEN 1 ELSE 0 END AS has_default,
	    c.column_id AS ordinal_position
	FROM sys.columns c
	INNER JOIN sys.types tp ON c.user_type_id = tp.user_type_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    INNER JOIN sys.indexes i ON ic.object_id = i.object_id AND ic.index_id = i.index_id
	    WHERE i.is_primary_key = 1
	) pk ON c.object_id = pk.object_id AND c.column_id = pk.column_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    INNER JOIN sys.indexes i ON ic.object_id = i.object_id AND ic.index_id = i.index_id
	    WHERE i.is_unique = 1 AND i.is_primary_key = 0
	) uq ON c.object_id = uq.object_id AND c.column_id = uq.column_id
	WHERE c.object_id = OBJECT_ID(QUOTENAME(@schema) + N'.' + QUOTENAME(@table))
	ORDER BY c.column_id
	`

	rows, err := i.db.QueryContext(ctx, query,
		sql.Named("schema", schemaName),
		sql.Named("table", tableName),
	)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s.%s: %w", schemaName, tableName, err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMeta
	for rows.Next() {
		var col datasource.ColumnMeta
		var isNullable, isPrimary, isUnique, hasDefault int

		if err := rows.Scan(&col.Name, &col.DataType, &isNullable, &isPrimary, &isUnique, &hasDefault, &col.OrdinalPosition); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}

		col.IsNullable = isNullable == 1
		col.IsPrimaryKey = isPrimary == 1
		col.IsUnique = isUnique == 1
		col.HasDefault = hasDefault == 1

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}

	return columns, nil
}

// ListForeignKeys returns all foreign key relationships.
func (i *Inspector) ListForeignKeys(ctx context.Context) ([]datasource.ForeignKeyMeta, error) {
	const query = `
	SET NOCOUNT ON;
	SELECT
	    fk.name AS constraint_name,
	    SCHEMA_NAME(fk.schema_id) AS source_schema,
	    OBJECT_NAME(fk.parent_object_id) AS source_table,
	    COL_NAME(fkc.parent_object_id, fkc.parent_column_id) AS source_column,
	    SCHEMA_NAME(rt.schema_id) AS target_schema,
	    OBJECT_NAME(fk.referenced_object_id) AS target_table,
	    COL_NAME(fkc.referenced_object_id, fkc.referenced_column_id) AS target_column
	FROM sys.foreign_keys fk
	INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
	INNER JOIN sys.tables rt ON fk.referenced_object_id = rt.object_id
	WHERE fk.is_ms_shipped = 0
	ORDER BY source_schema, source_table, fk.name, fkc.constraint_column_id
	`

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []datasource.ForeignKeyMeta
	for rows.Next() {
		var fk datasource.ForeignKeyMeta
		if err := rows.Scan(&fk.ConstraintName, &fk.SourceSchema, &fk.SourceTable, &fk.SourceColumn,
			&fk.TargetSchema, &fk.TargetTable, &fk.TargetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key row: %w", err)
		}
		fks = append(fks, fk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign key rows: %w", err)
	}

	return fks, nil
}

// CountRows returns the exact row count of one table.
func (i *Inspector) CountRows(ctx context.Context, schemaName, tableName string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT_BIG(*) FROM %s`, qualifiedTableName(schemaName, tableName))

	var count int64
	if err := i.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows in %s.%s: %w", schemaName, tableName, err)
	}
	return count, nil
}

// Ensure Inspector implements datasource.SchemaInspector at compile time.
var _ datasource.SchemaInspector = (*Inspector)(nil)
