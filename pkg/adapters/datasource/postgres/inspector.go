// Package postgres implements datasource.SchemaInspector for PostgreSQL
// using the information_schema and pg_catalog views.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
	"github.com/entigen/entigen/pkg/apperrors"
	"github.com/entigen/entigen/pkg/logging"
)

// qualifiedTableName returns a properly quoted table reference. If schemaName
// is empty, returns just the quoted table name.
func qualifiedTableName(schemaName, tableName string) string {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	if schemaName == "" {
		return quotedTable
	}
	return pgx.Identifier{schemaName}.Sanitize() + "." + quotedTable
}

// Inspector provides PostgreSQL schema introspection over a pgx pool.
type Inspector struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewInspector connects to PostgreSQL and verifies the connection. A failed
// connect or rejected credential surfaces as apperrors.ErrConnection.
// If logger is nil, a no-op logger is used.
func NewInspector(ctx context.Context, desc *datasource.Descriptor, logger *zap.Logger) (*Inspector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Driver errors may echo the connection string; redact before wrapping.
	pool, err := pgxpool.New(ctx, connString(desc))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConnection, logging.SanitizeError(err))
	}

	// pgxpool connects lazily; ping so credential rejection surfaces here
	// rather than on the first catalog query.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConnection, logging.SanitizeError(err))
	}

	return &Inspector{
		pool:   pool,
		logger: logger.Named("postgres"),
	}, nil
}

// Close releases the connection pool.
func (i *Inspector) Close() error {
	if i.pool != nil {
		i.pool.Close()
	}
	return nil
}

// ListTables returns all user tables, excluding system schemas.
func (i *Inspector) ListTables(ctx context.Context) ([]datasource.TableMeta, error) {
	const query = `
		SELECT t.table_schema, t.table_name
		FROM information_schema.tables t
		WHERE t.table_type = 'BASE TABLE'
		  AND t.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY t.table_schema, t.table_name
	`

	rows, err := i.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []datasource.TableMeta
	for rows.Next() {
		var t datasource.TableMeta
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	return tables, nil
}

// ListColumns returns columns for a specific table in ordinal order.
// Uses pg_index for primary key and unique detection, which correctly
// identifies keys even when created as unique indexes by ORMs.
func (i *Inspector) ListColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMeta, error) {
	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES' as is_nullable,
			COALESCE(pk.is_pk, false) as is_primary_key,
			COALESCE(uq.is_unique, false) as is_unique,
			c.column_default IS NOT NULL as has_default,
			c.ordinal_position
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT a.attname as column_name, true as is_pk
			FROM pg_index ix
			JOIN pg_class t ON t.oid = ix.indrelid
			JOIN pg_namespace n ON n.oid = t.relnamespace
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
			WHERE ix.indisprimary = true
			  AND n.nspname = $1
			  AND t.relname = $2
		) pk ON c.column_name = pk.column_name
		LEFT JOIN (
			SELECT a.attname as column_name, true as is_unique
			FROM pg_index ix
			JOIN pg_class t ON t.oid = ix.indrelid
			JOIN pg_namespace n ON n.oid = t.relnamespace
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
			WHERE ix.indisunique = true
			  AND n.nspname = $1
			  AND t.relname = $2
			  AND array_length(ix.indkey, 1) = 1
		) uq ON c.column_name = uq.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := i.pool.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s.%s: %w", schemaName, tableName, err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMeta
	for rows.Next() {
		var c datasource.ColumnMeta
		if err := rows.Scan(&c.Name, &c.DataType, &c.IsNullable, &c.IsPrimaryKey, &c.IsUnique, &c.HasDefault, &c.OrdinalPosition); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// ListForeignKeys returns all foreign key relationships outside system schemas.
func (i *Inspector) ListForeignKeys(ctx context.Context) ([]datasource.ForeignKeyMeta, error) {
	const query = `
		SELECT
			tc.constraint_name,
			kcu.table_schema as source_schema,
			kcu.table_name as source_table,
			kcu.column_name as source_column,
			ccu.table_schema as target_schema,
			ccu.table_name as target_table,
			ccu.column_name as target_column
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_name = ccu.constraint_name
			AND tc.table_schema = ccu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
	`

	rows, err := i.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []datasource.ForeignKeyMeta
	for rows.Next() {
		var fk datasource.ForeignKeyMeta
		if err := rows.Scan(&fk.ConstraintName, &fk.SourceSchema, &fk.SourceTable, &fk.SourceColumn,
			&fk.TargetSchema, &fk.TargetTable, &fk.TargetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		fks = append(fks, fk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign keys: %w", err)
	}

	return fks, nil
}

// CountRows returns the exact row count of one table.
func (i *Inspector) CountRows(ctx context.Context, schemaName, tableName string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, qualifiedTableName(schemaName, tableName))

	var count int64
	if err := i.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows in %s.%s: %w", schemaName, tableName, err)
	}
	return count, nil
}

// Ensure Inspector implements datasource.SchemaInspector at compile time.
var _ datasource.SchemaInspector = (*Inspector)(nil)
