package mssql

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/entigen/entigen/pkg/adapters/datasource"
)

// DefaultPort is the default SQL Server port.
const DefaultPort = 1433

// connString builds a go-mssqldb connection URL from a parsed descriptor.
func connString(desc *datasource.Descriptor) string {
	port := desc.Port
	if port == 0 {
		port = DefaultPort
	}

	query := url.Values{}
	if desc.Database != "" {
		query.Set("database", desc.Database)
	}
	if enc := desc.Options.Get("encrypt"); enc != "" {
		query.Set("encrypt", enc)
	}

	u := url.URL{
		Scheme:   "sqlserver",
		Host:     fmt.Sprintf("%s:%d", desc.Host, port),
		RawQuery: query.Encode(),
	}
	if desc.User != "" {
		u.User = url.UserPassword(desc.User, desc.Password)
	}

	return u.String()
}

// quoteName escapes an identifier using SQL Server bracket quoting.
func quoteName(identifier string) string {
	escaped := strings.ReplaceAll(identifier, "]", "]]")
	return fmt.Sprintf("[%s]", escaped)
}

// qualifiedTableName builds a fully qualified table name: [schema].[table].
func qualifiedTableName(schema, table string) string {
	if schema == "" {
		return quoteName(table)
	}
	return quoteName(schema) + "." + quoteName(table)
}
