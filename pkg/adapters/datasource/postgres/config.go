package postgres

import (
	"fmt"
	"strings"

	"github.com/entigen/entigen/pkg/adapters/datasource"
)

// DefaultPort is the default PostgreSQL port.
const DefaultPort = 5432

// DefaultSSLMode is used when the descriptor carries no sslmode option.
const DefaultSSLMode = "prefer"

// connString builds a pgx connection string from a parsed descriptor.
func connString(desc *datasource.Descriptor) string {
	port := desc.Port
	if port == 0 {
		port = DefaultPort
	}

	sslMode := desc.Options.Get("sslmode")
	if sslMode == "" {
		sslMode = DefaultSSLMode
	}

	parts := []string{
		fmt.Sprintf("host=%s", desc.Host),
		fmt.Sprintf("port=%d", port),
		fmt.Sprintf("sslmode=%s", sslMode),
	}
	if desc.User != "" {
		parts = append(parts, fmt.Sprintf("user=%s", desc.User))
	}
	if desc.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", desc.Password))
	}
	if desc.Database != "" {
		parts = append(parts, fmt.Sprintf("dbname=%s", desc.Database))
	}

	return strings.Join(parts, " ")
}
