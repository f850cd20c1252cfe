package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.Registration{
		Info: datasource.AdapterInfo{
			Type:        "postgres",
			DisplayName: "PostgreSQL",
			Description: "Connect to PostgreSQL 12+, Aurora PostgreSQL, Supabase",
		},
		Factory: func(ctx context.Context, desc *datasource.Descriptor, logger *zap.Logger) (datasource.SchemaInspector, error) {
			return NewInspector(ctx, desc, logger)
		},
	})
}
