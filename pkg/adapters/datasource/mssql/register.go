package mssql

import (
	"context"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.Registration{
		Info: datasource.AdapterInfo{
			Type:        "sqlserver",
			DisplayName: "Microsoft SQL Server",
			Description: "Connect to SQL Server 2017+, Azure SQL",
		},
		Factory: func(ctx context.Context, desc *datasource.Descriptor, logger *zap.Logger) (datasource.SchemaInspector, error) {
			return NewInspector(ctx, desc, logger)
		},
	})
}
