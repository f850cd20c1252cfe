package datasource

import (
	"context"
	"errors"
	"sort"
	"testing"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/apperrors"
)

type stubInspector struct {
	SchemaInspector
}

func TestRegistry(t *testing.T) {
	var gotDesc *Descriptor
	Register(Registration{
		Info: AdapterInfo{Type: "postgres", DisplayName: "PostgreSQL test stub"},
		Factory: func(ctx context.Context, desc *Descriptor, logger *zap.Logger) (SchemaInspector, error) {
			gotDesc = desc
			return &stubInspector{}, nil
		},
	})

	inspector, err := Open(context.Background(), "postgres://alice:secret@db/crm", zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if inspector == nil {
		t.Fatal("Open() returned nil inspector")
	}
	if gotDesc == nil || gotDesc.Database != "crm" || gotDesc.User != "alice" {
		t.Errorf("factory received descriptor %+v", gotDesc)
	}
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "oracle://db/crm", zap.NewNop())
	if !errors.Is(err, apperrors.ErrUnsupportedDatasource) {
		t.Errorf("Open() error = %v, want ErrUnsupportedDatasource", err)
	}
}

func TestRegisteredAdapters(t *testing.T) {
	Register(Registration{
		Info: AdapterInfo{Type: "sqlserver", DisplayName: "SQL Server test stub"},
		Factory: func(ctx context.Context, desc *Descriptor, logger *zap.Logger) (SchemaInspector, error) {
			return &stubInspector{}, nil
		},
	})
	Register(Registration{
		Info: AdapterInfo{Type: "postgres", DisplayName: "PostgreSQL test stub"},
		Factory: func(ctx context.Context, desc *Descriptor, logger *zap.Logger) (SchemaInspector, error) {
			return &stubInspector{}, nil
		},
	})

	infos := RegisteredAdapters()
	types := make([]string, 0, len(infos))
	for _, info := range infos {
		types = append(types, info.Type)
	}

	if !sort.StringsAreSorted(types) {
		t.Errorf("RegisteredAdapters() types = %v, want sorted", types)
	}

	found := map[string]bool{}
	for _, typ := range types {
		found[typ] = true
	}
	if !found["postgres"] || !found["sqlserver"] {
		t.Errorf("RegisteredAdapters() = %v, missing registered types", types)
	}
}
