package datasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/entigen/entigen/pkg/apperrors"
)

// AdapterInfo describes a registered adapter.
type AdapterInfo struct {
	// Type is the connection descriptor scheme, e.g. "postgres", "sqlserver".
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// InspectorFactory builds a SchemaInspector from a parsed connection
// descriptor. The returned inspector owns its connection.
type InspectorFactory func(ctx context.Context, desc *Descriptor, logger *zap.Logger) (SchemaInspector, error)

// Registration bundles adapter info with its factory.
type Registration struct {
	Info    AdapterInfo
	Factory InspectorFactory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register is called by each adapter's init function. Thread-safe for
// concurrent init calls.
func Register(reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// RegisteredAdapters returns info for all registered adapters, sorted by
// type for stable output.
func RegisteredAdapters() []AdapterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]AdapterInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// Open parses the connection descriptor and builds an inspector with the
// adapter registered for its scheme. An unknown scheme surfaces as
// apperrors.ErrUnsupportedDatasource naming the registered alternatives.
func Open(ctx context.Context, descriptor string, logger *zap.Logger) (SchemaInspector, error) {
	desc, err := ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	reg, ok := registry[desc.Driver]
	registryMu.RUnlock()
	if !ok {
		var types []string
		for _, info := range RegisteredAdapters() {
			types = append(types, info.Type)
		}
		return nil, fmt.Errorf("%w: %q (registered: %s)",
			apperrors.ErrUnsupportedDatasource, desc.Driver, strings.Join(types, ", "))
	}

	return reg.Factory(ctx, desc, logger)
}
