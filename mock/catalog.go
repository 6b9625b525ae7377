// Package mock provides hand-written mocks for docdrift interfaces.
package mock

import (
	"context"

	"github.com/murogrande/docdrift"
)

var _ docdrift.SymbolCatalog = (*SymbolCatalog)(nil)

// SymbolCatalog is a mock implementation of docdrift.SymbolCatalog.
type SymbolCatalog struct {
	DiscoverFn func(ctx context.Context, roots []string, exclude []string) (*docdrift.DiscoveryResult, error)
}

func (c *SymbolCatalog) Discover(ctx context.Context, roots []string, exclude []string) (*docdrift.DiscoveryResult, error) {
	return c.DiscoverFn(ctx, roots, exclude)
}

var _ docdrift.ModuleIndex = (*ModuleIndex)(nil)

// ModuleIndex is a mock implementation of docdrift.ModuleIndex.
type ModuleIndex struct {
	HasModuleFn   func(path string) bool
	HasAttrPathFn func(module, attr string) bool
}

func (m *ModuleIndex) HasModule(path string) bool {
	return m.HasModuleFn(path)
}

func (m *ModuleIndex) HasAttrPath(module, attr string) bool {
	return m.HasAttrPathFn(module, attr)
}
