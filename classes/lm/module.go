// Package lm supports ordinary linear models. The class is fully described
// by its manifest; no Go hooks are needed.
package lm

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op: lm proves that a class can live entirely in its
// declarative manifest.
func (m *Module) Register(r *registry.Registry) {}
