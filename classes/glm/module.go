// Package glm supports generalized linear models, including an explicit
// dispersion parameter split off by prefix.
package glm

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op; the manifest's prefix rule is the whole strategy.
func (m *Module) Register(r *registry.Registry) {}
