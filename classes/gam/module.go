// Package gam supports generalized additive models; smooth-term coefficients
// are recognized by their 's(' name wrapper.
package gam

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op; the smooth-term prefix rule lives in the manifest.
func (m *Module) Register(r *registry.Registry) {}
