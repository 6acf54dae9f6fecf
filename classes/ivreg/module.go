// Package ivreg supports instrumental-variable regression. The structural
// coefficient groups on the handle carry the partition, so the class needs
// no hooks.
package ivreg

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op.
func (m *Module) Register(r *registry.Registry) {}
