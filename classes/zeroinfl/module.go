// Package zeroinfl supports two-part zero-inflated count models. The
// count/zero prefix convention in the coefficient names carries the whole
// partition, so the class needs no hooks.
package zeroinfl

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op; the partition lives in the manifest's prefix rules.
func (m *Module) Register(r *registry.Registry) {}
