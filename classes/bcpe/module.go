// Package bcpe supports buy-till-you-die purchase models with an
// infrequent-purchase sub-model.
package bcpe

import (
	"github.com/vk/modelprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register is a no-op; the 'ip_' prefix rule lives in the manifest.
func (m *Module) Register(r *registry.Registry) {}
