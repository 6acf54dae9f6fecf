package registry

import (
	"context"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
)

// PartitionFunc is a registered Go hook that replaces the generic prefix
// partitioner for classes whose coefficient layout a manifest cannot express.
// It must return an exhaustive, disjoint assignment of every coefficient name.
type PartitionFunc func(ctx context.Context, h *model.Handle, d *config.ClassDescriptor) (map[role.Role][]string, error)

// FrameFunc is a registered Go hook that replaces the generic stored-frame
// extraction for one model part.
type FrameFunc func(ctx context.Context, h *model.Handle, part role.Role) (*frame.Frame, error)

// Module is the interface every class module must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered hooks and the class descriptors for a single
// application instance.
type Registry struct {
	ClassRegistry     map[string]*config.ClassDescriptor
	PartitionRegistry map[string]PartitionFunc
	FrameRegistry     map[string]FrameFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		ClassRegistry:     make(map[string]*config.ClassDescriptor),
		PartitionRegistry: make(map[string]PartitionFunc),
		FrameRegistry:     make(map[string]FrameFunc),
	}
}

// Class returns the descriptor registered for a model class.
func (r *Registry) Class(class string) (*config.ClassDescriptor, bool) {
	d, ok := r.ClassRegistry[class]
	return d, ok
}

// PopulateDescriptorsFromModel copies the loaded class descriptors from the
// config model into the registry for easy access during resolution.
func (r *Registry) PopulateDescriptorsFromModel(cfg *config.Model) {
	for class, descriptor := range cfg.Classes {
		r.ClassRegistry[class] = descriptor
	}
}
