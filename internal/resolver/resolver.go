// Package resolver implements the two public operations of modelprobe:
// classifying a model's parameter names by structural role, and
// reconstructing, best-effort, the data the model was fitted on.
//
// Both operations are pure request/response calls over a read-only handle:
// no caching, no shared state, and only selector-validation failures ever
// propagate to the caller. Every data-recovery failure is absorbed locally
// and answered with a fallback or a nil result.
package resolver

import (
	"fmt"

	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/registry"
)

// Resolver dispatches resolution requests through the class registry.
type Resolver struct {
	registry *registry.Registry
}

// New creates a Resolver backed by the given registry. The registry is
// expected to be validated already.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// descriptor looks up the strategy descriptor for a handle's class. An
// unregistered class is a caller error, not a recoverable data failure.
func (r *Resolver) descriptor(h *model.Handle) (*config.ClassDescriptor, error) {
	d, ok := r.registry.Class(h.Class)
	if !ok {
		return nil, fmt.Errorf("unsupported model class %q", h.Class)
	}
	return d, nil
}
