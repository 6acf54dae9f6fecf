package registry

import (
	"fmt"
	"log/slog"
)

// RegisterPartition registers a Go partition hook under a manifest-visible name.
func (r *Registry) RegisterPartition(name string, fn PartitionFunc) {
	if _, exists := r.PartitionRegistry[name]; exists {
		panic(fmt.Sprintf("partition hook with name '%s' already registered", name))
	}
	slog.Debug("Registering partition hook.", "name", name)
	r.PartitionRegistry[name] = fn
}

// RegisterFrame registers a Go stored-frame hook under a manifest-visible name.
func (r *Registry) RegisterFrame(name string, fn FrameFunc) {
	if _, exists := r.FrameRegistry[name]; exists {
		panic(fmt.Sprintf("frame hook with name '%s' already registered", name))
	}
	slog.Debug("Registering frame hook.", "name", name)
	r.FrameRegistry[name] = fn
}
