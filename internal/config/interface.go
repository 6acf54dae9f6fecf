package config

import "context"

// Loader is the interface for a format-specific configuration loader. The
// concrete implementation lives in internal/hcl; keeping the seam here lets
// tests substitute pre-built models without touching the filesystem.
type Loader interface {
	// Load reads class manifests and model snapshots from the given paths and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
