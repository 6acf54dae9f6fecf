// Package config defines the format-agnostic configuration model: the
// declarative class descriptors that drive resolution, and the model handles
// loaded from snapshot files. Nothing in here knows about HCL; the
// translation from concrete syntax lives in internal/hcl.
package config
