// Package registry provides the central "glue" for the class system.
//
// The Registry stores the mapping between model-class identifiers used in
// manifests (e.g., "zeroinfl") and their declarative descriptors, plus the
// mapping between hook names named in manifests and the compiled Go
// functions that implement them.
//
// During application startup the registry is populated and then validated to
// ensure the Go code and the public-facing manifests are perfectly in sync,
// preventing a wide class of runtime errors.
package registry
