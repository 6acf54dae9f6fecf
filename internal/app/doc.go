// Package app wires the application together: it builds the isolated logger,
// loads class manifests and model snapshots through a config.Loader,
// registers the compiled-in class modules, validates the registry, and runs
// the requested resolution operation.
package app
