// Package hcl implements the HCL-specific configuration loader: it parses
// class manifests and model snapshot files, builds the layered evaluation
// environments (file tables as the global scope, per-model environment blocks
// as children), and translates everything into the format-agnostic config
// model. All knowledge of concrete HCL syntax is confined here.
package hcl
