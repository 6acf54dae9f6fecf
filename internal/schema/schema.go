package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Snapshot Structures ---

// Table represents a top-level `table` block: a named dataset visible to
// every model in the file, forming the broadest enclosing scope.
type Table struct {
	Name    string         `hcl:"name,label"`
	Columns hcl.Expression `hcl:"columns"`
}

// CallArgs represents the content of the `call` block within a model: the
// argument expressions of the original fitting call, kept unevaluated.
type CallArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// EnvironmentBlock represents the `environment` block within a model: the
// local variables visible at fit time, layered over the file's tables.
type EnvironmentBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// CoefficientGroup is one structural per-role coefficient container.
type CoefficientGroup struct {
	Role  string   `hcl:"role,label"`
	Names []string `hcl:"names"`
}

// Coefficients represents the `coefficients` block: the fitted parameter
// names, flat and/or grouped by role.
type Coefficients struct {
	Flat   []string            `hcl:"flat,optional"`
	Groups []*CoefficientGroup `hcl:"group,block"`
}

// StoredFrame represents a `frame` block: an observation frame the fitting
// front-end materialized for one model part.
type StoredFrame struct {
	Part    string         `hcl:"part,label"`
	Columns hcl.Expression `hcl:"columns"`
}

// Model represents a `model` block from a snapshot file: one fitted model.
type Model struct {
	Class        string            `hcl:"class,label"`
	Name         string            `hcl:"instance_name,label"`
	Function     string            `hcl:"function,optional"`
	Formula      string            `hcl:"formula,optional"`
	Call         *CallArgs         `hcl:"call,block"`
	Environment  *EnvironmentBlock `hcl:"environment,block"`
	Coefficients *Coefficients     `hcl:"coefficients,block"`
	Frames       []*StoredFrame    `hcl:"frame,block"`
	Groups       []string          `hcl:"groups,optional"`
}

// --- Class Manifest Schemas ---

// PartitionRule assigns coefficient names with a literal prefix to a role.
type PartitionRule struct {
	Role   string `hcl:"role"`
	Prefix string `hcl:"prefix"`
}

// Partition declares how a class's coefficient names split into roles.
type Partition struct {
	DefaultRole string           `hcl:"default_role,optional"`
	Structural  bool             `hcl:"structural,optional"`
	Rules       []*PartitionRule `hcl:"rule,block"`
}

// Data declares a class's data-recovery tactics and post-processing.
type Data struct {
	Tactics     []string `hcl:"tactics,optional"`
	DropMissing bool     `hcl:"drop_missing,optional"`
}

// Hooks maps a class's extension points to registered Go handler names.
type Hooks struct {
	Partition string `hcl:"partition,optional"`
	Frame     string `hcl:"frame,optional"`
}

// ClassDefinition represents the HCL manifest for one supported model class.
type ClassDefinition struct {
	Class       string     `hcl:"class,label"`
	Description string     `hcl:"description,optional"`
	Parts       []string   `hcl:"parts,optional"`
	Partition   *Partition `hcl:"partition,block"`
	Data        *Data      `hcl:"data,block"`
	Hooks       *Hooks     `hcl:"hooks,block"`
}

// FileConfig represents the top-level structure of any modelprobe HCL file.
// Class manifests and model snapshots share one grammar, so a file may carry
// either or both kinds of blocks.
type FileConfig struct {
	Tables  []*Table           `hcl:"table,block"`
	Models  []*Model           `hcl:"model,block"`
	Classes []*ClassDefinition `hcl:"class,block"`
	Body    hcl.Body           `hcl:",remain"`
}
