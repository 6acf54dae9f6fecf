package config

import (
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
)

// Tactic names one data-recovery approach a class descriptor can enable.
type Tactic string

const (
	// TacticStored uses an already-materialized frame on the handle.
	TacticStored Tactic = "stored"
	// TacticCall re-evaluates the recorded call's data argument in the
	// recorded fitting environment.
	TacticCall Tactic = "call"
	// TacticEnvironment scans the enclosing scopes for a table whose columns
	// cover the required variables. Last resort, flagged as a guess.
	TacticEnvironment Tactic = "environment"
)

// KnownTactic reports whether t is one of the declared tactics.
func KnownTactic(t Tactic) bool {
	switch t {
	case TacticStored, TacticCall, TacticEnvironment:
		return true
	}
	return false
}

// DefaultTactics is the tactic order used when a class manifest does not
// spell one out.
var DefaultTactics = []Tactic{TacticStored, TacticCall, TacticEnvironment}

// PrefixRule assigns coefficient names carrying a literal prefix to a role.
type PrefixRule struct {
	Role   role.Role
	Prefix string
}

// PartitionSpec declares how a class's flat coefficient list is split into
// role groups. Rules are applied in order; names no rule claims fall to
// DefaultRole; structural groups stored on the handle win over both when
// Structural is set.
type PartitionSpec struct {
	Rules       []*PrefixRule
	DefaultRole role.Role
	Structural  bool
}

// DataSpec declares the data-recovery behavior for a class.
type DataSpec struct {
	Tactics     []Tactic
	DropMissing bool
}

// Hooks names optional registered Go handlers that replace the generic
// behavior for classes whose internals a declarative descriptor cannot
// express.
type Hooks struct {
	// Partition is the name of a registered partition hook.
	Partition string
	// Frame is the name of a registered stored-frame extraction hook.
	Frame string
}

// ClassDescriptor is the declarative per-model-class strategy: which parts
// the class has, how parameters partition into roles, and which data tactics
// apply. One descriptor replaces what would otherwise be a bespoke resolver
// branch per class.
type ClassDescriptor struct {
	Class       string
	Description string
	Parts       []role.Role
	Partition   *PartitionSpec
	Data        *DataSpec
	Hooks       *Hooks
}

// HasPart reports whether the class declares the given part.
func (d *ClassDescriptor) HasPart(r role.Role) bool {
	for _, p := range d.Parts {
		if p == r {
			return true
		}
	}
	return false
}

// Model is the unified, format-agnostic result of loading configuration:
// all class descriptors plus every model handle found in snapshot files.
type Model struct {
	Classes map[string]*ClassDescriptor
	Handles []*model.Handle
}
