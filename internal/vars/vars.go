// Package vars is the variable-name oracle: given a model handle it reports
// which source variables play which structural role, and computes the name
// set a data resolution needs for a requested effects/component subset.
package vars

import (
	"fmt"

	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
)

// Effects selects which side of a mixed model a caller is interested in.
type Effects string

const (
	EffectsAll    Effects = "all"
	EffectsFixed  Effects = "fixed"
	EffectsRandom Effects = "random"
)

// ParseEffects validates an effects selector. Unknown values fail fast at
// the call boundary.
func ParseEffects(s string) (Effects, error) {
	switch Effects(s) {
	case "", EffectsAll:
		return EffectsAll, nil
	case EffectsFixed:
		return EffectsFixed, nil
	case EffectsRandom:
		return EffectsRandom, nil
	}
	return "", fmt.Errorf("unknown effects selector %q", s)
}

// Set holds the extracted variable names per structural role, each in
// first-appearance order.
type Set struct {
	Response     []string
	Conditional  []string
	ZeroInflated []string
	Groups       []string
	RandomSlopes []string
}

// Extract derives the variable set from the handle's recorded formula. An
// explicit GroupNames list on the handle overrides the formula's grouping
// terms, for classes that record clusters outside the formula.
func Extract(h *model.Handle) *Set {
	s := &Set{}
	if f := h.Formula(); f != nil {
		s.Response = f.ResponseVars()
		s.Conditional = f.FixedVars()
		s.ZeroInflated = f.ZeroVars()
		s.Groups = f.GroupVars()
		s.RandomSlopes = f.RandomSlopeVars()
	}
	if len(h.GroupNames) > 0 {
		s.Groups = h.GroupNames
	}
	return s
}

// Names computes the ordered, de-duplicated variable names required for a
// resolution restricted to the given effects and component. componentAll
// selects every part; otherwise component picks one.
func (s *Set) Names(effects Effects, component role.Role, componentAll bool) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(names []string) {
		for _, n := range names {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	if effects == EffectsRandom {
		add(s.Groups)
		add(s.RandomSlopes)
		return out
	}

	add(s.Response)
	switch {
	case componentAll:
		add(s.Conditional)
		add(s.ZeroInflated)
	case component == role.Conditional:
		add(s.Conditional)
	case component == role.ZeroInflated:
		add(s.ZeroInflated)
	case component == role.Random || component == role.Cluster:
		// grouping-only request; response stays so rows remain alignable
	}

	if effects == EffectsAll || component == role.Random || component == role.Cluster {
		add(s.Groups)
		add(s.RandomSlopes)
	}
	return out
}
