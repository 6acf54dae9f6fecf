package resolver_test

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modelprobe/classes/mixed"
	"github.com/vk/modelprobe/internal/config"
	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/registry"
	"github.com/vk/modelprobe/internal/resolver"
	"github.com/vk/modelprobe/internal/role"
)

func lmDescriptor() *config.ClassDescriptor {
	return &config.ClassDescriptor{
		Class:     "lm",
		Parts:     []role.Role{role.Conditional},
		Partition: &config.PartitionSpec{DefaultRole: role.Conditional},
		Data:      &config.DataSpec{Tactics: config.DefaultTactics, DropMissing: true},
	}
}

func numbers(vals ...float64) []cty.Value {
	out := make([]cty.Value, len(vals))
	for i, v := range vals {
		out[i] = cty.NumberFloatVal(v)
	}
	return out
}

func labels(vals ...string) []cty.Value {
	out := make([]cty.Value, len(vals))
	for i, v := range vals {
		out[i] = cty.StringVal(v)
	}
	return out
}

func mustFrame(t *testing.T, cols ...frame.Column) *frame.Frame {
	t.Helper()
	f := frame.New()
	for _, c := range cols {
		require.NoError(t, f.Add(c.Name, c.Values))
	}
	return f
}

func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return e
}

func mustFormula(t *testing.T, src string) *formula.Formula {
	t.Helper()
	f, err := formula.Parse(src)
	require.NoError(t, err)
	return f
}

// lmHandle records a call whose data argument names a table bound in the
// fitting environment, the shape the snapshot loader produces.
func lmHandle(t *testing.T, formulaSrc string, table *frame.Frame) *model.Handle {
	t.Helper()
	env := &hcl.EvalContext{Variables: map[string]cty.Value{"trial": table.ToCty()}}
	return &model.Handle{
		Class: "lm",
		Name:  "m1",
		Call: &model.Call{
			Function: "lm",
			Formula:  mustFormula(t, formulaSrc),
			Args:     map[string]hcl.Expression{"data": expr(t, "trial")},
		},
		Env: env,
	}
}

func TestFitData_CallRecovery(t *testing.T) {
	t.Parallel()

	table := mustFrame(t,
		frame.Column{Name: "y", Values: numbers(1, 2, 3)},
		frame.Column{Name: "age", Values: numbers(30, 40, 50)},
		frame.Column{Name: "dose", Values: numbers(0.1, 0.2, 0.3)},
		frame.Column{Name: "unused", Values: numbers(9, 9, 9)},
	)
	r, _ := newResolver(t, lmDescriptor())
	h := lmHandle(t, "y ~ age + dose", table)

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Only the variables the formula references survive, in formula order.
	require.Equal(t, []string{"y", "age", "dose"}, got.Names())
	require.Equal(t, 3, got.NumRows())
	col, ok := got.Column("dose")
	require.True(t, ok)
	require.True(t, col.Values[2].RawEquals(cty.NumberFloatVal(0.3)))
}

func TestFitData_Idempotent(t *testing.T) {
	t.Parallel()

	table := mustFrame(t,
		frame.Column{Name: "y", Values: numbers(1, 2)},
		frame.Column{Name: "x", Values: numbers(3, 4)},
	)
	r, _ := newResolver(t, lmDescriptor())
	h := lmHandle(t, "y ~ x", table)

	first, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	second, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)

	require.Equal(t, first.Names(), second.Names())
	require.Equal(t, first.NumRows(), second.NumRows())
}

func TestFitData_DropMissingRows(t *testing.T) {
	t.Parallel()

	table := mustFrame(t,
		frame.Column{Name: "y", Values: []cty.Value{cty.NumberIntVal(1), cty.NullVal(cty.Number), cty.NumberIntVal(3)}},
		frame.Column{Name: "x", Values: numbers(10, 20, 30)},
	)
	r, _ := newResolver(t, lmDescriptor())
	h := lmHandle(t, "y ~ x", table)

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows(), "rows with missing cells are dropped")
}

func TestFitData_StoredFramesWithMixedHook(t *testing.T) {
	t.Parallel()

	d := &config.ClassDescriptor{
		Class:     "mixed",
		Parts:     []role.Role{role.Conditional, role.Random},
		Partition: &config.PartitionSpec{DefaultRole: role.Conditional, Structural: true},
		Data:      &config.DataSpec{Tactics: []config.Tactic{config.TacticStored}},
		Hooks:     &config.Hooks{Frame: "FrameMixed"},
	}
	reg := registry.New()
	reg.ClassRegistry[d.Class] = d
	(&mixed.Module{}).Register(reg)
	require.NoError(t, reg.ValidateRegistry(context.Background()))
	r := resolver.New(reg)

	h := &model.Handle{
		Class: "mixed",
		Name:  "m2",
		Call:  &model.Call{Function: "lmer", Formula: mustFormula(t, "y ~ dose + (1 | subject)")},
		Frames: map[role.Role]*frame.Frame{
			role.Conditional: mustFrame(t,
				frame.Column{Name: "y", Values: numbers(1, 2)},
				frame.Column{Name: "dose", Values: numbers(5, 6)},
			),
			role.Random: mustFrame(t,
				frame.Column{Name: mixed.GroupColumn, Values: labels("a", "b")},
			),
		},
	}

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)

	// The internal grouping column comes back under the formula's group name.
	require.Equal(t, []string{"y", "dose", "subject"}, got.Names())
}

func TestFitData_RandomEffectsRestrictToGroupingParts(t *testing.T) {
	t.Parallel()

	d := &config.ClassDescriptor{
		Class:     "mixed",
		Parts:     []role.Role{role.Conditional, role.Random},
		Partition: &config.PartitionSpec{DefaultRole: role.Conditional, Structural: true},
		Data:      &config.DataSpec{Tactics: []config.Tactic{config.TacticStored}},
		Hooks:     &config.Hooks{Frame: "FrameMixed"},
	}
	reg := registry.New()
	reg.ClassRegistry[d.Class] = d
	(&mixed.Module{}).Register(reg)
	require.NoError(t, reg.ValidateRegistry(context.Background()))
	r := resolver.New(reg)

	h := &model.Handle{
		Class: "mixed",
		Call:  &model.Call{Function: "lmer", Formula: mustFormula(t, "y ~ dose + (1 | subject)")},
		Frames: map[role.Role]*frame.Frame{
			role.Conditional: mustFrame(t,
				frame.Column{Name: "y", Values: numbers(1, 2)},
				frame.Column{Name: "dose", Values: numbers(5, 6)},
			),
			role.Random: mustFrame(t,
				frame.Column{Name: mixed.GroupColumn, Values: labels("a", "b")},
			),
		},
	}

	got, err := r.FitData(context.Background(), h, "random", "all", false)
	require.NoError(t, err)
	require.Equal(t, []string{"subject"}, got.Names())
}

func TestFitData_EnvironmentScanFallback(t *testing.T) {
	t.Parallel()

	global := &hcl.EvalContext{Variables: map[string]cty.Value{
		// Scalar bindings and non-covering tables must all be skipped.
		"n": cty.NumberIntVal(7),
		"other": mustFrame(t,
			frame.Column{Name: "z", Values: numbers(1)},
		).ToCty(),
		"survey": mustFrame(t,
			frame.Column{Name: "y", Values: numbers(1, 2)},
			frame.Column{Name: "x", Values: numbers(3, 4)},
			frame.Column{Name: "extra", Values: numbers(5, 6)},
		).ToCty(),
	}}
	env := global.NewChild()
	env.Variables = map[string]cty.Value{"weight": cty.NumberIntVal(1)}

	r, _ := newResolver(t, lmDescriptor())
	h := &model.Handle{
		Class: "lm",
		Name:  "m3",
		// No data argument recorded, so only the scope scan can succeed.
		Call: &model.Call{Function: "lm", Formula: mustFormula(t, "y ~ x")},
		Env:  env,
	}

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	require.Equal(t, []string{"y", "x"}, got.Names())
	require.Equal(t, 2, got.NumRows())
}

func TestFitData_DetransformsColumnNames(t *testing.T) {
	t.Parallel()

	d := &config.ClassDescriptor{
		Class:     "lm",
		Parts:     []role.Role{role.Conditional},
		Partition: &config.PartitionSpec{DefaultRole: role.Conditional},
		Data:      &config.DataSpec{Tactics: []config.Tactic{config.TacticStored}},
	}
	r, _ := newResolver(t, d)

	h := &model.Handle{
		Class: "lm",
		Frames: map[role.Role]*frame.Frame{
			role.Conditional: mustFrame(t,
				frame.Column{Name: "y", Values: numbers(1, 2)},
				frame.Column{Name: "log(dose)", Values: numbers(0.1, 0.2)},
			),
		},
	}

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	require.Equal(t, []string{"y", "dose"}, got.Names())
}

func TestFitData_DetransformSkippedOnCollision(t *testing.T) {
	t.Parallel()

	d := &config.ClassDescriptor{
		Class:     "lm",
		Parts:     []role.Role{role.Conditional},
		Partition: &config.PartitionSpec{DefaultRole: role.Conditional},
		Data:      &config.DataSpec{Tactics: []config.Tactic{config.TacticStored}},
	}
	r, _ := newResolver(t, d)

	h := &model.Handle{
		Class: "lm",
		Frames: map[role.Role]*frame.Frame{
			role.Conditional: mustFrame(t,
				frame.Column{Name: "dose", Values: numbers(1, 2)},
				frame.Column{Name: "log(dose)", Values: numbers(0.1, 0.2)},
			),
		},
	}

	got, err := r.FitData(context.Background(), h, "all", "all", false)
	require.NoError(t, err)
	require.Equal(t, []string{"dose", "log(dose)"}, got.Names(),
		"a rename that would shadow an existing column is skipped")
}

func TestFitData_UnrecoverableReturnsNil(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(t, lmDescriptor())
	h := &model.Handle{
		Class: "lm",
		Name:  "ghost",
		Call:  &model.Call{Function: "lm", Formula: mustFormula(t, "y ~ x")},
	}

	got, err := r.FitData(context.Background(), h, "all", "all", true)
	require.NoError(t, err, "exhausted tactics are not an error")
	require.Nil(t, got)
}

func TestFitData_InvalidSelectorsFailFast(t *testing.T) {
	t.Parallel()

	r, _ := newResolver(t, lmDescriptor())
	h := lmHandle(t, "y ~ x", mustFrame(t,
		frame.Column{Name: "y", Values: numbers(1)},
		frame.Column{Name: "x", Values: numbers(2)},
	))

	_, err := r.FitData(context.Background(), h, "bogus", "all", false)
	require.Error(t, err)

	_, err = r.FitData(context.Background(), h, "all", "bogus", false)
	require.Error(t, err)
}
