package vars_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/model"
	"github.com/vk/modelprobe/internal/role"
	"github.com/vk/modelprobe/internal/vars"
)

func handleWithFormula(t *testing.T, src string) *model.Handle {
	t.Helper()
	f, err := formula.Parse(src)
	require.NoError(t, err)
	return &model.Handle{
		Class: "test",
		Call:  &model.Call{Function: "test", Formula: f},
	}
}

func TestParseEffects(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"", "all", "fixed", "random"} {
		_, err := vars.ParseEffects(valid)
		require.NoError(t, err, valid)
	}
	_, err := vars.ParseEffects("bogus")
	require.Error(t, err)
}

func TestNames_AllEffectsAllComponents(t *testing.T) {
	t.Parallel()

	h := handleWithFormula(t, "count ~ age + dose + (1 | subject) | camper")
	set := vars.Extract(h)

	got := set.Names(vars.EffectsAll, "", true)
	require.Equal(t, []string{"count", "age", "dose", "camper", "subject"}, got)
}

func TestNames_FixedEffectsExcludeGroups(t *testing.T) {
	t.Parallel()

	h := handleWithFormula(t, "y ~ dose + (1 | subject)")
	set := vars.Extract(h)

	got := set.Names(vars.EffectsFixed, "", true)
	require.Equal(t, []string{"y", "dose"}, got)
}

func TestNames_RandomEffectsAreGroupsAndSlopes(t *testing.T) {
	t.Parallel()

	h := handleWithFormula(t, "y ~ dose + (dose | clinic)")
	set := vars.Extract(h)

	got := set.Names(vars.EffectsRandom, "", true)
	require.Equal(t, []string{"clinic", "dose"}, got)
}

func TestNames_ComponentFilter(t *testing.T) {
	t.Parallel()

	h := handleWithFormula(t, "count ~ age + dose | camper")
	set := vars.Extract(h)

	require.Equal(t, []string{"count", "camper"},
		set.Names(vars.EffectsFixed, role.ZeroInflated, false))
	require.Equal(t, []string{"count", "age", "dose"},
		set.Names(vars.EffectsFixed, role.Conditional, false))
}

func TestExtract_GroupNamesOverrideFormula(t *testing.T) {
	t.Parallel()

	h := handleWithFormula(t, "y ~ x + (1 | subject)")
	h.GroupNames = []string{"site"}

	set := vars.Extract(h)
	require.Equal(t, []string{"site"}, set.Groups)
}
