package formula_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelprobe/internal/formula"
)

func TestParse_SimpleLinear(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("y ~ age + dose")
	require.NoError(t, err)

	require.Equal(t, "y", f.ResponseTerm)
	require.Equal(t, []string{"age", "dose"}, f.FixedTerms)
	require.Empty(t, f.ZeroTerms)
	require.Empty(t, f.RandomTerms)
}

func TestParse_TransformedTerms(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("log(y) ~ log(age) + poly(dose, 2)")
	require.NoError(t, err)

	require.Equal(t, []string{"y"}, f.ResponseVars())
	require.Equal(t, []string{"age", "dose"}, f.FixedVars())
}

func TestParse_ZeroInflationPart(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("count ~ age + dose | camper")
	require.NoError(t, err)

	require.Equal(t, []string{"age", "dose"}, f.FixedTerms)
	require.Equal(t, []string{"camper"}, f.ZeroTerms)
}

func TestParse_RandomTerms(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("y ~ dose + (1 | subject) + (dose | clinic)")
	require.NoError(t, err)

	require.Equal(t, []string{"dose"}, f.FixedTerms)
	require.Len(t, f.RandomTerms, 2)
	require.Equal(t, "subject", f.RandomTerms[0].GroupTerm)
	require.Empty(t, f.RandomTerms[0].SlopeTerms, "a 1 slope is a pure intercept")
	require.Equal(t, []string{"dose"}, f.RandomTerms[1].SlopeTerms)

	require.Equal(t, []string{"subject", "clinic"}, f.GroupVars())
	require.Equal(t, []string{"dose"}, f.RandomSlopeVars())
}

func TestParse_InterceptMarkersAreDropped(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("y ~ 1 + dose")
	require.NoError(t, err)
	require.Equal(t, []string{"dose"}, f.FixedTerms)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no tilde":      "y + x",
		"empty rhs":     "y ~ ",
		"unbalanced":    "y ~ log(x",
		"two bars":      "y ~ a | b | c",
		"group missing": "y ~ (1 | )",
	}
	for name, src := range cases {
		src := src
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := formula.Parse(src)
			require.Error(t, err)
		})
	}
}

func TestVars_DuplicatesCollapseAcrossTerms(t *testing.T) {
	t.Parallel()

	f, err := formula.Parse("y ~ dose + log(dose) + age")
	require.NoError(t, err)
	require.Equal(t, []string{"dose", "age"}, f.FixedVars())
}
