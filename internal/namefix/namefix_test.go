package namefix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelprobe/internal/namefix"
)

func TestClean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		want    string
		cleaned bool
	}{
		{"dose", "dose", false},             // already bare
		{"log(dose)", "dose", true},         // function wrapper
		{"sqrt(age)", "age", true},          // function wrapper
		{"poly(age, 2)", "age", true},       // extra constant argument
		{"age + 1", "age", true},            // arithmetic
		{"scores[1]", "scores", true},       // indexing
		{"log(a / b)", "log(a / b)", false}, // two variables, ambiguous
		{"a:b", "a:b", false},               // foreign syntax, kept verbatim
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, cleaned := namefix.Clean(tc.name)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.cleaned, cleaned)
		})
	}
}

func TestVars(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"dose"}, namefix.Vars("log(dose)"))
	require.Equal(t, []string{"a", "b"}, namefix.Vars("a * b"))
	require.Equal(t, []string{"x"}, namefix.Vars("x + x"), "duplicates collapse")
	require.Nil(t, namefix.Vars("1"), "constants reference nothing")
	require.Equal(t, []string{"a:b"}, namefix.Vars("a:b"), "unparseable terms surface verbatim")
}
