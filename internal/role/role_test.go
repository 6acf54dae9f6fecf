package role_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelprobe/internal/role"
)

func TestParse(t *testing.T) {
	t.Parallel()

	r, isRole, err := role.Parse("zero_inflated")
	require.NoError(t, err)
	require.True(t, isRole)
	require.Equal(t, role.ZeroInflated, r)

	r, isRole, err = role.Parse("zi")
	require.NoError(t, err)
	require.True(t, isRole, "zi is an accepted alias")
	require.Equal(t, role.ZeroInflated, r)

	_, isRole, err = role.Parse("all")
	require.NoError(t, err)
	require.False(t, isRole)

	_, isRole, err = role.Parse("")
	require.NoError(t, err)
	require.False(t, isRole, "empty selector defaults to all")

	_, _, err = role.Parse("bogus")
	require.Error(t, err, "unknown selectors fail fast")
}

func TestKnown(t *testing.T) {
	t.Parallel()

	for _, r := range role.All {
		require.True(t, role.Known(r))
	}
	require.False(t, role.Known(role.Role("bogus")))
}
