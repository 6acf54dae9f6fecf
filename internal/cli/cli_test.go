package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelprobe/internal/app"
	"github.com/vk/modelprobe/internal/cli"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := cli.Parse([]string{"snapshot.hcl"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	require.Equal(t, "snapshot.hcl", cfg.SnapshotPath)
	require.Equal(t, "classes", cfg.ClassesPath)
	require.Equal(t, app.OpData, cfg.Op)
	require.Equal(t, "all", cfg.Component)
	require.Equal(t, "all", cfg.Effects)
	require.False(t, cfg.Flatten)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := cli.Parse([]string{
		"-s", "snap.hcl",
		"-classes-path", "manifests",
		"-op", "parameters",
		"-model", "m1",
		"-component", "zi",
		"-effects", "fixed",
		"-flatten",
		"-verbose",
		"-log-format", "text",
		"-log-level", "debug",
	}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	require.Equal(t, "snap.hcl", cfg.SnapshotPath)
	require.Equal(t, "manifests", cfg.ClassesPath)
	require.Equal(t, app.OpParameters, cfg.Op)
	require.Equal(t, "m1", cfg.ModelName)
	require.Equal(t, "zi", cfg.Component)
	require.Equal(t, "fixed", cfg.Effects)
	require.True(t, cfg.Flatten)
	require.True(t, cfg.Verbose)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := cli.Parse([]string{}, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidValues(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"bad op":         {"-op", "compile", "snap.hcl"},
		"bad log format": {"-log-format", "xml", "snap.hcl"},
		"bad log level":  {"-log-level", "loud", "snap.hcl"},
	}
	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}
			_, _, err := cli.Parse(args, out)
			require.Error(t, err)
			exitErr, ok := err.(*cli.ExitError)
			require.True(t, ok, "expected an ExitError")
			require.Equal(t, 2, exitErr.Code)
		})
	}
}
