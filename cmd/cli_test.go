package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "delivery-tracking dev (none)\n", out.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestServeCmd_FailsOnInvalidConfig(t *testing.T) {
	clearConfigEnv(t)
	root := newRootCmd()
	root.SetArgs([]string{"serve", "--config-dir", t.TempDir()})

	require.ErrorContains(t, root.Execute(), "missing required configuration")
}
