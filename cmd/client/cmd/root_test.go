package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ClosesAppOnCommandError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:1")

	rootCmd.SetArgs([]string{"password", "get", "not-a-number"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "некорректный ID")
	assert.Nil(t, app)
}
