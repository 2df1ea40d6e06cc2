package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainExitsWithoutToken(t *testing.T) {
	if os.Getenv("WORLDBOSS_RUN_MAIN") == "1" {
		main()
		return
	}

	exe, err := os.Executable()
	require.NoError(t, err)

	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DISCORD_TOKEN=") || strings.HasPrefix(kv, "BOT_TOKEN=") {
			continue
		}
		env = append(env, kv)
	}

	dir := t.TempDir()
	cmd := exec.Command(exe, "-test.run=^TestMainExitsWithoutToken$")
	cmd.Env = append(env, "WORLDBOSS_RUN_MAIN=1")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected a non-zero exit, got %v", err)
	assert.NotZero(t, exitErr.ExitCode())
	assert.Contains(t, string(out), "DISCORD_TOKEN")

	// nothing was created before the credential check
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
