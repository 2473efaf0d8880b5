package main

// Tests in this package mutate package-level globals (getwd, isTerminal,
// promptConfirm, checkTools, checkProfile, checkLayers). Do not use
// t.Parallel(); every override is restored via t.Cleanup.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik-hxr/cms-backend/internal/templates"
)

func stubGetwd(t *testing.T, dir string) {
	t.Helper()
	orig := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = orig })
}

// setupRepo writes the default hxr.toml into a fresh repo and makes it the cwd.
func setupRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()
	data, err := templates.Read("hxr.toml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(repo, "hxr.toml"), data, 0o644))
	stubGetwd(t, repo)
	return repo
}

func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return interactive }
	t.Cleanup(func() { isTerminal = orig })
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"hxr"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}
