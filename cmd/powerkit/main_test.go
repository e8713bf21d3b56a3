package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josephschmitt/tmux-powerkit-sub000/internal/widgets"
)

func TestMain(m *testing.M) {
	if err := widgets.RegisterBuiltins(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// writeTestConfig returns a config path whose cache dir is isolated per test.
func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "cache_dir: " + filepath.Join(dir, "cache") + "\n" + body
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
