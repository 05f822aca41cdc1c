package main

import (
	"bytes"
	"path/filepath"
	"testing"
)

const testConfig = "testdata/config.yaml"

// executeCommand runs the root command with the test configuration and a
// private storage file prepended to args.
func executeCommand(t *testing.T, storagePath string, args ...string) (string, string, error) {
	t.Helper()

	if storagePath == "" {
		storagePath = filepath.Join(t.TempDir(), "storage.json")
	}
	full := append([]string{"--config", testConfig, "--storage", storagePath}, args...)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(full)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
