package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh command tree with the given arguments and
// returns its combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// useMemFs swaps AppFs for an in-memory filesystem for the duration of a test.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	restore := SetFs(fs)
	t.Cleanup(restore)
	return fs
}

// freezeTime pins the default output filename timestamp.
func freezeTime(t *testing.T, unix int64) {
	t.Helper()
	original := nowFunc
	nowFunc = func() time.Time { return time.Unix(unix, 0) }
	t.Cleanup(func() { nowFunc = original })
}

func TestSetFsRestores(t *testing.T) {
	original := AppFs
	mem := afero.NewMemMapFs()
	restore := SetFs(mem)
	assert.Equal(t, mem, AppFs)
	restore()
	assert.Equal(t, original, AppFs)
}

func TestRootCommandHelp(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "convert")
	assert.Contains(t, out, "detect")
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "bogus")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	useMemFs(t)
	_, err := executeCommand(t, "detect", "iVBORw0KGgo=", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
