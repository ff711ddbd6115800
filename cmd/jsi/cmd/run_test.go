package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores the package-level flag vars to their zero values so
// tests don't leak state into each other.
func resetFlags() {
	flagEval = ""
	flagDumpAST = false
	flagTrace = false
	flagConfig = ""
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	return c, &out
}

func TestRunRunCmdEvalFlag(t *testing.T) {
	resetFlags()
	defer resetFlags()
	flagEval = "1 + 2;"

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	require.NoError(t, err)
}

func TestRunRunCmdReadsFile(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "script.jsi")
	require.NoError(t, os.WriteFile(path, []byte("console.log('hi');"), 0o644))

	c, out := newTestCmd()
	err := runRunCmd(c, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestRunRunCmdDumpAST(t *testing.T) {
	resetFlags()
	defer resetFlags()
	flagEval = "let x = 1;"
	flagDumpAST = true

	c, out := newTestCmd()
	err := runRunCmd(c, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "let x = 1;")
}

func TestRunRunCmdSyntaxErrorReturnsErr(t *testing.T) {
	resetFlags()
	defer resetFlags()
	flagEval = "let = ;"

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	assert.Error(t, err)
}

func TestRunRunCmdRuntimeErrorReturnsErr(t *testing.T) {
	resetFlags()
	defer resetFlags()
	flagEval = "neverDeclared;"

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	assert.Error(t, err)
}

func TestRunRunCmdNoScriptErrors(t *testing.T) {
	resetFlags()
	defer resetFlags()

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	assert.Error(t, err)
}

func TestRunRunCmdLoadsConfig(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "jsi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gc:\n  thresholdBytes: 4096\n  growthFactor: 2\nrandomSeed: 7\n"), 0o644))

	flagEval = "1;"
	flagConfig = path

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	require.NoError(t, err)
}

func TestRunRunCmdMissingConfigErrors(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagEval = "1;"
	flagConfig = "/nonexistent/jsi.yaml"

	c, _ := newTestCmd()
	err := runRunCmd(c, nil)
	assert.Error(t, err)
}

func TestReadSourcePrefersEval(t *testing.T) {
	resetFlags()
	defer resetFlags()
	flagEval = "42;"

	src, err := readSource([]string{"ignored.jsi"})
	require.NoError(t, err)
	assert.Equal(t, "42;", src)
}

func TestReadSourceMissingArgErrors(t *testing.T) {
	resetFlags()
	defer resetFlags()

	_, err := readSource(nil)
	assert.Error(t, err)
}
