package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainFileBody = `
responders:
  - name: view
    target: controller
  - name: controller
    target: route
    actions:
      - name: save
        behavior: noop
        bubble: true
  - name: route
    actions:
      - name: save
        behavior: noop
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return out.String(), err
}

func writeChain(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainFileBody), 0o600))
	return path
}

func TestParseArgs(t *testing.T) {
	got := parseArgs([]string{"doc", "3", "true", "{a: 1}", "[x, y]", "", "'quoted'", "null", "~", "{a: [}"})
	assert.Equal(t, []any{
		"doc",
		3,
		true,
		map[string]any{"a": 1},
		[]any{"x", "y"},
		"",
		"quoted",
		nil,
		nil,
		"{a: [}",
	}, got)
	assert.Nil(t, parseArgs(nil))
}

func TestRun_LocalChain(t *testing.T) {
	out, err := execute(t, "run", "-f", writeChain(t), "view", "save", "doc", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "responder: controller")
	assert.Contains(t, out, "bubbled: true")
	assert.Contains(t, out, "responder: route")
}

func TestRun_Unhandled(t *testing.T) {
	_, err := execute(t, "run", "-f", writeChain(t), "view", "missingAction")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "had no action handler for: missingAction")
}

func TestChainShow(t *testing.T) {
	out, err := execute(t, "chain", "show", "-f", writeChain(t))
	require.NoError(t, err)
	assert.Contains(t, out, "name: view")
	assert.Contains(t, out, "target: controller")
}
