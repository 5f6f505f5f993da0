package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/hdrstrip/pkg/config"
	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixable = "fetch(url, {\n  method: 'POST',\n  headers: {\n    'Content-Type': 'application/json',\n    'x-user-id': user.id,\n  },\n});\n"
	fixed   = "fetch(url, {\n  method: 'POST',\n  headers: {\n    'Content-Type': 'application/json'\n  },\n});\n"
	clean   = "fetch(url, { method: 'GET' });\n"
)

// execute runs the root command in process and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.ts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readSource(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootNoArgsPrintsUsage(t *testing.T) {
	out, err := execute(t)

	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
	assert.Equal(t, "Usage: hdrstrip <file>\n", out)
}

func TestRootNoArgsIgnoresFormat(t *testing.T) {
	for _, format := range []string{"json", "bogus"} {
		t.Run(format, func(t *testing.T) {
			out, err := execute(t, "--format", format)

			require.Error(t, err)
			assert.True(t, IsReported(err))
			assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
			assert.Equal(t, "Usage: hdrstrip <file>\n", out)
		})
	}
}

func TestRootMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ts")

	out, err := execute(t, path)

	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Equal(t, "✗ Error processing "+path+": stat "+path+": no such file or directory\n", out)
}

func TestRootUnchangedFile(t *testing.T) {
	path := writeSource(t, clean)
	before, err := os.Stat(path)
	require.NoError(t, err)

	out, err := execute(t, path)

	require.NoError(t, err)
	assert.Equal(t, "- No changes needed in "+path+"\n", out)
	assert.Equal(t, clean, readSource(t, path))

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestRootFixesFile(t *testing.T) {
	path := writeSource(t, fixable)

	out, err := execute(t, path)

	require.NoError(t, err)
	assert.Equal(t, "✓ Fixed "+path+"\n", out)
	assert.Equal(t, fixed, readSource(t, path))

	out, err = execute(t, path)
	require.NoError(t, err)
	assert.Equal(t, "- No changes needed in "+path+"\n", out)
}

func TestRootIgnoresExtraArgs(t *testing.T) {
	path := writeSource(t, fixable)
	other := writeSource(t, fixable)

	out, err := execute(t, path, other)

	require.NoError(t, err)
	assert.Equal(t, "✓ Fixed "+path+"\n", out)
	assert.Equal(t, fixable, readSource(t, other))
}

func TestRootDryRunWithDiff(t *testing.T) {
	path := writeSource(t, fixable)

	out, err := execute(t, "--dry-run", "--diff", path)

	require.NoError(t, err)
	assert.Contains(t, out, "~ Would fix "+path+"\n")
	assert.Contains(t, out, "-    'x-user-id': user.id,\n")
	assert.Equal(t, fixable, readSource(t, path))
}

func TestRootJSONFormat(t *testing.T) {
	path := writeSource(t, fixable)

	out, err := execute(t, "--format", "json", path)
	require.NoError(t, err)

	var line output.Line
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, path, line.File)
	assert.Equal(t, "fixed", line.Status)
	require.Len(t, line.Rules, 4)
	assert.Equal(t, 1, line.Rules[1].Matches)
}

func TestRootInvalidFormat(t *testing.T) {
	path := writeSource(t, fixable)

	out, err := execute(t, "--format", "xml", path)

	require.Error(t, err)
	assert.False(t, IsReported(err))
	assert.Empty(t, out)
	assert.Equal(t, fixable, readSource(t, path))
}

func TestRootCustomConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hdrstrip.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[target]\nheader = \"x-tenant\"\nobject = \"ctx\"\nfield = \"tenant\"\n"), 0644))
	path := writeSource(t, "fetch(url, {\n  headers: { 'x-tenant': ctx?.tenant },\n});\n")

	out, err := execute(t, "--config", cfgPath, path)

	require.NoError(t, err)
	assert.Equal(t, "✓ Fixed "+path+"\n", out)
	assert.Equal(t, "fetch(url, {\n  });\n", readSource(t, path))
}

func TestRootBadConfigIsReported(t *testing.T) {
	path := writeSource(t, fixable)

	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), path)

	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "✗ Error processing "+path+": ")
	assert.Equal(t, fixable, readSource(t, path))
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")

	require.NoError(t, err)
	assert.Contains(t, out, "## 1. remove-headers")
	assert.Contains(t, out, "## 4. reindent-content-type")
}

func TestGenConfigCommand(t *testing.T) {
	out, err := execute(t, "genconfig")

	require.NoError(t, err)
	assert.Contains(t, out, "[target]")
	assert.Contains(t, out, "x-user-id")
}

func TestGenConfigWrite(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "genconfig", "-w")
	require.NoError(t, err)
	assert.Contains(t, out, config.ProjectFile)

	_, err = os.Stat(filepath.Join(dir, config.ProjectFile))
	require.NoError(t, err)

	_, err = execute(t, "genconfig", "-w")
	assert.Error(t, err, "refuses to overwrite without --force")

	_, err = execute(t, "genconfig", "-w", "--force")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "hdrstrip version dev")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")

	require.NoError(t, err)
	assert.Contains(t, out, "hdrstrip")
}

func TestFormatBoldHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "Usage:", formatBold("Usage:"))
}
