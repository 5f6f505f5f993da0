package output_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/output"
	"github.com/arthur-debert/hdrstrip/pkg/rewriter"
	"github.com/arthur-debert/hdrstrip/pkg/stripper"
	"github.com/arthur-debert/hdrstrip/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultText(t *testing.T) {
	tests := []struct {
		name   string
		status rewriter.Status
		want   string
	}{
		{"fixed", rewriter.StatusFixed, "✓ Fixed src/api.ts\n"},
		{"unchanged", rewriter.StatusUnchanged, "- No changes needed in src/api.ts\n"},
		{"would fix", rewriter.StatusWouldFix, "~ Would fix src/api.ts\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := output.NewRenderer(&buf, ui.FormatText)

			require.NoError(t, r.Result(&rewriter.Result{Path: "src/api.ts", Status: tt.status}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestResultWithDiff(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatText)

	diff := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n"
	require.NoError(t, r.Result(&rewriter.Result{Path: "x", Status: rewriter.StatusWouldFix, Diff: diff}))

	assert.Equal(t, "~ Would fix x\n"+diff, buf.String())
}

func TestErrorText(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatAuto)

	cause := &fs.PathError{Op: "stat", Path: "missing.ts", Err: fs.ErrNotExist}
	err := errors.Wrap(cause, errors.ErrFileNotFound, "failed to read missing.ts")

	require.NoError(t, r.Error("missing.ts", err))
	assert.Equal(t, "✗ Error processing missing.ts: stat missing.ts: file does not exist\n", buf.String())
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatJSON)

	require.NoError(t, r.Usage("hdrstrip"))
	assert.Equal(t, "Usage: hdrstrip <file>\n", buf.String())
}

func TestResultJSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatJSON)

	res := &rewriter.Result{
		Path:   "src/api.ts",
		Status: rewriter.StatusFixed,
		Report: stripper.Report{Rules: []stripper.RuleResult{{Name: stripper.RuleRemoveHeaders, Matches: 2}}},
	}
	require.NoError(t, r.Result(res))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "one line")

	var line output.Line
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "src/api.ts", line.File)
	assert.Equal(t, "fixed", line.Status)
	assert.Equal(t, "Fixed src/api.ts", line.Message)
	require.Len(t, line.Rules, 1)
	assert.Equal(t, 2, line.Rules[0].Matches)
}

func TestErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatJSON)

	require.NoError(t, r.Error("a.ts", errors.New(errors.ErrDecode, "'a.ts' is not valid UTF-8 text")))

	var line output.Line
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line.Status)
	assert.Equal(t, "Error processing a.ts: 'a.ts' is not valid UTF-8 text", line.Message)
}

func TestTerminalKeepsMessage(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, ui.FormatTerminal)
	assert.Equal(t, ui.FormatTerminal, r.Format())

	require.NoError(t, r.Result(&rewriter.Result{Path: "a.ts", Status: rewriter.StatusFixed, Diff: "-x\n+y\n"}))

	assert.Contains(t, buf.String(), output.SymbolFixed)
	assert.Contains(t, buf.String(), " Fixed a.ts\n")
	assert.Contains(t, buf.String(), "-x")
	assert.Contains(t, buf.String(), "+y")
}
