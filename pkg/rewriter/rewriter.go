// Package rewriter performs the read, strip, compare and write cycle for a
// single file.
//
// The file is read whole, passed through a stripper.Stripper and written
// back in full only when the content changed. Bytes are never converted:
// line endings and encoding are whatever the file already had.
package rewriter

import (
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/logging"
	"github.com/arthur-debert/hdrstrip/pkg/stripper"
	"github.com/arthur-debert/hdrstrip/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
)

// Status is the outcome of rewriting one file
type Status string

const (
	StatusFixed     Status = "fixed"
	StatusUnchanged Status = "unchanged"
	StatusWouldFix  Status = "would-fix"
)

// Options controls a Rewriter
type Options struct {
	// DryRun computes the result without writing the file
	DryRun bool
	// Diff fills Result.Diff with a unified diff of the change
	Diff bool
}

// Result describes what happened to one file
type Result struct {
	Path   string
	Status Status
	Report stripper.Report
	Diff   string
}

// Rewriter applies a Stripper to files on a filesystem
type Rewriter struct {
	fs       types.FS
	stripper *stripper.Stripper
	opts     Options
}

// New creates a Rewriter
func New(fsys types.FS, s *stripper.Stripper, opts Options) *Rewriter {
	return &Rewriter{fs: fsys, stripper: s, opts: opts}
}

// Rewrite processes the file at path. The file is overwritten only when the
// stripped content differs and DryRun is off.
func (r *Rewriter) Rewrite(path string) (*Result, error) {
	log := logging.GetLogger("rewriter")
	done := logging.LogOperationStart(log, "rewrite")
	defer done()

	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, classifyReadError(err, path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileAccess, "is a directory: '%s'", path).
			WithDetail("path", path)
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, classifyReadError(err, path)
	}
	if !utf8.Valid(data) {
		return nil, errors.Newf(errors.ErrDecode, "'%s' is not valid UTF-8 text", path).
			WithDetail("path", path)
	}

	original := string(data)
	report := r.stripper.ApplyWithReport(original)

	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Int("matches", report.Matches()).
		Msg("Rules applied")

	result := &Result{Path: path, Report: report, Status: StatusUnchanged}
	if !report.Changed() {
		return result, nil
	}

	if r.opts.Diff {
		diff, err := unifiedDiff(path, original, report.Output)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to compute diff")
		}
		result.Diff = diff
	}

	if r.opts.DryRun {
		result.Status = StatusWouldFix
		log.Info().Str("path", path).Msg("Dry run, file left untouched")
		return result, nil
	}

	if err := r.fs.WriteFile(path, []byte(report.Output), info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	result.Status = StatusFixed
	log.Info().Str("path", path).Int("matches", report.Matches()).Msg("File rewritten")
	return result, nil
}

func classifyReadError(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileNotFound, "failed to read %s", path).
			WithDetail("path", path)
	}
	return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
		WithDetail("path", path)
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fmt.Sprintf("a/%s", path),
		ToFile:   fmt.Sprintf("b/%s", path),
		Context:  3,
	})
}
