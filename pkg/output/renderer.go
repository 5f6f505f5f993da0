// Package output writes hdrstrip's status lines.
//
// Every invocation produces exactly one status line. In the terminal format
// the leading symbol is coloured; in the text format the line is plain; in
// the JSON format the line is a single JSON object. A diff, when requested,
// follows the status line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hdrstrip/pkg/errors"
	"github.com/arthur-debert/hdrstrip/pkg/output/styles"
	"github.com/arthur-debert/hdrstrip/pkg/rewriter"
	"github.com/arthur-debert/hdrstrip/pkg/stripper"
	"github.com/arthur-debert/hdrstrip/pkg/ui"
)

// Message formats for the status line
const (
	MsgUsage     = "Usage: %s <file>"
	MsgFixed     = "Fixed %s"
	MsgUnchanged = "No changes needed in %s"
	MsgWouldFix  = "Would fix %s"
	MsgError     = "Error processing %s: %s"
)

// Status symbols, one per outcome
const (
	SymbolFixed     = "✓"
	SymbolUnchanged = "-"
	SymbolWouldFix  = "~"
	SymbolError     = "✗"
)

// Line is the JSON shape of a status line
type Line struct {
	File    string                `json:"file"`
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Rules   []stripper.RuleResult `json:"rules,omitempty"`
	Diff    string                `json:"diff,omitempty"`
}

// Renderer writes status lines in one resolved format
type Renderer struct {
	w      io.Writer
	format ui.Format
	styles styles.Registry
}

// NewRenderer creates a Renderer. FormatAuto is treated as plain text;
// callers resolve it against the real output first with ui.Resolve.
func NewRenderer(w io.Writer, format ui.Format) *Renderer {
	if format == ui.FormatAuto {
		format = ui.FormatText
	}
	r := &Renderer{w: w, format: format}
	if format == ui.FormatTerminal {
		r.styles = styles.Default()
	}
	return r
}

// Format returns the format the renderer writes
func (r *Renderer) Format() ui.Format {
	return r.format
}

// Result writes the status line for a processed file
func (r *Renderer) Result(res *rewriter.Result) error {
	var symbol, style, message string
	switch res.Status {
	case rewriter.StatusFixed:
		symbol, style, message = SymbolFixed, "Success", fmt.Sprintf(MsgFixed, res.Path)
	case rewriter.StatusWouldFix:
		symbol, style, message = SymbolWouldFix, "Pending", fmt.Sprintf(MsgWouldFix, res.Path)
	default:
		symbol, style, message = SymbolUnchanged, "Muted", fmt.Sprintf(MsgUnchanged, res.Path)
	}

	if r.format == ui.FormatJSON {
		return r.writeJSON(Line{
			File:    res.Path,
			Status:  string(res.Status),
			Message: message,
			Rules:   res.Report.Rules,
			Diff:    res.Diff,
		})
	}

	if err := r.writeLine(symbol, style, message); err != nil {
		return err
	}
	if res.Diff != "" {
		return r.writeDiff(res.Diff)
	}
	return nil
}

// Error writes the status line for a file that could not be processed
func (r *Renderer) Error(path string, err error) error {
	message := fmt.Sprintf(MsgError, path, errors.Cause(err))
	if r.format == ui.FormatJSON {
		return r.writeJSON(Line{File: path, Status: "error", Message: message})
	}
	return r.writeLine(SymbolError, "Error", message)
}

// Usage writes the usage line. It is always plain text.
func (r *Renderer) Usage(program string) error {
	_, err := fmt.Fprintf(r.w, MsgUsage+"\n", program)
	return err
}

func (r *Renderer) writeLine(symbol, style, message string) error {
	if r.format == ui.FormatTerminal {
		symbol = r.styles.Render(style, symbol)
	}
	_, err := fmt.Fprintf(r.w, "%s %s\n", symbol, message)
	return err
}

func (r *Renderer) writeJSON(line Line) error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(line)
}

func (r *Renderer) writeDiff(diff string) error {
	if r.format != ui.FormatTerminal {
		_, err := io.WriteString(r.w, diff)
		return err
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"), strings.HasPrefix(body, "@@"):
			body = r.styles.Render("DiffHeader", body)
		case strings.HasPrefix(body, "+"):
			body = r.styles.Render("DiffAdd", body)
		case strings.HasPrefix(body, "-"):
			body = r.styles.Render("DiffRemove", body)
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}
