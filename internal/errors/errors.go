// Package errors formats lexer, parser and runtime diagnostics into the
// file:line:column-plus-source-line shape the CLI prints to stderr.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/jsi/internal/token"
)

// Diagnostic is anything with a message and a source position: lexer
// and parser errors are converted to it by a thin adapter at the call
// site.
type Diagnostic struct {
	Kind    string
	Message string
	Pos     token.Position
}

// Format renders a single diagnostic as a "kind: message" line and a
// "--> line L, column C" line, plus the offending source line with a
// caret under the column when that line exists in source.
func Format(d Diagnostic, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Kind, d.Message)
	fmt.Fprintf(&sb, "  --> line %d, column %d\n", d.Pos.Line, d.Pos.Column)

	line := sourceLine(source, d.Pos.Line)
	if line != "" {
		fmt.Fprintf(&sb, "  %s\n", line)
		fmt.Fprintf(&sb, "  %s^\n", strings.Repeat(" ", max(0, d.Pos.Column-1)))
	}
	return sb.String()
}

// FormatAll renders every diagnostic in ds, separated by blank lines.
func FormatAll(ds []Diagnostic, source string) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = Format(d, source)
	}
	return strings.Join(parts, "\n")
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
