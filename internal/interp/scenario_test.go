package interp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/lexer"
	"github.com/cwbudde/jsi/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every .jsi file under testdata/scenarios through the
// full lexer/parser/evaluator pipeline and snapshots its console output
// (or, for scripts that raise, its error message) with go-snaps.
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("../../testdata/scenarios/*.jsi")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".jsi")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(f)
			require.NoError(t, err)

			l := lexer.New(string(source))
			p := parser.New(l)
			program := p.ParseProgram()
			require.Empty(t, p.LexerErrors())
			require.Empty(t, p.Errors())

			var out strings.Builder
			heap := gcheap.New()
			evaluator := New(&out, heap, WithSeed(1))

			result := "ok"
			if _, err := evaluator.Eval(program); err != nil {
				result = err.Error()
			}

			snaps.MatchSnapshot(t, "stdout", out.String())
			snaps.MatchSnapshot(t, "result", result)
		})
	}
}
