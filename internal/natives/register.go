// Package natives implements the host-provided globals available to
// every script: console.log, the Math namespace, and JSON.stringify /
// JSON.parse. These are plain Go closures wrapped as
// gcheap.NativeFunction values, one file per builtin namespace rather
// than one monolithic global table.
package natives

import (
	"io"
	"math"
	"math/rand"

	"github.com/cwbudde/jsi/internal/gcheap"
)

// Register installs every host native into global.
func Register(global *gcheap.JSEnv, heap *gcheap.Heap, out io.Writer, rng *rand.Rand) {
	registerConsole(global, heap, out)
	registerMath(global, heap, rng)
	registerJSON(global, heap)
	global.Define("undefined", gcheap.Undefined{}, true)
	global.Define("NaN", gcheap.Number(math.NaN()), true)
	global.Define("Infinity", gcheap.Number(math.Inf(1)), true)
}

func native(name string, fn func(args []gcheap.Value) (gcheap.Value, error)) *gcheap.NativeFunction {
	return &gcheap.NativeFunction{Name: name, Fn: fn}
}

func arg(args []gcheap.Value, idx int) gcheap.Value {
	if idx < len(args) {
		return args[idx]
	}
	return gcheap.Undefined{}
}
