package natives

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/jsi/internal/gcheap"
)

func registerConsole(global *gcheap.JSEnv, heap *gcheap.Heap, out io.Writer) {
	console := heap.NewObject()
	console.Set("log", native("log", func(args []gcheap.Value) (gcheap.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = toDisplayString(a)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return gcheap.Undefined{}, nil
	}))
	console.Set("error", console.Values["log"])
	console.Set("warn", console.Values["log"])
	global.Define("console", console, false)
}
