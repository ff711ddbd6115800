package interp

import "github.com/cwbudde/jsi/internal/natives"

// registerGlobals wires the host-provided natives (console, Math, JSON)
// into the interpreter's global environment.
func registerGlobals(i *Interpreter) {
	natives.Register(i.Global, i.Heap, i.Out, i.Rand)
}
