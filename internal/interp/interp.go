// Package interp implements the tree-walking evaluator: it executes an
// internal/ast.Program against a chain of internal/gcheap environments,
// allocating every mutable value on the gcheap.Heap and collecting it
// under a mark-and-sweep discipline.
package interp

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/cwbudde/jsi/internal/ast"
	"github.com/cwbudde/jsi/internal/gcheap"
)

// CompletionKind tags how a statement finished: falling off the end
// (Normal) or propagating control flow up to an enclosing construct.
type CompletionKind int

const (
	CNormal CompletionKind = iota
	CReturn
	CBreak
	CContinue
)

// Completion is the result of executing a Statement. Using a completion
// value instead of Go panics to unwind return/break/continue keeps
// control flow explicit and lets every statement-executing function
// return ordinary (Completion, error) pairs.
type Completion struct {
	Kind  CompletionKind
	Value gcheap.Value
}

var normalCompletion = Completion{Kind: CNormal}

// Interpreter holds everything live across a single program run: the
// heap, the global environment, the active call-frame chain (used as
// the GC root set between statements), and host-visible state like
// stdout and the PRNG seed backing Math.random.
type Interpreter struct {
	Heap   *gcheap.Heap
	Global *gcheap.JSEnv
	Out    io.Writer
	Rand   *rand.Rand

	envStack  []*gcheap.JSEnv
	callDepth int
	Trace     bool
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithTrace enables per-collection diagnostic output on Out.
func WithTrace(enabled bool) Option {
	return func(i *Interpreter) { i.Trace = enabled }
}

// WithSeed fixes Math.random's PRNG seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(i *Interpreter) { i.Rand = rand.New(rand.NewSource(seed)) }
}

// New creates an Interpreter writing host output to out and backed by
// heap (pass gcheap.New() for the default threshold, or
// gcheap.NewWithThreshold for a config-driven one).
func New(out io.Writer, heap *gcheap.Heap, opts ...Option) *Interpreter {
	i := &Interpreter{Out: out, Heap: heap}
	for _, opt := range opts {
		opt(i)
	}
	if i.Rand == nil {
		i.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	i.Global = heap.NewEnv(nil)
	registerGlobals(i)
	i.envStack = []*gcheap.JSEnv{i.Global}
	return i
}

// pushEnv records env as part of the active call-frame chain, extending
// the GC root set until the matching popEnv.
func (i *Interpreter) pushEnv(env *gcheap.JSEnv) {
	i.envStack = append(i.envStack, env)
}

func (i *Interpreter) popEnv() {
	i.envStack = i.envStack[:len(i.envStack)-1]
}

// roots returns the current GC root set: the global environment plus
// every environment on the active call-frame chain. Each JSEnv's own
// Children() walks its Outer pointer, so listing the innermost frame of
// every still-live chain is sufficient — closures captured into objects,
// arrays or other environments are reached transitively from there.
func (i *Interpreter) roots() []gcheap.Value {
	out := make([]gcheap.Value, len(i.envStack))
	for idx, e := range i.envStack {
		out[idx] = e
	}
	return out
}

// collectIfNeeded runs a GC pass at a safe point (between statements)
// if the heap has crossed its allocation threshold.
func (i *Interpreter) collectIfNeeded() {
	if !i.Heap.NeedsCollect() {
		return
	}
	freed := i.Heap.Collect(i.roots())
	if i.Trace {
		stats := i.Heap.Stats()
		fmt.Fprintf(i.Out, "[gc] collected %d bytes, %d live objects, threshold now %d\n",
			freed, stats.LiveObjects.Load(), i.Heap.Threshold())
	}
}

// Eval runs program to completion in the global environment and returns
// the value of the last expression statement, if any.
func (i *Interpreter) Eval(program *ast.Program) (gcheap.Value, error) {
	var last gcheap.Value = gcheap.Undefined{}
	for _, stmt := range program.Statements {
		comp, err := i.execStatement(stmt, i.Global)
		if err != nil {
			return nil, err
		}
		if comp.Kind != CNormal {
			// return/break/continue at top level has nowhere to go; the
			// parser does not reject these outside loops/functions, so
			// treat it as simply finishing with that value.
			if comp.Value != nil {
				last = comp.Value
			}
			break
		}
		if comp.Value != nil {
			last = comp.Value
		}
		i.collectIfNeeded()
	}
	return last, nil
}
