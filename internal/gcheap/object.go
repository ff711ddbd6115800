package gcheap

import (
	"strings"

	"github.com/cwbudde/jsi/internal/ast"
)

// Kind identifies the concrete shape of a heap-allocated object, used by
// the collector to dispatch Children() without a type switch at every
// call site.
type Kind int

const (
	KindString Kind = iota
	KindObject
	KindArray
	KindEnv
	KindFunction
)

// node is embedded by every heap-allocated type. It carries the
// intrusive free-list/all-objects link and the mark bit the collector
// flips during the mark phase.
type node struct {
	next   Object
	marked bool
}

// Object is the interface the collector walks: every heap-allocated
// value exposes its kind, an approximate byte footprint (for the
// allocation-threshold trigger) and its outgoing references.
type Object interface {
	Value
	Kind() Kind
	ByteSize() int
	Children() []Value
	isMarked() bool
	setMarked(bool)
	setNext(Object)
	getNext() Object
}

// JSString is a heap-allocated string. Short strings could in principle
// be interned/unboxed, but every string value is a heap node here.
type JSString struct {
	node
	Value string
}

func (*JSString) Type() string          { return "string" }
func (s *JSString) String() string      { return s.Value }
func (*JSString) Kind() Kind            { return KindString }
func (s *JSString) ByteSize() int       { return 32 + len(s.Value) }
func (*JSString) Children() []Value     { return nil }
func (n *node) isMarked() bool          { return n.marked }
func (n *node) setMarked(m bool)        { n.marked = m }
func (n *node) setNext(o Object)        { n.next = o }
func (n *node) getNext() Object         { return n.next }

// NewString allocates a tracked string on h.
func (h *Heap) NewString(s string) *JSString {
	v := &JSString{Value: s}
	h.register(v)
	return v
}

// JSObject is a heap-allocated plain object: an insertion-ordered string
// keyed property map.
type JSObject struct {
	node
	Keys   []string
	Values map[string]Value
}

func (*JSObject) Type() string { return "object" }
func (o *JSObject) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range o.Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(o.Values[k].String())
	}
	sb.WriteString("}")
	return sb.String()
}
func (*JSObject) Kind() Kind      { return KindObject }
func (o *JSObject) ByteSize() int { return 48 + 16*len(o.Keys) }
func (o *JSObject) Children() []Value {
	out := make([]Value, 0, len(o.Keys))
	for _, k := range o.Keys {
		out = append(out, o.Values[k])
	}
	return out
}

// Get returns the property named key and whether it is present.
func (o *JSObject) Get(key string) (Value, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Set assigns key, appending it to Keys if new.
func (o *JSObject) Set(key string, v Value) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = v
}

// Delete removes key, returning whether it was present.
func (o *JSObject) Delete(key string) bool {
	if _, ok := o.Values[key]; !ok {
		return false
	}
	delete(o.Values, key)
	for i, k := range o.Keys {
		if k == key {
			o.Keys = append(o.Keys[:i], o.Keys[i+1:]...)
			break
		}
	}
	return true
}

// NewObject allocates a tracked empty object on h.
func (h *Heap) NewObject() *JSObject {
	v := &JSObject{Values: map[string]Value{}}
	h.register(v)
	return v
}

// JSArray is a heap-allocated dense array.
type JSArray struct {
	node
	Elements []Value
}

func (*JSArray) Type() string { return "object" }
func (a *JSArray) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*JSArray) Kind() Kind            { return KindArray }
func (a *JSArray) ByteSize() int       { return 32 + 8*len(a.Elements) }
func (a *JSArray) Children() []Value   { return a.Elements }

// NewArray allocates a tracked array on h.
func (h *Heap) NewArray(elems []Value) *JSArray {
	v := &JSArray{Elements: elems}
	h.register(v)
	return v
}

// Binding is one variable slot in an environment: its current value and
// whether it was declared `const` (enforced at runtime as a TypeError on
// reassignment).
type Binding struct {
	Value   Value
	Const   bool
}

// JSEnv is a heap-allocated lexical scope frame. Declaring it as a heap
// object (rather than a plain Go struct pointer chain) lets the
// collector treat "every reachable environment" and "every reachable
// value" uniformly: both are graph nodes with Children().
type JSEnv struct {
	node
	Vars  map[string]*Binding
	Outer *JSEnv
}

func (*JSEnv) Type() string   { return "environment" }
func (*JSEnv) String() string { return "[environment]" }
func (*JSEnv) Kind() Kind     { return KindEnv }
func (e *JSEnv) ByteSize() int {
	return 40 + 48*len(e.Vars)
}
func (e *JSEnv) Children() []Value {
	out := make([]Value, 0, len(e.Vars)+1)
	for _, b := range e.Vars {
		out = append(out, b.Value)
	}
	if e.Outer != nil {
		out = append(out, e.Outer)
	}
	return out
}

// Define creates a new binding in this frame, shadowing any outer one.
func (e *JSEnv) Define(name string, v Value, isConst bool) {
	e.Vars[name] = &Binding{Value: v, Const: isConst}
}

// Resolve walks the outer chain looking for name, returning the innermost
// binding found and whether one was found.
func (e *JSEnv) Resolve(name string) (*Binding, bool) {
	for env := e; env != nil; env = env.Outer {
		if b, ok := env.Vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// NewEnv allocates a tracked environment frame, enclosed by outer (nil
// for the global frame).
func (h *Heap) NewEnv(outer *JSEnv) *JSEnv {
	v := &JSEnv{Vars: map[string]*Binding{}, Outer: outer}
	h.register(v)
	return v
}

// JSFunction is a heap-allocated user-defined function: its parameter
// list, body, and the closure environment captured at definition time.
type JSFunction struct {
	node
	Name    string
	Params  []*ast.Identifier
	Body    *ast.BlockStatement
	Expr    ast.Expression // non-nil for arrow-function concise bodies
	Closure *JSEnv
}

func (*JSFunction) Type() string { return "function" }
func (f *JSFunction) String() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	return "[Function: " + name + "]"
}
func (*JSFunction) Kind() Kind          { return KindFunction }
func (f *JSFunction) ByteSize() int     { return 64 }
func (f *JSFunction) Children() []Value { return []Value{f.Closure} }

// NewFunction allocates a tracked closure on h.
func (h *Heap) NewFunction(name string, params []*ast.Identifier, body *ast.BlockStatement, expr ast.Expression, closure *JSEnv) *JSFunction {
	v := &JSFunction{Name: name, Params: params, Body: body, Expr: expr, Closure: closure}
	h.register(v)
	return v
}
