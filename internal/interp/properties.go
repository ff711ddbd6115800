package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/jsi/internal/gcheap"
	"github.com/cwbudde/jsi/internal/token"
)

// parseArrayIndex parses s as a non-negative base-10 array index, the
// same rule JS arrays use to decide whether a property key addresses an
// element or a named property.
func parseArrayIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return -1, &RuntimeError{Kind: InvalidArgument, Message: "not an array index"}
	}
	return n, nil
}

func (i *Interpreter) getProperty(obj gcheap.Value, name string, pos token.Position) (gcheap.Value, error) {
	switch o := obj.(type) {
	case *gcheap.JSObject:
		if v, ok := o.Get(name); ok {
			return v, nil
		}
		return gcheap.Undefined{}, nil
	case *gcheap.JSArray:
		if name == "length" {
			return gcheap.Number(float64(len(o.Elements))), nil
		}
		if idx, err := parseArrayIndex(name); err == nil {
			if idx < len(o.Elements) {
				return o.Elements[idx], nil
			}
			return gcheap.Undefined{}, nil
		}
		return gcheap.Undefined{}, nil
	case *gcheap.JSString:
		if name == "length" {
			return gcheap.Number(float64(len([]rune(o.Value)))), nil
		}
		if idx, err := parseArrayIndex(name); err == nil {
			runes := []rune(o.Value)
			if idx < len(runes) {
				return i.Heap.NewString(string(runes[idx])), nil
			}
			return gcheap.Undefined{}, nil
		}
		return gcheap.Undefined{}, nil
	case gcheap.Null:
		return nil, newNotAnObjectError(pos, "cannot read properties of null (reading %q)", name)
	case gcheap.Undefined:
		return nil, newNotAnObjectError(pos, "cannot read properties of undefined (reading %q)", name)
	default:
		return gcheap.Undefined{}, nil
	}
}

func (i *Interpreter) setProperty(obj gcheap.Value, name string, value gcheap.Value, pos token.Position) error {
	switch o := obj.(type) {
	case *gcheap.JSObject:
		o.Set(name, value)
		return nil
	case *gcheap.JSArray:
		if idx, err := parseArrayIndex(name); err == nil {
			i.setArrayIndex(o, idx, value)
			return nil
		}
		return nil
	case gcheap.Null:
		return newNotAnObjectError(pos, "cannot set properties of null (setting %q)", name)
	case gcheap.Undefined:
		return newNotAnObjectError(pos, "cannot set properties of undefined (setting %q)", name)
	default:
		return nil
	}
}

func (i *Interpreter) setArrayIndex(arr *gcheap.JSArray, idx int, value gcheap.Value) {
	if idx < len(arr.Elements) {
		arr.Elements[idx] = value
		return
	}
	for len(arr.Elements) < idx {
		arr.Elements = append(arr.Elements, gcheap.Undefined{})
	}
	arr.Elements = append(arr.Elements, value)
}

func (i *Interpreter) getIndexed(obj gcheap.Value, idx gcheap.Value, pos token.Position) (gcheap.Value, error) {
	var key string
	if n, ok := idx.(gcheap.Number); ok {
		key = strconv.Itoa(int(n))
	} else {
		key = ToStringValue(idx)
	}
	return i.getProperty(obj, key, pos)
}

func (i *Interpreter) setIndexed(obj gcheap.Value, idx gcheap.Value, value gcheap.Value, pos token.Position) error {
	var key string
	if n, ok := idx.(gcheap.Number); ok {
		key = strconv.Itoa(int(n))
	} else {
		key = ToStringValue(idx)
	}
	return i.setProperty(obj, key, value, pos)
}

// jsIndexOrKey reports whether name, with no surrounding whitespace, is
// an array element index, and returns that index.
func jsIndexOrKey(name string) (int, bool) {
	if strings.TrimSpace(name) != name {
		return 0, false
	}
	idx, err := parseArrayIndex(name)
	return idx, err == nil
}
