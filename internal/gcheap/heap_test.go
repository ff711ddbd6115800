package gcheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStringRegistersAndCounts(t *testing.T) {
	h := New()
	s := h.NewString("hello")
	assert.Equal(t, "hello", s.Value)
	assert.Equal(t, 1, h.Count())
	assert.True(t, h.Bytes() > 0)
}

func TestObjectSetGetDelete(t *testing.T) {
	h := New()
	o := h.NewObject()
	o.Set("a", Number(1))
	o.Set("b", Number(2))
	v, ok := o.Get("a")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)
	assert.Equal(t, []string{"a", "b"}, o.Keys)

	assert.True(t, o.Delete("a"))
	assert.False(t, o.Delete("a"))
	_, ok = o.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, o.Keys)
}

func TestEnvDefineResolveShadowing(t *testing.T) {
	h := New()
	outer := h.NewEnv(nil)
	outer.Define("x", Number(1), false)

	inner := h.NewEnv(outer)
	inner.Define("x", Number(2), true)

	b, ok := inner.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, Number(2), b.Value)
	assert.True(t, b.Const)

	ob, ok := outer.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, Number(1), ob.Value)

	_, ok = inner.Resolve("missing")
	assert.False(t, ok)
}

func TestCollectFreesUnreachable(t *testing.T) {
	h := New()
	root := h.NewEnv(nil)
	kept := h.NewString("kept")
	root.Define("kept", kept, false)

	// Garbage: never stored anywhere reachable from root.
	h.NewString("garbage")

	// root env + "kept" + "garbage"; only the env and "kept" survive.
	assert.Equal(t, 3, h.Count())
	h.Collect([]Value{root})
	assert.Equal(t, 2, h.Count())

	v, ok := root.Resolve("kept")
	require.True(t, ok)
	assert.Equal(t, kept, v.Value)
}

func TestCollectKeepsTransitiveEnvChain(t *testing.T) {
	h := New()
	global := h.NewEnv(nil)
	child := h.NewEnv(global)
	global.Define("g", h.NewString("g-val"), false)
	child.Define("c", h.NewString("c-val"), false)

	h.Collect([]Value{child})
	// Both child and its outer chain (global) must survive even though
	// only child was passed as a root.
	assert.Equal(t, 4, h.Count())
}

func TestCollectGrowsThresholdWhenStillOverLimit(t *testing.T) {
	h := NewWithThreshold(1, 2.0)
	root := h.NewEnv(nil)
	root.Define("s", h.NewString("x"), false)

	before := h.Threshold()
	h.Collect([]Value{root})
	assert.True(t, h.Threshold() > before)
}

func TestStatsTrackAllocationsAndCollections(t *testing.T) {
	h := New()
	h.NewString("a")
	h.NewString("b")
	stats := h.Stats()
	assert.Equal(t, uint64(2), stats.Allocations.Load())

	h.Collect(nil)
	assert.Equal(t, uint64(1), stats.Collections.Load())
	assert.Equal(t, int64(0), stats.LiveObjects.Load())
}

func TestArrayChildrenIncludeElements(t *testing.T) {
	h := New()
	s := h.NewString("elem")
	arr := h.NewArray([]Value{s, Number(1)})
	h.Collect([]Value{arr})
	assert.Equal(t, 2, h.Count())
}

func TestTruthy(t *testing.T) {
	h := New()
	assert.True(t, Truthy(Number(1)))
	assert.False(t, Truthy(Number(0)))
	assert.False(t, Truthy(Boolean(false)))
	assert.False(t, Truthy(Null{}))
	assert.False(t, Truthy(Undefined{}))
	assert.False(t, Truthy(h.NewString("")))
	assert.True(t, Truthy(h.NewString("x")))
}
