package gcheap

import "sync/atomic"

// DefaultThreshold is the initial byte allocation threshold before the
// first collection is triggered. After each collection the threshold is
// reset to DefaultGrowthFactor (or the configured factor) times the bytes
// still live, and at least MinThresholdIncrease above them, so the
// collector doesn't thrash on a live working set close to the limit.
const (
	DefaultThreshold     = 1 << 20 // 1 MiB
	DefaultGrowthFactor  = 2.0
	MinThresholdIncrease = 64 * 1024
)

// Stats mirrors, via atomics, running counters the CLI --trace flag
// reports after each collection.
type Stats struct {
	Allocations  atomic.Uint64
	Collections  atomic.Uint64
	BytesFreed   atomic.Uint64
	LiveObjects  atomic.Int64
}

// Heap owns every heap-allocated Object and performs mark-and-sweep
// collection over it. It has no notion of GC roots itself: callers pass
// the current root set into Collect at the point they want to collect
// (typically the evaluator, after finishing a statement).
type Heap struct {
	head          Object // intrusive singly linked list of all live+dead nodes
	count         int
	bytes         int64
	threshold     int64
	growthFactor  float64
	stats         Stats
}

// New creates an empty Heap with the default threshold/growth factor.
func New() *Heap {
	return &Heap{threshold: DefaultThreshold, growthFactor: DefaultGrowthFactor}
}

// NewWithThreshold creates a Heap with a caller-supplied initial
// threshold and growth factor (wired from internal/config).
func NewWithThreshold(threshold int64, growthFactor float64) *Heap {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if growthFactor <= 1.0 {
		growthFactor = DefaultGrowthFactor
	}
	return &Heap{threshold: threshold, growthFactor: growthFactor}
}

func (h *Heap) register(o Object) {
	o.setNext(h.head)
	h.head = o
	h.count++
	h.bytes += int64(o.ByteSize())
	h.stats.Allocations.Add(1)
	h.stats.LiveObjects.Add(1)
}

// Bytes returns the current estimated live+garbage byte footprint: the
// bytes still live after the last collection plus every allocation made
// since. NeedsCollect compares this same counter against the threshold.
func (h *Heap) Bytes() int64 { return h.bytes }

// Threshold returns the current collection trigger threshold.
func (h *Heap) Threshold() int64 { return h.threshold }

// NeedsCollect reports whether accumulated allocation has crossed the
// current threshold.
func (h *Heap) NeedsCollect() bool {
	return h.bytes >= h.threshold
}

// Stats returns the heap's running counters.
func (h *Heap) Stats() *Stats { return &h.stats }

// Collect runs a full stop-the-world mark-and-sweep pass rooted at
// roots. It returns the number of bytes reclaimed.
//
// Mark: every root and everything transitively reachable from it via
// Children() has its mark bit set. Sweep: walk the intrusive all-objects
// list once, unlinking and discarding anything left unmarked, then clear
// every surviving mark bit for the next cycle.
func (h *Heap) Collect(roots []Value) int64 {
	h.mark(roots)
	freed := h.sweep()
	h.stats.Collections.Add(1)
	h.stats.BytesFreed.Add(uint64(freed))

	// Next trigger point: growthFactor times the bytes still live, and at
	// least MinThresholdIncrease above them.
	grown := int64(float64(h.bytes) * h.growthFactor)
	if grown-h.bytes < MinThresholdIncrease {
		grown = h.bytes + MinThresholdIncrease
	}
	h.threshold = grown
	return freed
}

func (h *Heap) mark(roots []Value) {
	var stack []Object
	for _, r := range roots {
		if o, ok := r.(Object); ok && !o.isMarked() {
			o.setMarked(true)
			stack = append(stack, o)
		}
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		for _, child := range cur.Children() {
			if child == nil {
				continue
			}
			if o, ok := child.(Object); ok && !o.isMarked() {
				o.setMarked(true)
				stack = append(stack, o)
			}
		}
	}
}

func (h *Heap) sweep() int64 {
	var freedBytes int64
	var newHead Object
	var tail Object

	for cur := h.head; cur != nil; {
		next := cur.getNext()
		if cur.isMarked() {
			cur.setMarked(false)
			cur.setNext(nil)
			if newHead == nil {
				newHead = cur
			} else {
				tail.setNext(cur)
			}
			tail = cur
		} else {
			freedBytes += int64(cur.ByteSize())
			h.count--
			h.stats.LiveObjects.Add(-1)
		}
		cur = next
	}

	h.head = newHead
	h.bytes -= freedBytes
	if h.bytes < 0 {
		h.bytes = 0
	}
	return freedBytes
}

// Count returns the number of currently live heap objects (valid only
// between collections, since allocation bumps it immediately but sweep
// is the only thing that decrements it).
func (h *Heap) Count() int { return h.count }
