package natives

import (
	"math"
	"math/rand"

	"github.com/cwbudde/jsi/internal/gcheap"
)

func registerMath(global *gcheap.JSEnv, heap *gcheap.Heap, rng *rand.Rand) {
	m := heap.NewObject()

	unary := func(name string, fn func(float64) float64) {
		m.Set(name, native("Math."+name, func(args []gcheap.Value) (gcheap.Value, error) {
			return gcheap.Number(fn(toNum(arg(args, 0)))), nil
		}))
	}

	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("trunc", math.Trunc)
	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("exp", math.Exp)

	m.Set("pow", native("Math.pow", func(args []gcheap.Value) (gcheap.Value, error) {
		return gcheap.Number(math.Pow(toNum(arg(args, 0)), toNum(arg(args, 1)))), nil
	}))
	m.Set("max", native("Math.max", func(args []gcheap.Value) (gcheap.Value, error) {
		if len(args) == 0 {
			return gcheap.Number(math.Inf(-1)), nil
		}
		best := toNum(args[0])
		for _, a := range args[1:] {
			v := toNum(a)
			if v != v {
				return gcheap.Number(v), nil
			}
			if v > best {
				best = v
			}
		}
		return gcheap.Number(best), nil
	}))
	m.Set("min", native("Math.min", func(args []gcheap.Value) (gcheap.Value, error) {
		if len(args) == 0 {
			return gcheap.Number(math.Inf(1)), nil
		}
		best := toNum(args[0])
		for _, a := range args[1:] {
			v := toNum(a)
			if v != v {
				return gcheap.Number(v), nil
			}
			if v < best {
				best = v
			}
		}
		return gcheap.Number(best), nil
	}))
	m.Set("random", native("Math.random", func(args []gcheap.Value) (gcheap.Value, error) {
		return gcheap.Number(rng.Float64()), nil
	}))
	m.Set("hypot", native("Math.hypot", func(args []gcheap.Value) (gcheap.Value, error) {
		sum := 0.0
		for _, a := range args {
			v := toNum(a)
			sum += v * v
		}
		return gcheap.Number(math.Sqrt(sum)), nil
	}))

	m.Set("PI", gcheap.Number(math.Pi))
	m.Set("E", gcheap.Number(math.E))
	m.Set("LN2", gcheap.Number(math.Ln2))
	m.Set("LN10", gcheap.Number(math.Log(10)))
	m.Set("SQRT2", gcheap.Number(math.Sqrt2))

	global.Define("Math", m, false)
}
