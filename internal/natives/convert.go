package natives

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/jsi/internal/gcheap"
)

// toDisplayString renders v the way console.log and template
// interpolation would, mirroring interp.ToStringValue without importing
// the interp package (natives sits below interp in the import graph).
func toDisplayString(v gcheap.Value) string {
	switch x := v.(type) {
	case *gcheap.JSString:
		return x.Value
	case nil:
		return "undefined"
	default:
		return x.String()
	}
}

func toNum(v gcheap.Value) float64 {
	switch x := v.(type) {
	case gcheap.Number:
		return float64(x)
	case gcheap.Boolean:
		if x {
			return 1
		}
		return 0
	case gcheap.Null:
		return 0
	case *gcheap.JSString:
		s := strings.TrimSpace(x.Value)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == float64(int64(f)) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
