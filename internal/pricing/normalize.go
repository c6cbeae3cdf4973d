package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizePrice converts any numeric or numeric-string representation
// of a price into whole VND, rounding to the nearest unit. Anything
// unparseable degrades to 0 instead of erroring: these values feed a
// payment amount, and the safe default is the non-charging one.
func NormalizePrice(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return d.Round(0).IntPart()
	case decimal.Decimal:
		return v.Round(0).IntPart()
	default:
		return 0
	}
}

func normalizeFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}
