package pkg

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CoerceAmount converte valores vindos de JSON/YAML soltos em um decimal nao negativo.
// Campos ausentes, nao numericos, NaN/Inf ou negativos viram zero.
func CoerceAmount(v interface{}) decimal.Decimal {
	var d decimal.Decimal

	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		d = val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		d = *val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(val)
	case float32:
		return CoerceAmount(float64(val))
	case int:
		d = decimal.NewFromInt(int64(val))
	case int64:
		d = decimal.NewFromInt(val)
	case int32:
		d = decimal.NewFromInt(int64(val))
	case uint:
		d = decimal.NewFromInt(int64(val))
	case uint64:
		if val > math.MaxInt64 {
			return decimal.Zero
		}
		d = decimal.NewFromInt(int64(val))
	case json.Number:
		return CoerceAmount(val.String())
	case string:
		parsed, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(val), ",", "."))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percent devolve part/total*100 sem arredondar; total zero devolve zero.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
