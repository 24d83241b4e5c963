package analytics

import (
	"errors"
	"strconv"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// ErrMissingSymbol is returned when a raw record has no resolvable symbol.
// Callers skip the record and keep processing the batch.
var ErrMissingSymbol = errors.New("holding symbol missing")

// NormalizeHolding converts a raw brokerage record into a canonical Holding.
// The brokerage returns loosely-typed maps with alternate field names
// depending on the endpoint, so every numeric field tolerates missing or
// null values by defaulting to zero. Only the symbol is mandatory.
func NormalizeHolding(raw map[string]interface{}) (models.Holding, error) {
	symbol := firstString(raw, "tradingsymbol", "symbol")
	if symbol == "" {
		return models.Holding{}, ErrMissingSymbol
	}

	quantity := firstNumber(raw, "quantity", "shares")
	avgPrice := firstNumber(raw, "average_price", "avg_price")
	ltp := firstNumber(raw, "last_price", "ltp")

	pnl := firstNumber(raw, "pnl")
	if pnl == 0 {
		pnl = (ltp - avgPrice) * quantity
	}

	return models.Holding{
		Symbol:   symbol,
		Quantity: quantity,
		AvgPrice: avgPrice,
		LTP:      ltp,
		PnL:      pnl,
	}, nil
}

// SectorLookup builds a symbol to sector map from raw brokerage records.
// Records without a sector resolve to "Unknown".
func SectorLookup(raws []map[string]interface{}) map[string]string {
	lookup := make(map[string]string, len(raws))
	for _, raw := range raws {
		symbol := firstString(raw, "tradingsymbol", "symbol")
		if symbol == "" {
			continue
		}
		sector := firstString(raw, "sector")
		if sector == "" {
			sector = "Unknown"
		}
		lookup[symbol] = sector
	}
	return lookup
}

// firstString returns the first non-empty string value among keys
func firstString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the first non-zero numeric value among keys,
// falling back to zero when every candidate is absent, null, or zero
func firstNumber(raw map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if v := toFloat(raw[key]); v != 0 {
			return v
		}
	}
	return 0
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
