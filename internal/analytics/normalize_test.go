package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHolding(t *testing.T) {
	t.Run("normalizes a full record", func(t *testing.T) {
		raw := map[string]interface{}{
			"tradingsymbol": "INFY",
			"quantity":      10.0,
			"average_price": 1400.0,
			"last_price":    1500.0,
			"pnl":           1000.0,
		}

		h, err := NormalizeHolding(raw)
		require.NoError(t, err)
		assert.Equal(t, "INFY", h.Symbol)
		assert.Equal(t, 10.0, h.Quantity)
		assert.Equal(t, 1400.0, h.AvgPrice)
		assert.Equal(t, 1500.0, h.LTP)
		assert.Equal(t, 1000.0, h.PnL)
	})

	t.Run("accepts alternate field names", func(t *testing.T) {
		raw := map[string]interface{}{
			"symbol":    "TCS",
			"shares":    5.0,
			"avg_price": 3200.0,
			"ltp":       3300.0,
		}

		h, err := NormalizeHolding(raw)
		require.NoError(t, err)
		assert.Equal(t, "TCS", h.Symbol)
		assert.Equal(t, 5.0, h.Quantity)
		assert.Equal(t, 3200.0, h.AvgPrice)
		assert.Equal(t, 3300.0, h.LTP)
	})

	t.Run("computes pnl when absent", func(t *testing.T) {
		raw := map[string]interface{}{
			"symbol":        "WIPRO",
			"quantity":      4.0,
			"average_price": 500.0,
			"last_price":    450.0,
		}

		h, err := NormalizeHolding(raw)
		require.NoError(t, err)
		assert.InDelta(t, (450.0-500.0)*4.0, h.PnL, 1e-9)
	})

	t.Run("missing symbol fails", func(t *testing.T) {
		raw := map[string]interface{}{
			"quantity": 5.0,
			"ltp":      10.0,
		}

		_, err := NormalizeHolding(raw)
		require.ErrorIs(t, err, ErrMissingSymbol)
	})

	t.Run("empty symbol fails", func(t *testing.T) {
		_, err := NormalizeHolding(map[string]interface{}{"symbol": ""})
		require.ErrorIs(t, err, ErrMissingSymbol)
	})

	t.Run("missing numeric fields default to zero", func(t *testing.T) {
		h, err := NormalizeHolding(map[string]interface{}{"symbol": "IDEA"})
		require.NoError(t, err)
		assert.Zero(t, h.Quantity)
		assert.Zero(t, h.AvgPrice)
		assert.Zero(t, h.LTP)
		assert.Zero(t, h.PnL)
	})

	t.Run("null numeric fields default to zero", func(t *testing.T) {
		raw := map[string]interface{}{
			"symbol":        "IDEA",
			"quantity":      nil,
			"average_price": nil,
			"last_price":    nil,
			"pnl":           nil,
		}

		h, err := NormalizeHolding(raw)
		require.NoError(t, err)
		assert.Zero(t, h.Quantity)
		assert.Zero(t, h.PnL)
	})

	t.Run("coerces string and integer numerics", func(t *testing.T) {
		raw := map[string]interface{}{
			"symbol":        "SBIN",
			"quantity":      7,
			"average_price": "612.5",
			"last_price":    int64(620),
		}

		h, err := NormalizeHolding(raw)
		require.NoError(t, err)
		assert.Equal(t, 7.0, h.Quantity)
		assert.Equal(t, 612.5, h.AvgPrice)
		assert.Equal(t, 620.0, h.LTP)
	})
}

func TestSectorLookup(t *testing.T) {
	raws := []map[string]interface{}{
		{"tradingsymbol": "INFY", "sector": "IT"},
		{"symbol": "HDFCBANK", "sector": "Banking"},
		{"symbol": "IDEA"},
		{"quantity": 5.0}, // no symbol, skipped
	}

	lookup := SectorLookup(raws)
	assert.Equal(t, map[string]string{
		"INFY":     "IT",
		"HDFCBANK": "Banking",
		"IDEA":     "Unknown",
	}, lookup)
}
