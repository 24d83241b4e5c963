package analytics

import (
	"testing"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAnalysis(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	holdings := []models.Holding{
		{UserID: 7, Symbol: "TCS", Quantity: 2, AvgPrice: 3200, LTP: 3300, PnL: 200},
		{UserID: 7, Symbol: "INFY", Quantity: 10, AvgPrice: 1400, LTP: 1500, PnL: 1000},
		{UserID: 7, Symbol: "WIPRO", Quantity: 4, AvgPrice: 500, LTP: 450, PnL: -200},
	}
	sectors := map[string]string{"INFY": "IT", "TCS": "IT", "WIPRO": "IT"}

	report := ComputeAnalysis(holdings, sectors, now)

	t.Run("summary totals", func(t *testing.T) {
		assert.Equal(t, 22400.0, report.Summary.TotalInvested)
		assert.Equal(t, 23400.0, report.Summary.TotalValue)
		assert.Equal(t, 1000.0, report.Summary.TotalPnL)
	})

	t.Run("one recommendation per holding in symbol order", func(t *testing.T) {
		require.Len(t, report.Recommendations, 3)
		assert.Equal(t, "INFY", report.Recommendations[0].Symbol)
		assert.Equal(t, "TCS", report.Recommendations[1].Symbol)
		assert.Equal(t, "WIPRO", report.Recommendations[2].Symbol)
	})

	t.Run("recommendation values", func(t *testing.T) {
		// INFY: weight 15000/23400 > 0.25, pnl > 0 -> High risk, Review
		infy := report.Recommendations[0]
		assert.Equal(t, models.RiskHigh, infy.Risk)
		assert.Equal(t, models.RecommendationReview, infy.Recommendation)
		// ratio 1000/14000 -> 60 + 7.142... = 67.14
		assert.Equal(t, 67.14, infy.AIScore)

		// TCS: weight 6600/23400 ~ 0.282 > 0.25 -> High, pnl > 0 -> Review
		tcs := report.Recommendations[1]
		assert.Equal(t, models.RiskHigh, tcs.Risk)
		assert.Equal(t, models.RecommendationReview, tcs.Recommendation)

		// WIPRO: weight 1800/23400 ~ 0.077 -> Low, pnl < 0 -> Review
		wipro := report.Recommendations[2]
		assert.Equal(t, models.RiskLow, wipro.Risk)
		assert.Equal(t, models.RecommendationReview, wipro.Recommendation)
		// ratio -200/2000 -> 60 - 10 = 50
		assert.Equal(t, 50.0, wipro.AIScore)
	})

	t.Run("recommendations carry user and timestamp", func(t *testing.T) {
		for _, rec := range report.Recommendations {
			assert.Equal(t, 7, rec.UserID)
			assert.Equal(t, now, rec.Timestamp)
		}
	})

	t.Run("concentration follows sorted holdings", func(t *testing.T) {
		require.Len(t, report.Concentration, 3)
		assert.Equal(t, "INFY", report.Concentration[0].Symbol)
		assert.Equal(t, 15000.0, report.Concentration[0].Value)
	})

	t.Run("sector breakdown", func(t *testing.T) {
		require.Len(t, report.SectorBreakdown, 1)
		assert.Equal(t, "IT", report.SectorBreakdown[0].Sector)
		assert.Equal(t, 100.0, report.SectorBreakdown[0].Weight)
	})

	t.Run("generated timestamp", func(t *testing.T) {
		assert.Equal(t, now, report.GeneratedAt)
	})

	t.Run("empty portfolio produces empty report", func(t *testing.T) {
		empty := ComputeAnalysis(nil, nil, now)
		assert.Empty(t, empty.Recommendations)
		assert.Empty(t, empty.Concentration)
		assert.Empty(t, empty.SectorBreakdown)
		assert.Zero(t, empty.Summary.TotalValue)
	})
}
