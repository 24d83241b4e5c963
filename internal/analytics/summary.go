package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// Summarize aggregates holdings into portfolio totals. The returned summary
// carries the holdings sorted by symbol ascending (case-sensitive); totals
// are rounded to two decimals.
func Summarize(holdings []models.Holding) models.PortfolioSummary {
	sorted := make([]models.Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Symbol < sorted[j].Symbol
	})

	var totalInvested, totalValue, totalPnL float64
	for _, h := range sorted {
		totalInvested += h.InvestedValue()
		totalValue += h.MarketValue()
		totalPnL += h.PnL
	}

	return models.PortfolioSummary{
		Holdings:      sorted,
		TotalInvested: round2(totalInvested),
		TotalValue:    round2(totalValue),
		TotalPnL:      round2(totalPnL),
	}
}

// round2 rounds to two decimals, half away from zero
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
