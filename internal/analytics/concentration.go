package analytics

import (
	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// Concentration computes each holding's share of total portfolio value,
// in input order. A zero total is substituted with 1.0 so that empty or
// worthless portfolios produce zero weights instead of dividing by zero.
func Concentration(holdings []models.Holding, totalValue float64) []models.ConcentrationItem {
	if totalValue == 0 {
		totalValue = 1.0
	}

	items := make([]models.ConcentrationItem, 0, len(holdings))
	for _, h := range holdings {
		value := h.MarketValue()
		items = append(items, models.ConcentrationItem{
			Symbol: h.Symbol,
			Value:  round2(value),
			Weight: round2(value / totalValue * 100),
		})
	}
	return items
}

// SectorBreakdown groups holding value by sector and normalizes to
// percentage weights. Sectors are emitted in first-seen order over the
// input holdings, which is deterministic since callers pass holdings
// sorted by symbol. Symbols absent from the lookup count as "Unknown".
func SectorBreakdown(holdings []models.Holding, sectors map[string]string) []models.SectorItem {
	totals := make(map[string]float64)
	var order []string

	for _, h := range holdings {
		sector := sectors[h.Symbol]
		if sector == "" {
			sector = "Unknown"
		}
		if _, seen := totals[sector]; !seen {
			order = append(order, sector)
		}
		totals[sector] += h.MarketValue()
	}

	var totalSectorValue float64
	for _, v := range totals {
		totalSectorValue += v
	}
	if totalSectorValue == 0 {
		totalSectorValue = 1.0
	}

	items := make([]models.SectorItem, 0, len(order))
	for _, sector := range order {
		value := totals[sector]
		items = append(items, models.SectorItem{
			Sector: sector,
			Value:  round2(value),
			Weight: round2(value / totalSectorValue * 100),
		})
	}
	return items
}
