package analytics

import (
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// ComputeAnalysis derives the full analysis report from canonical holdings
// and a symbol-to-sector lookup. It is a pure function of its inputs plus
// the supplied timestamp: no network, no persistence.
func ComputeAnalysis(holdings []models.Holding, sectors map[string]string, now time.Time) models.AnalysisReport {
	summary := Summarize(holdings)

	totalValue := summary.TotalValue
	if totalValue == 0 {
		totalValue = 1.0
	}

	recommendations := make([]models.Recommendation, 0, len(summary.Holdings))
	for _, h := range summary.Holdings {
		weight := h.MarketValue() / totalValue
		rec := Classify(h, weight)
		rec.UserID = h.UserID
		rec.Timestamp = now
		recommendations = append(recommendations, rec)
	}

	return models.AnalysisReport{
		Summary:         summary,
		Concentration:   Concentration(summary.Holdings, summary.TotalValue),
		SectorBreakdown: SectorBreakdown(summary.Holdings, sectors),
		Recommendations: recommendations,
		GeneratedAt:     now,
	}
}
