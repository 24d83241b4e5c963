package analytics

import (
	"github.com/rgupta87/portfolio-analyzer/internal/models"
)

// Classify scores one holding given its fraction of total portfolio value.
// Pure function: the same holding and weight always produce the same result.
//
// The score starts from a neutral 60 and shifts by the return on invested
// capital, clamped to [0,100]. Positions with no invested capital get a
// flat 50 since the ratio is meaningless there.
func Classify(h models.Holding, weight float64) models.Recommendation {
	aiScore := 50.0
	if invested := h.InvestedValue(); invested > 0 {
		pnlRatio := h.PnL / invested
		aiScore = clamp(60+pnlRatio*100, 0, 100)
	}

	// Boundary weights fall into the lower tier: exactly 0.25 is Medium,
	// exactly 0.15 is Low.
	var risk string
	switch {
	case weight > 0.25:
		risk = models.RiskHigh
	case weight > 0.15:
		risk = models.RiskMedium
	default:
		risk = models.RiskLow
	}

	var recommendation string
	switch {
	case h.PnL > 0 && risk != models.RiskHigh:
		recommendation = models.RecommendationHold
	case h.PnL < 0 && risk == models.RiskHigh:
		recommendation = models.RecommendationReduce
	default:
		recommendation = models.RecommendationReview
	}

	return models.Recommendation{
		Symbol:         h.Symbol,
		AIScore:        round2(aiScore),
		Risk:           risk,
		Recommendation: recommendation,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
