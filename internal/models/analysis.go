package models

import "time"

// Risk tiers assigned by the classifier
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Recommendation labels
const (
	RecommendationHold   = "Hold"
	RecommendationReduce = "Reduce Exposure"
	RecommendationReview = "Review"
)

// Recommendation is the per-holding classification result. AIScore is a
// bounded heuristic in [0,100], not a model output.
type Recommendation struct {
	ID             int       `json:"id,omitempty"`
	UserID         int       `json:"-"`
	Symbol         string    `json:"symbol"`
	AIScore        float64   `json:"ai_score"`
	Risk           string    `json:"risk"`
	Recommendation string    `json:"recommendation"`
	Timestamp      time.Time `json:"-"`
}

// ConcentrationItem is one holding's share of total portfolio value.
// Weight is a percentage rounded to two decimals.
type ConcentrationItem struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// SectorItem is the value held in one sector and its percentage weight
type SectorItem struct {
	Sector string  `json:"sector"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// AnalysisReport is the full derived analysis for one user's portfolio.
// It is recomputed per request; only the recommendations persist.
type AnalysisReport struct {
	Summary         PortfolioSummary    `json:"summary"`
	Concentration   []ConcentrationItem `json:"concentration"`
	SectorBreakdown []SectorItem        `json:"sector_breakdown"`
	Recommendations []Recommendation    `json:"recommendations"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
