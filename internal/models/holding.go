package models

import "time"

// Holding represents a single equity position synced from the brokerage
type Holding struct {
	ID          int       `json:"id,omitempty"`
	UserID      int       `json:"-"`
	Symbol      string    `json:"symbol"`
	Quantity    float64   `json:"quantity"`
	AvgPrice    float64   `json:"avg_price"`
	LTP         float64   `json:"ltp"`
	PnL         float64   `json:"pnl"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// MarketValue returns the current value of the position
func (h Holding) MarketValue() float64 {
	return h.Quantity * h.LTP
}

// InvestedValue returns the cost basis of the position
func (h Holding) InvestedValue() float64 {
	return h.Quantity * h.AvgPrice
}

// PortfolioSummary aggregates a user's holdings. Totals are rounded to
// two decimals for presentation; holdings are sorted by symbol.
type PortfolioSummary struct {
	Holdings      []Holding `json:"holdings"`
	TotalInvested float64   `json:"total_invested"`
	TotalValue    float64   `json:"total_value"`
	TotalPnL      float64   `json:"total_pnl"`
}
