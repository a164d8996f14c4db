// Package models defines data structures for portdash
package models

// PortfolioEntry is a holding: a stock symbol and the number of shares owned.
type PortfolioEntry struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Owned  int    `json:"owned" yaml:"owned"`
}

// TotalShares sums owned across all entries.
func TotalShares(entries []PortfolioEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Owned
	}
	return total
}
