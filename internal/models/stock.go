package models

import "strings"

// Stock is read-only metadata for a listed company.
type Stock struct {
	Symbol      string `json:"symbol" yaml:"symbol"`
	Name        string `json:"name" yaml:"name"`
	Sector      string `json:"sector" yaml:"sector"`
	SubIndustry string `json:"subIndustry" yaml:"subIndustry"`
	Address     string `json:"address" yaml:"address"`
}

// LogoPath is the logo reference shown in the stock detail panel.
func (s *Stock) LogoPath() string {
	return LogoPath(s.Symbol)
}

// LogoPath derives the logo reference for a symbol.
func LogoPath(symbol string) string {
	return "logos/" + strings.TrimSpace(symbol) + ".svg"
}

// SameSymbol compares two ticker symbols after trimming.
func SameSymbol(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
