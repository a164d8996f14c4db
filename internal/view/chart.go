package view

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/portdash/internal/models"
)

// ErrNoHoldings is returned when a portfolio has nothing to chart.
var ErrNoHoldings = errors.New("portfolio has no shares to chart")

// RenderHoldingsChart renders an SVG bar chart of shares owned per symbol.
func RenderHoldingsChart(u *models.User) ([]byte, error) {
	if u == nil || models.TotalShares(u.Portfolio) == 0 {
		return nil, ErrNoHoldings
	}

	maxOwned := 0
	bars := make([]chart.Value, 0, len(u.Portfolio))
	for _, e := range u.Portfolio {
		if e.Owned > maxOwned {
			maxOwned = e.Owned
		}
		bars = append(bars, chart.Value{
			Label: e.Symbol,
			Value: float64(e.Owned),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("1e40af"),
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:  u.DisplayName(),
		Width:  600,
		Height: 320,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 40,
		YAxis: chart.YAxis{
			// Pin the axis at zero; a single bar would otherwise give an empty range.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxOwned)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
