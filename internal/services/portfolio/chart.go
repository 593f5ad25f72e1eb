package portfolio

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/tealscan/internal/models"
)

// categoryColors keeps a category's slice the same colour across charts.
var categoryColors = map[models.Category]string{
	models.CategoryEquity: "2563eb", // blue-600
	models.CategoryDebt:   "059669", // emerald-600
	models.CategoryGold:   "d97706", // amber-600
}

// RenderAllocationChart renders a PNG pie chart of net worth by category.
// Returns raw PNG bytes.
func RenderAllocationChart(allocation []models.CategoryAllocation) ([]byte, error) {
	values := make([]chart.Value, 0, len(allocation))
	for _, a := range allocation {
		if !a.Value.IsPositive() {
			continue
		}
		v := chart.Value{
			Value: a.Value.InexactFloat64(),
			Label: fmt.Sprintf("%s %s%%", a.Category, a.Weight.StringFixed(1)),
		}
		if hex, ok := categoryColors[a.Category]; ok {
			v.Style = chart.Style{FillColor: drawing.ColorFromHex(hex)}
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no holdings to chart")
	}

	pie := chart.PieChart{
		Title:  "Allocation by Category",
		Width:  512,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
