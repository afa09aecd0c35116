// Package render draws the dashboard charts as SVG documents with go-chart.
// Every render builds a new document and replaces the target surface.
package render

import "enrollment-dashboard/internal/dashboard"

// NewRenderers returns the SVG renderers and the dashboard option that makes
// brush coordinates match the scatter plot area
func NewRenderers() (dashboard.Renderers, dashboard.Option) {
	scatter := NewScatterChart()
	w, h := scatter.PlotArea()
	return dashboard.Renderers{
		Bar:     NewBarChart(),
		Pie:     NewPieChart(),
		Scatter: scatter,
	}, dashboard.WithPlotSize(w, h)
}
