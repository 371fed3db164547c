package svg

import "html/template"

// Renderer exposes the chart functions as methods so callers can depend on
// an interface.
type Renderer struct{}

// Area implements the area chart contract.
func (Renderer) Area(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	return Area(width, height, labels, series, opts)
}

// Bars implements the grouped bar contract.
func (Renderer) Bars(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	return Bars(width, height, labels, series, opts)
}

// HorizontalBars implements the horizontal bar contract.
func (Renderer) HorizontalBars(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	return HorizontalBars(width, height, labels, values, opts)
}

// Pie implements the pie contract.
func (Renderer) Pie(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	return Pie(width, height, labels, values, opts)
}

// Radar implements the radar contract.
func (Renderer) Radar(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	return Radar(width, height, labels, values, opts)
}

// Composed implements the bar+line contract.
func (Renderer) Composed(width, height int, labels []string, bars, line []float64, opts ComposedOpts) (template.HTML, error) {
	return Composed(width, height, labels, bars, line, opts)
}
