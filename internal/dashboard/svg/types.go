package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Series is one named sequence of values aligned with the chart labels.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// Opts customises every renderer.
type Opts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// ComposedOpts customises the bar+line renderer.
type ComposedOpts struct {
	Opts
	BarLabel  string
	LineLabel string
	BarColor  string
	LineColor string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 300
	DefaultPadding = 36.0
	DefaultTicks   = 5
)

var palette = []string{"#3b82f6", "#93c5fd", "#1e40af", "#f97316", "#10b981", "#a855f7", "#eab308", "#ef4444"}

// Color returns the palette color for index i.
func Color(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

type frame struct {
	width, height int
	padding       float64
	ticks         int
	axisColor     string
	gridColor     string
	chartWidth    float64
	chartHeight   float64
}

func newFrame(width, height int, opts Opts) (frame, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	f := frame{
		width:     width,
		height:    height,
		padding:   opts.Padding,
		ticks:     opts.TickCount,
		axisColor: fallback(opts.AxisColor, "#475569"),
		gridColor: fallback(opts.GridColor, "#cbd5f5"),
	}
	if f.padding <= 0 {
		f.padding = DefaultPadding
	}
	if f.ticks <= 0 {
		f.ticks = DefaultTicks
	}
	f.chartWidth = float64(width) - 2*f.padding
	f.chartHeight = float64(height) - 2*f.padding
	if f.chartWidth <= 0 || f.chartHeight <= 0 {
		return frame{}, fmt.Errorf("svg: viewport too small")
	}
	return f, nil
}

func (f frame) bottom() float64 {
	return f.padding + f.chartHeight
}

func (f frame) open(b *strings.Builder, opts Opts, kind, defaultTitle, defaultDesc string) {
	titleID := makeID(opts.Title, kind+"-title")
	descID := makeID(opts.Title, kind+"-desc")
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", f.width, f.height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, defaultTitle))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, defaultDesc))))
}

// grid draws horizontal grid lines with tick labels on the left edge.
func (f frame) grid(b *strings.Builder, minVal, maxVal float64) {
	for i := 0; i <= f.ticks; i++ {
		ratio := float64(i) / float64(f.ticks)
		value := minVal + (maxVal-minVal)*ratio
		y := f.bottom() - ratio*f.chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", f.padding, y, f.padding+f.chartWidth, y, f.gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", f.padding-6, y+4, f.axisColor, template.HTMLEscapeString(formatTick(value))))
	}
}

func (f frame) axes(b *strings.Builder, zeroY float64) {
	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-label=\"Oxlar\">", f.axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.padding, f.padding, f.padding, f.bottom()))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.padding, zeroY, f.padding+f.chartWidth, zeroY))
	b.WriteString("</g>")
}

func (f frame) xLabel(b *strings.Builder, x float64, label string) {
	b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, f.bottom()+14, f.axisColor, template.HTMLEscapeString(label)))
}

type legendEntry struct {
	label string
	color string
}

func (f frame) legend(b *strings.Builder, entries []legendEntry) {
	y := f.padding - 14
	if y < 12 {
		y = 12
	}
	x := f.padding
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", x, y-8, e.color))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", x+14, y, f.axisColor, template.HTMLEscapeString(e.label)))
		x += 24 + 6*float64(len([]rune(e.label)))
	}
}

// scale returns value bounds that always include zero and never collapse.
func scale(minVal, maxVal float64) (float64, float64) {
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func seriesBounds(series []Series) (float64, float64) {
	first := true
	minVal, maxVal := 0.0, 0.0
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		lo, hi := bounds(s.Values)
		if first || lo < minVal {
			minVal = lo
		}
		if first || hi > maxVal {
			maxVal = hi
		}
		first = false
	}
	return minVal, maxVal
}

func checkSeries(labels []string, series []Series) error {
	if len(series) == 0 {
		return fmt.Errorf("svg: at least one series required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
	}
	return nil
}

func seriesColor(s Series, i int) string {
	return fallback(s.Color, Color(i))
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(series []float64) (float64, float64) {
	minVal := series[0]
	maxVal := series[0]
	for _, v := range series[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}
