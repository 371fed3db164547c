package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Radar renders values on evenly spaced spokes scaled to the largest value.
func Radar(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	f, err := newFrame(width, height, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "radar", "Radar chart", "Profile across categories")

	cx := float64(f.width) / 2
	cy := f.padding + f.chartHeight/2
	r := f.chartHeight / 2

	n := len(labels)
	if n == 0 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\"></circle>", cx, cy, r, f.gridColor))
		b.WriteString("</svg>")
		return template.HTML(b.String()), nil
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if almostEqual(maxVal, 0) {
		maxVal = 1
	}

	point := func(i int, radius float64) (float64, float64) {
		angle := -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
		return cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)
	}

	for level := 1; level <= f.ticks; level++ {
		radius := r * float64(level) / float64(f.ticks)
		pts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			x, y := point(i, radius)
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", x, y))
		}
		b.WriteString(fmt.Sprintf("<polygon points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\" aria-hidden=\"true\"></polygon>", strings.Join(pts, " "), f.gridColor))
	}

	for i, label := range labels {
		x, y := point(i, r)
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\"></line>", cx, cy, x, y, f.gridColor))
		lx, ly := point(i, r+12)
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", lx, ly+4, f.axisColor, template.HTMLEscapeString(label)))
	}

	pts := make([]string, 0, n)
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		x, y := point(i, r*v/maxVal)
		pts = append(pts, fmt.Sprintf("%.2f,%.2f", x, y))
	}
	color := Color(0)
	b.WriteString(fmt.Sprintf("<polygon points=\"%s\" fill=\"%s\" fill-opacity=\"0.4\" stroke=\"%s\" stroke-width=\"2\" aria-label=\"%s\"></polygon>", strings.Join(pts, " "), color, color, template.HTMLEscapeString(fallback(opts.Title, "values"))))

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
