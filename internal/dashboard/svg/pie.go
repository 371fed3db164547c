package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders one slice per label. Non-positive values take no space but
// keep their legend entry.
func Pie(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	f, err := newFrame(width, height, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "pie", "Pie chart", "Share of total")

	cx := f.padding + f.chartHeight/2
	cy := f.padding + f.chartHeight/2
	r := f.chartHeight / 2

	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}

	if almostEqual(total, 0) {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"></circle>", cx, cy, r, f.gridColor))
	} else {
		angle := -math.Pi / 2
		for i, v := range values {
			if v <= 0 {
				continue
			}
			share := v / total
			color := Color(i)
			if almostEqual(share, 1) {
				b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></circle>", cx, cy, r, color, template.HTMLEscapeString(labels[i])))
				break
			}
			end := angle + share*2*math.Pi
			large := 0
			if share > 0.5 {
				large = 1
			}
			x1, y1 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
			x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
			b.WriteString(fmt.Sprintf("<path d=\"M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z\" fill=\"%s\" stroke=\"#ffffff\" stroke-width=\"1\" aria-label=\"%s\"></path>", cx, cy, x1, y1, r, r, large, x2, y2, color, template.HTMLEscapeString(labels[i])))
			angle = end
		}
	}

	legendX := cx + r + 24
	for i, label := range labels {
		y := f.padding + 14 + float64(i)*18
		share := 0.0
		if total > 0 && values[i] > 0 {
			share = values[i] / total * 100
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, y-9, Color(i)))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"start\">%s (%.0f%%)</text>", legendX+16, y, f.axisColor, template.HTMLEscapeString(label), share))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
