package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders a grouped bar chart with one bar per series in each group.
func Bars(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	if err := checkSeries(labels, series); err != nil {
		return "", err
	}
	f, err := newFrame(width, height, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "bar", "Bar chart", "Grouped bar comparison")

	minVal, maxVal := scale(seriesBounds(series))
	k := f.chartHeight / (maxVal - minVal)
	zeroY := f.bottom() - (0-minVal)*k
	f.grid(&b, minVal, maxVal)
	f.axes(&b, zeroY)

	if len(labels) > 0 {
		groupWidth := f.chartWidth / float64(len(labels))
		barWidth := groupWidth * 0.8 / float64(len(series))
		for i, label := range labels {
			baseX := f.padding + float64(i)*groupWidth + groupWidth*0.1
			for si, s := range series {
				y, h := barPosition(s.Values[i], k, zeroY, f.padding, f.bottom())
				b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX+float64(si)*barWidth, y, barWidth, h, seriesColor(s, si), template.HTMLEscapeString(s.Name), template.HTMLEscapeString(label)))
			}
			f.xLabel(&b, f.padding+float64(i)*groupWidth+groupWidth/2, label)
		}
	}

	entries := make([]legendEntry, 0, len(series))
	for si, s := range series {
		entries = append(entries, legendEntry{label: s.Name, color: seriesColor(s, si)})
	}
	f.legend(&b, entries)

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// HorizontalBars renders one horizontal bar per label, growing from a
// shared zero line.
func HorizontalBars(width, height int, labels []string, values []float64, opts Opts) (template.HTML, error) {
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	f, err := newFrame(width, height, opts)
	if err != nil {
		return "", err
	}
	const labelColumn = 90.0
	left := f.padding + labelColumn
	plotWidth := f.chartWidth - labelColumn
	if plotWidth <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	var b strings.Builder
	f.open(&b, opts, "hbar", "Horizontal bar chart", "Value comparison")

	maxAbs := 0.0
	for _, v := range values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	if almostEqual(maxAbs, 0) {
		maxAbs = 1
	}
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", left, f.padding, left, f.bottom(), f.axisColor))

	if len(labels) > 0 {
		row := f.chartHeight / float64(len(labels))
		for i, label := range labels {
			y := f.padding + float64(i)*row + row*0.2
			w := math.Abs(values[i]) / maxAbs * plotWidth
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></rect>", left, y, w, row*0.6, Color(i), template.HTMLEscapeString(label)))
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"end\">%s</text>", left-6, y+row*0.3+4, f.axisColor, template.HTMLEscapeString(label)))
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", left+w+4, y+row*0.3+4, f.axisColor, template.HTMLEscapeString(formatTick(values[i]))))
		}
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func barPosition(value, k, zeroY, padding, bottom float64) (float64, float64) {
	if value >= 0 {
		height := value * k
		y := zeroY - height
		if y < padding {
			height -= padding - y
			y = padding
		}
		if height < 0 {
			height = 0
		}
		return y, height
	}
	height := math.Abs(value * k)
	y := zeroY
	if y+height > bottom {
		height = bottom - y
	}
	if height < 0 {
		height = 0
	}
	return y, height
}
