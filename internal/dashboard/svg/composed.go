package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Composed renders bars on the left axis with a line on an independent
// right axis, sharing the label axis.
func Composed(width, height int, labels []string, bars, line []float64, opts ComposedOpts) (template.HTML, error) {
	if len(bars) != len(labels) || len(line) != len(labels) {
		return "", fmt.Errorf("svg: bar and line lengths must match labels")
	}
	f, err := newFrame(width, height, opts.Opts)
	if err != nil {
		return "", err
	}
	barColor := fallback(opts.BarColor, Color(0))
	lineColor := fallback(opts.LineColor, Color(3))

	var b strings.Builder
	f.open(&b, opts.Opts, "composed", "Composed chart", "Totals with growth rate")

	barMin, barMax := 0.0, 0.0
	lineMin, lineMax := 0.0, 0.0
	if len(labels) > 0 {
		barMin, barMax = bounds(bars)
		lineMin, lineMax = bounds(line)
	}
	barMin, barMax = scale(barMin, barMax)
	lineMin, lineMax = scale(lineMin, lineMax)
	kBar := f.chartHeight / (barMax - barMin)
	kLine := f.chartHeight / (lineMax - lineMin)
	zeroY := f.bottom() - (0-barMin)*kBar

	f.grid(&b, barMin, barMax)
	right := f.padding + f.chartWidth
	for i := 0; i <= f.ticks; i++ {
		ratio := float64(i) / float64(f.ticks)
		value := lineMin + (lineMax-lineMin)*ratio
		y := f.bottom() - ratio*f.chartHeight
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", right+6, y+4, lineColor, template.HTMLEscapeString(formatTick(value))))
	}
	f.axes(&b, zeroY)
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", right, f.padding, right, f.bottom(), f.axisColor))

	if len(labels) > 0 {
		groupWidth := f.chartWidth / float64(len(labels))
		var path strings.Builder
		for i, label := range labels {
			center := f.padding + float64(i)*groupWidth + groupWidth/2
			y, h := barPosition(bars[i], kBar, zeroY, f.padding, f.bottom())
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", center-groupWidth*0.3, y, groupWidth*0.6, h, barColor, template.HTMLEscapeString(opts.BarLabel), template.HTMLEscapeString(label)))
			ly := f.bottom() - (line[i]-lineMin)*kLine
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%.2f %.2f", center, ly))
			} else {
				path.WriteString(fmt.Sprintf(" L%.2f %.2f", center, ly))
			}
			f.xLabel(&b, center, label)
		}
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" aria-label=\"%s\"></path>", path.String(), lineColor, template.HTMLEscapeString(opts.LineLabel)))
		for i := range labels {
			center := f.padding + float64(i)*groupWidth + groupWidth/2
			ly := f.bottom() - (line[i]-lineMin)*kLine
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"></circle>", center, ly, lineColor))
		}
	}

	f.legend(&b, []legendEntry{
		{label: fallback(opts.BarLabel, "Bars"), color: barColor},
		{label: fallback(opts.LineLabel, "Line"), color: lineColor},
	})

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
