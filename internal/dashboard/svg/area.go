package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Area renders overlapping filled series against shared labels. Empty
// labels produce an empty frame rather than an error.
func Area(width, height int, labels []string, series []Series, opts Opts) (template.HTML, error) {
	if err := checkSeries(labels, series); err != nil {
		return "", err
	}
	f, err := newFrame(width, height, opts)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "area", "Area chart", "Forecast range")

	minVal, maxVal := scale(seriesBounds(series))
	k := f.chartHeight / (maxVal - minVal)
	f.grid(&b, minVal, maxVal)
	f.axes(&b, f.bottom())

	xAt := func(i int) float64 {
		if len(labels) == 1 {
			return f.padding + f.chartWidth/2
		}
		return f.padding + float64(i)*f.chartWidth/float64(len(labels)-1)
	}

	if len(labels) > 0 {
		for si, s := range series {
			color := seriesColor(s, si)
			var path strings.Builder
			for i, value := range s.Values {
				x := xAt(i)
				y := f.bottom() - (value-minVal)*k
				if i == 0 {
					path.WriteString(fmt.Sprintf("M%.2f %.2f", x, y))
				} else {
					path.WriteString(fmt.Sprintf(" L%.2f %.2f", x, y))
				}
			}
			area := fmt.Sprintf("%s L%.2f %.2f L%.2f %.2f Z", path.String(), xAt(len(labels)-1), f.bottom(), xAt(0), f.bottom())
			b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"%s\" fill-opacity=\"0.25\" stroke=\"none\" aria-hidden=\"true\"></path>", area, color))
			b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\" aria-label=\"%s\"></path>", path.String(), color, template.HTMLEscapeString(s.Name)))
		}
		for i, label := range labels {
			f.xLabel(&b, xAt(i), label)
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
