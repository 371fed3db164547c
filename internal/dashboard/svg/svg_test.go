package svg

import (
	"strings"
	"testing"
)

func TestAreaProducesSVG(t *testing.T) {
	html, err := Area(400, 220, []string{"2025-Q1", "2025-Q2", "2025-Q3"}, []Series{
		{Name: "Proqnoz", Values: []float64{100, 120, 130}},
		{Name: "Aşağı 95%", Values: []float64{80, 90, 95}},
		{Name: "Yuxarı 95%", Values: []float64{120, 150, 165}},
	}, Opts{Title: "Forecast", Description: "Combined forecast"})
	if err != nil {
		t.Fatalf("area renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if got := strings.Count(output, "<path"); got != 6 {
		t.Fatalf("expected fill and stroke per series, got %d paths", got)
	}
	if !strings.Contains(output, "Aşağı 95%") {
		t.Fatalf("expected legend label")
	}
	if !strings.Contains(output, "aria-labelledby") {
		t.Fatalf("expected accessibility attributes")
	}
}

func TestAreaEmptyRendersFrame(t *testing.T) {
	html, err := Area(400, 220, nil, []Series{{Name: "Proqnoz"}}, Opts{})
	if err != nil {
		t.Fatalf("empty area should not fail: %v", err)
	}
	output := string(html)
	if !strings.HasSuffix(output, "</svg>") {
		t.Fatalf("expected closed svg")
	}
	if strings.Contains(output, "<path") {
		t.Fatalf("expected no data paths for empty chart")
	}
}

func TestAreaRejectsMismatchedSeries(t *testing.T) {
	if _, err := Area(400, 220, []string{"a", "b"}, []Series{{Name: "x", Values: []float64{1}}}, Opts{}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestBarsGroupsSeries(t *testing.T) {
	html, err := Bars(420, 220, []string{"Q1", "Q2"}, []Series{
		{Name: "Ortalama", Values: []float64{500, 600}},
		{Name: "Minimum", Values: []float64{300, 320}},
		{Name: "Maksimum", Values: []float64{700, 720}},
	}, Opts{Title: "Quarters"})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	output := string(html)
	// three legend swatches plus six bars
	if got := strings.Count(output, "<rect"); got != 9 {
		t.Fatalf("expected 9 rects, got %d", got)
	}
	if !strings.Contains(output, "Maksimum") {
		t.Fatalf("expected legend label")
	}
}

func TestBarsHandlesNegativeValues(t *testing.T) {
	html, err := Bars(420, 220, []string{"2023", "2024"}, []Series{{Name: "Cəm", Values: []float64{-50, 100}}}, Opts{})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	if strings.Contains(string(html), "height=\"-") {
		t.Fatalf("bar heights must never be negative")
	}
}

func TestHorizontalBars(t *testing.T) {
	html, err := HorizontalBars(420, 200, []string{"Ortalama", "Median", "Std"}, []float64{10, 8, 2}, Opts{})
	if err != nil {
		t.Fatalf("hbar renderer error: %v", err)
	}
	if got := strings.Count(string(html), "<rect"); got != 3 {
		t.Fatalf("expected 3 bars, got %d", got)
	}
}

func TestPieSlicesAndShares(t *testing.T) {
	html, err := Pie(420, 220, []string{"Q1", "Q2", "Q3", "Q4"}, []float64{25, 25, 25, 25}, Opts{Title: "Share"})
	if err != nil {
		t.Fatalf("pie renderer error: %v", err)
	}
	output := string(html)
	if got := strings.Count(output, "<path"); got != 4 {
		t.Fatalf("expected 4 slices, got %d", got)
	}
	if !strings.Contains(output, "Q3 (25%)") {
		t.Fatalf("expected share in legend: %s", output)
	}
}

func TestPieSingleSliceIsCircle(t *testing.T) {
	html, err := Pie(420, 220, []string{"Q1", "Q2"}, []float64{10, 0}, Opts{})
	if err != nil {
		t.Fatalf("pie renderer error: %v", err)
	}
	output := string(html)
	if strings.Contains(output, "<path") || !strings.Contains(output, "<circle") {
		t.Fatalf("expected full circle for a single slice")
	}
}

func TestRadarPolygons(t *testing.T) {
	html, err := Radar(420, 260, []string{"Q1", "Q2", "Q3", "Q4"}, []float64{4, 3, 5, 2}, Opts{TickCount: 3})
	if err != nil {
		t.Fatalf("radar renderer error: %v", err)
	}
	// three grid rings plus the data polygon
	if got := strings.Count(string(html), "<polygon"); got != 4 {
		t.Fatalf("expected 4 polygons, got %d", got)
	}
}

func TestComposedDrawsBarsAndLine(t *testing.T) {
	html, err := Composed(480, 240, []string{"2023", "2024"}, []float64{1000, 1200}, []float64{5, 20}, ComposedOpts{
		BarLabel:  "Cəm",
		LineLabel: "Artım %",
	})
	if err != nil {
		t.Fatalf("composed renderer error: %v", err)
	}
	output := string(html)
	if got := strings.Count(output, "<circle"); got != 2 {
		t.Fatalf("expected a dot per point, got %d", got)
	}
	if !strings.Contains(output, "Artım %") {
		t.Fatalf("expected line legend")
	}
	if _, err := Composed(480, 240, []string{"2023"}, []float64{1}, nil, ComposedOpts{}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestViewportTooSmall(t *testing.T) {
	if _, err := Bars(40, 40, []string{"a"}, []Series{{Name: "x", Values: []float64{1}}}, Opts{}); err == nil {
		t.Fatalf("expected viewport error")
	}
}

func TestFormatTick(t *testing.T) {
	cases := map[float64]string{0: "0", 12.5: "12.50", 1500: "1.5k", 2_500_000: "2.5M"}
	for in, want := range cases {
		if got := formatTick(in); got != want {
			t.Fatalf("formatTick(%v) = %q, want %q", in, got, want)
		}
	}
}
