package ui

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/svg"
)

// ChartRenderer abstracts SVG chart rendering for the panels.
type ChartRenderer interface {
	Area(width, height int, labels []string, series []svg.Series, opts svg.Opts) (template.HTML, error)
	Bars(width, height int, labels []string, series []svg.Series, opts svg.Opts) (template.HTML, error)
	HorizontalBars(width, height int, labels []string, values []float64, opts svg.Opts) (template.HTML, error)
	Pie(width, height int, labels []string, values []float64, opts svg.Opts) (template.HTML, error)
	Radar(width, height int, labels []string, values []float64, opts svg.Opts) (template.HTML, error)
	Composed(width, height int, labels []string, bars, line []float64, opts svg.ComposedOpts) (template.HTML, error)
}

const (
	chartWidth      = svg.DefaultWidth
	chartHeight     = svg.DefaultHeight
	tallChartHeight = 400
	maxBullets      = 2
)

var tabLabels = map[dashboard.Tab]string{
	dashboard.TabDashboard: "📊 Dashboard",
	dashboard.TabForecast:  "🔮 Proqnoz",
	dashboard.TabInsights:  "💡 Təhlillər",
	dashboard.TabQuarterly: "📅 Rüblər",
}

// Builder turns decoded payloads into panel view models.
type Builder struct {
	format *Formatter
	charts ChartRenderer
	policy *bluemonday.Policy
}

// NewBuilder constructs a Builder. A nil renderer falls back to svg.Renderer.
func NewBuilder(format *Formatter, charts ChartRenderer) *Builder {
	if charts == nil {
		charts = svg.Renderer{}
	}
	return &Builder{format: format, charts: charts, policy: bluemonday.StrictPolicy()}
}

// Formatter exposes the number formatter.
func (b *Builder) Formatter() *Formatter {
	return b.format
}

// Page builds the view for the state's active tab.
func (b *Builder) Page(state dashboard.State, snap dashboard.Snapshot) (Page, error) {
	page := Page{
		ActiveTab: state.ActiveTab,
		Loading:   state.Loading,
		Mounted:   state.Mounted,
	}
	if !state.LoadedAt.IsZero() {
		page.LoadedAt = state.LoadedAt.Format("2006-01-02 15:04:05")
	}
	for _, tab := range dashboard.Tabs() {
		page.Tabs = append(page.Tabs, TabLink{ID: tab, Label: tabLabels[tab], Active: tab == state.ActiveTab})
	}

	var err error
	switch state.ActiveTab {
	case dashboard.TabForecast:
		page.Forecast, err = b.ForecastPanel(snap)
	case dashboard.TabInsights:
		page.Insights = b.InsightsPanel(snap)
	case dashboard.TabQuarterly:
		page.Quarterly, err = b.QuarterlyPanel(snap)
	default:
		page.Dashboard, err = b.DashboardPanel(snap)
	}
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

// DashboardPanel builds the dashboard tab, or nil when the summary is absent.
func (b *Builder) DashboardPanel(snap dashboard.Snapshot) (*DashboardPanel, error) {
	summary := snap.Dashboard
	if summary == nil {
		return nil, nil
	}
	latest := summary.Core.LatestPeriod
	latestCard := StatCard{
		Title:      "Son Dövr",
		Value:      b.format.Number(latest.Value),
		Direction:  DirectionOf(latest.Delta),
		ShowChange: latest.Delta != nil,
	}
	if latest.DeltaPercent != nil {
		latestCard.Change = Percent(latest.DeltaPercent)
	} else {
		latestCard.Change = b.format.Number(latest.Delta)
	}

	panel := &DashboardPanel{
		Cards: []StatCard{
			latestCard,
			{Title: "Ortalama", Value: b.format.Number(summary.Core.Mean.Value), Direction: DirectionNeutral},
			{Title: "Minimum", Value: b.format.Number(summary.Range.Min.Value), Direction: DirectionDown},
			{Title: "Maksimum", Value: b.format.Number(summary.Range.Max.Value), Direction: DirectionUp},
		},
	}

	if len(summary.YearOverYear) > 0 {
		labels := make([]string, 0, len(summary.YearOverYear))
		values := make([]float64, 0, len(summary.YearOverYear))
		for _, year := range summary.YearOverYear {
			labels = append(labels, b.text(year.Year))
			values = append(values, valueOf(year.Total))
		}
		chart, err := b.charts.Bars(chartWidth, chartHeight, labels, []svg.Series{{Name: "Məbləğ", Values: values}}, svg.Opts{
			Title:       "İllik müqayisə",
			Description: "Year-over-year totals",
		})
		if err != nil {
			return nil, fmt.Errorf("ui: yoy chart: %w", err)
		}
		panel.YoYChart = chart
	}

	if trend := snap.TrendAnalysis; trend != nil {
		panel.Trend = &TrendPanel{
			Direction: b.text(trend.Overall.Direction),
			R2:        b.text(trend.Overall.Strength.R2),
			AvgChange: b.format.Number(trend.Overall.AvgQuarterlyChange),
		}
	}

	if exec := snap.ExecutiveSummary; exec != nil {
		if exec.Risk != nil && exec.Risk.Level.String() == RiskHigh {
			panel.HighRisk = &RiskBanner{Level: RiskHigh, Description: b.text(exec.Risk.Description)}
		}
		for _, step := range exec.NextSteps {
			panel.NextSteps = append(panel.NextSteps, NextStep{
				Step:     b.text(step.Step),
				Owner:    b.text(step.Owner),
				Deadline: b.text(step.Deadline),
			})
		}
		for _, finding := range exec.CriticalFindings {
			panel.CriticalFindings = append(panel.CriticalFindings, b.text(finding))
		}
	}
	return panel, nil
}

// ForecastPanel builds the forecast tab, or nil when the forecast is absent.
func (b *Builder) ForecastPanel(snap dashboard.Snapshot) (*ForecastPanel, error) {
	forecast := snap.Forecast
	if forecast == nil {
		return nil, nil
	}
	panel := &ForecastPanel{Rows: make([]ForecastRow, 0, len(forecast.Points))}

	labels := make([]string, 0, len(forecast.Points))
	upper := make([]float64, 0, len(forecast.Points))
	point := make([]float64, 0, len(forecast.Points))
	lower := make([]float64, 0, len(forecast.Points))
	for _, p := range forecast.Points {
		period := b.clean(p.Period.String())
		labels = append(labels, period)
		upper = append(upper, valueOf(p.Upper95))
		point = append(point, valueOf(p.Forecast))
		lower = append(lower, valueOf(p.Lower95))
		panel.Rows = append(panel.Rows, ForecastRow{
			Period:   period,
			Forecast: b.format.Number(p.Forecast),
			Lower:    b.format.Number(p.Lower95),
			Upper:    b.format.Number(p.Upper95),
		})
	}
	chart, err := b.charts.Area(chartWidth, tallChartHeight, labels, []svg.Series{
		{Name: "Yuxarı Sərhəd (95%)", Values: upper, Color: "#93c5fd"},
		{Name: "Proqnoz", Values: point, Color: "#2563eb"},
		{Name: "Aşağı Sərhəd (95%)", Values: lower, Color: "#60a5fa"},
	}, svg.Opts{Title: "Gələcək Proqnozlar", Description: "Combined forecast with 95% bounds"})
	if err != nil {
		return nil, fmt.Errorf("ui: forecast chart: %w", err)
	}
	panel.Chart = chart

	if stats := snap.DetailedStatistics; stats != nil {
		panel.HasStatistics = true
		if err := b.statisticsCharts(panel, stats); err != nil {
			return nil, err
		}
	}
	if corr := snap.Correlation; corr != nil {
		for _, pair := range corr.Pairs {
			coefficient := ""
			if pair.Coefficient != nil {
				coefficient = fmt.Sprintf("%.2f", *pair.Coefficient)
			}
			panel.Correlations = append(panel.Correlations, CorrelationRow{
				First:       b.text(pair.First),
				Second:      b.text(pair.Second),
				Coefficient: coefficient,
				Strength:    b.text(pair.Strength),
			})
		}
	}
	return panel, nil
}

func (b *Builder) statisticsCharts(panel *ForecastPanel, stats *dashboard.DetailedStatistics) error {
	names := make([]string, 0, len(stats.QuarterAverages))
	averages := make([]float64, 0, len(stats.QuarterAverages))
	for _, q := range stats.QuarterAverages {
		names = append(names, b.clean(q.Name))
		averages = append(averages, valueOf(q.Value))
	}
	var err error
	if panel.QuarterShare, err = b.charts.Pie(chartWidth, chartHeight, names, averages, svg.Opts{Title: "Rüblük ortalamalar"}); err != nil {
		return fmt.Errorf("ui: quarter share chart: %w", err)
	}
	if panel.QuarterRadar, err = b.charts.Radar(chartWidth, chartHeight, names, averages, svg.Opts{Title: "Rüblük profil"}); err != nil {
		return fmt.Errorf("ui: quarter radar chart: %w", err)
	}

	years := make([]string, 0, len(stats.YearlyTotals))
	totals := make([]float64, 0, len(stats.YearlyTotals))
	growth := make([]float64, 0, len(stats.YearlyTotals))
	for _, y := range stats.YearlyTotals {
		years = append(years, b.text(y.Year))
		totals = append(totals, valueOf(y.Total))
		growth = append(growth, valueOf(y.GrowthPercent))
	}
	if panel.YearlyTotals, err = b.charts.Composed(chartWidth, chartHeight, years, totals, growth, svg.ComposedOpts{
		Opts:      svg.Opts{Title: "İllik cəmlər"},
		BarLabel:  "Cəm",
		LineLabel: "Artım %",
	}); err != nil {
		return fmt.Errorf("ui: yearly totals chart: %w", err)
	}

	if spread := stats.Spread; spread != nil {
		if panel.Spread, err = b.charts.HorizontalBars(chartWidth, chartHeight,
			[]string{"Ortalama", "Median", "Standart sapma"},
			[]float64{valueOf(spread.Mean), valueOf(spread.Median), valueOf(spread.StdDev)},
			svg.Opts{Title: "Yayılma"}); err != nil {
			return fmt.Errorf("ui: spread chart: %w", err)
		}
	}
	return nil
}

// InsightsPanel builds the insights tab, or nil when the executive summary
// is absent.
func (b *Builder) InsightsPanel(snap dashboard.Snapshot) *InsightsPanel {
	exec := snap.ExecutiveSummary
	if exec == nil {
		return nil
	}
	qoq := exec.Figures.QoQ.Value
	qoqClass := "text-red"
	if qoq != nil && *qoq > 0 {
		qoqClass = "text-green"
	}
	level := ""
	if exec.Risk != nil {
		level = b.text(exec.Risk.Level)
	}
	qoqText := "0%"
	if qoq != nil {
		qoqText = Percent(qoq)
	}
	panel := &InsightsPanel{
		Current: MetricCard{Title: "Cari Dəyər", Value: b.format.Number(exec.Figures.Current.Value) + " min ₼"},
		QoQ:     MetricCard{Title: "Rüb-Rüb Dəyişiklik", Value: qoqText, Class: qoqClass},
		Risk:    MetricCard{Title: "Risk Səviyyəsi", Value: level, Class: RiskClass(level)},
	}
	for _, insight := range exec.Insights {
		panel.Insights = append(panel.Insights, InsightItem{
			Title:    b.text(insight.Title),
			Body:     b.text(insight.Body),
			Priority: b.text(insight.Priority),
			Class:    InsightClass(insight.Kind.String()),
		})
	}
	for _, rec := range exec.Recommendations {
		panel.Recommendations = append(panel.Recommendations, RecommendationItem{
			Area:   b.text(rec.Area),
			Text:   b.text(rec.Text),
			Impact: b.text(rec.ExpectedImpact),
		})
	}
	return panel
}

// QuarterlyPanel builds the quarterly tab, or nil when quarterly insights
// are absent.
func (b *Builder) QuarterlyPanel(snap dashboard.Snapshot) (*QuarterlyPanel, error) {
	quarterly := snap.QuarterlyInsights
	if quarterly == nil {
		return nil, nil
	}
	labels := make([]string, 0, len(quarterly.Quarters))
	means := make([]float64, 0, len(quarterly.Quarters))
	mins := make([]float64, 0, len(quarterly.Quarters))
	maxs := make([]float64, 0, len(quarterly.Quarters))
	for _, q := range quarterly.Quarters {
		labels = append(labels, b.clean(q.Quarter))
		means = append(means, valueOf(q.Stats.Mean))
		mins = append(mins, valueOf(q.Stats.Min))
		maxs = append(maxs, valueOf(q.Stats.Max))
	}
	chart, err := b.charts.Bars(chartWidth, chartHeight, labels, []svg.Series{
		{Name: "Ortalama", Values: means, Color: "#3b82f6"},
		{Name: "Minimum", Values: mins, Color: "#93c5fd"},
		{Name: "Maksimum", Values: maxs, Color: "#1e40af"},
	}, svg.Opts{Title: "Rüblər üzrə Statistika", Description: "Quarterly mean, minimum and maximum"})
	if err != nil {
		return nil, fmt.Errorf("ui: quarterly chart: %w", err)
	}

	best := quarterly.Comparison.Best
	worst := quarterly.Comparison.Worst
	panel := &QuarterlyPanel{
		Chart: chart,
		Best: QuarterCard{
			Quarter: b.text(best.Quarter),
			Mean:    b.format.Number(best.Mean),
			Bullets: b.bullets(best.ActionPlan),
		},
		Worst: QuarterCard{
			Quarter: b.text(worst.Quarter),
			Mean:    b.format.Number(worst.Mean),
			Bullets: b.bullets(worst.ImprovementStrategy),
		},
		Strategy: b.strategy(quarterly.OverallStrategy),
	}
	for _, rec := range quarterly.BusinessRecommendations {
		panel.Recommendations = append(panel.Recommendations, b.text(rec))
	}
	return panel, nil
}

func (b *Builder) bullets(items []dashboard.Label) []string {
	if len(items) > maxBullets {
		items = items[:maxBullets]
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, b.text(item))
	}
	return out
}

func (b *Builder) strategy(kvs dashboard.KeyValues) []StrategyEntry {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]StrategyEntry, 0, len(kvs))
	for _, kv := range kvs {
		entry := StrategyEntry{Key: b.clean(kv.Key), Value: b.clean(kv.Value)}
		if kv.Nested() {
			entry.Children = b.strategy(kv.Children)
		}
		out = append(out, entry)
	}
	return out
}

func (b *Builder) text(l dashboard.Label) string {
	return b.clean(l.String())
}

// clean strips any markup from service text. Escaping is left to the
// template.
func (b *Builder) clean(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return html.UnescapeString(b.policy.Sanitize(s))
}
