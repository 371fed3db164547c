package ui

import (
	"html/template"

	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

// TabLink is one entry of the tab bar.
type TabLink struct {
	ID     dashboard.Tab
	Label  string
	Active bool
}

// StatCard is a headline figure with an optional change indicator.
type StatCard struct {
	Title      string
	Value      string
	Direction  Direction
	ShowChange bool
	Change     string
}

// TrendPanel summarises the long-run trend.
type TrendPanel struct {
	Direction string
	R2        string
	AvgChange string
}

// RiskBanner is shown only for the high risk level.
type RiskBanner struct {
	Level       string
	Description string
}

// NextStep is one card of the next-steps grid.
type NextStep struct {
	Step     string
	Owner    string
	Deadline string
}

// DashboardPanel is the dashboard tab.
type DashboardPanel struct {
	Cards            []StatCard
	Trend            *TrendPanel
	YoYChart         template.HTML
	HighRisk         *RiskBanner
	NextSteps        []NextStep
	CriticalFindings []string
}

// ForecastRow is one line of the forecast table.
type ForecastRow struct {
	Period   string
	Forecast string
	Lower    string
	Upper    string
}

// CorrelationRow is one line of the correlation table.
type CorrelationRow struct {
	First       string
	Second      string
	Coefficient string
	Strength    string
}

// ForecastPanel is the forecast/charts tab.
type ForecastPanel struct {
	Chart         template.HTML
	Rows          []ForecastRow
	QuarterShare  template.HTML
	QuarterRadar  template.HTML
	YearlyTotals  template.HTML
	Spread        template.HTML
	Correlations  []CorrelationRow
	HasStatistics bool
}

// MetricCard is one of the insights tab figures.
type MetricCard struct {
	Title string
	Value string
	Class string
}

// InsightItem is one finding.
type InsightItem struct {
	Title    string
	Body     string
	Priority string
	Class    string
}

// RecommendationItem is one suggestion.
type RecommendationItem struct {
	Area   string
	Text   string
	Impact string
}

// InsightsPanel is the insights tab.
type InsightsPanel struct {
	Current         MetricCard
	QoQ             MetricCard
	Risk            MetricCard
	Insights        []InsightItem
	Recommendations []RecommendationItem
}

// QuarterCard highlights the best or worst quarter.
type QuarterCard struct {
	Quarter string
	Mean    string
	Bullets []string
}

// StrategyEntry is one key/value of the overall strategy, nested at most
// one level.
type StrategyEntry struct {
	Key      string
	Value    string
	Children []StrategyEntry
}

// QuarterlyPanel is the quarterly tab.
type QuarterlyPanel struct {
	Chart           template.HTML
	Best            QuarterCard
	Worst           QuarterCard
	Recommendations []string
	Strategy        []StrategyEntry
}

// Page is everything the dashboard template needs. Only the active tab's
// panel is populated; a nil panel means its slot is absent.
type Page struct {
	Tabs      []TabLink
	ActiveTab dashboard.Tab
	Loading   bool
	Mounted   bool
	LoadedAt  string
	Dashboard *DashboardPanel
	Forecast  *ForecastPanel
	Insights  *InsightsPanel
	Quarterly *QuarterlyPanel
}
