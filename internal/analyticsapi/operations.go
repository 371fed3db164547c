package analyticsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// DefaultPeriods is the forecast horizon used when callers omit one.
const DefaultPeriods = 4

// Operation names, shared by the observer labels and the CLI.
const (
	OpDashboard           = "dashboard"
	OpDetailedStatistics  = "detailed-statistics"
	OpOutlierAnalysis     = "outlier-analysis"
	OpTrendAnalysis       = "trend-analysis"
	OpQuarterlyInsights   = "quarterly-insights"
	OpDescriptive         = "descriptive"
	OpCorrelation         = "correlation"
	OpNormalityTests      = "normality-tests"
	OpSimpleForecast      = "simple-forecast"
	OpSeasonalForecast    = "seasonal-forecast"
	OpConfidenceLevels    = "confidence-levels"
	OpModelComparison     = "model-comparison"
	OpAdvancedModelsInfo  = "advanced-models-info"
	OpAdvancedForecast    = "advanced-forecast"
	OpExecutiveSummary    = "executive-summary"
	OpPerformanceMetrics  = "performance-metrics"
	OpRiskAnalysis        = "risk-analysis"
	OpComparativeAnalysis = "comparative-analysis"
	OpActionPlan          = "action-plan"
)

var validate = validator.New()

// Params carries the optional inputs some operations accept.
type Params struct {
	Periods   int
	ModelName string
}

// AdvancedForecastParams is validated before an advanced forecast is sent.
type AdvancedForecastParams struct {
	ModelName string `validate:"required"`
	NPeriods  int    `validate:"min=1"`
}

// Operation describes one fixed request.
type Operation struct {
	Name   string
	Method string
	Path   string
	call   func(ctx context.Context, c *Client, p Params) (json.RawMessage, error)
}

// Call runs the operation against c.
func (op Operation) Call(ctx context.Context, c *Client, p Params) (json.RawMessage, error) {
	return op.call(ctx, c, p)
}

var operations = []Operation{
	getOp(OpDashboard, "/api/analytics/dashboard"),
	getOp(OpDetailedStatistics, "/api/analytics/detailed-statistics"),
	getOp(OpOutlierAnalysis, "/api/analytics/outlier-analysis"),
	getOp(OpTrendAnalysis, "/api/analytics/trend-analysis"),
	getOp(OpQuarterlyInsights, "/api/analytics/quarterly-insights"),
	getOp(OpDescriptive, "/api/statistics/descriptive"),
	getOp(OpCorrelation, "/api/statistics/correlation"),
	getOp(OpNormalityTests, "/api/statistics/normality-tests"),
	{
		Name: OpSimpleForecast, Method: http.MethodGet, Path: "/api/predictions/simple-forecast",
		call: func(ctx context.Context, c *Client, p Params) (json.RawMessage, error) {
			return c.GetSimpleForecast(ctx, p.Periods)
		},
	},
	{
		Name: OpSeasonalForecast, Method: http.MethodGet, Path: "/api/predictions/seasonal-forecast",
		call: func(ctx context.Context, c *Client, p Params) (json.RawMessage, error) {
			return c.GetSeasonalForecast(ctx, p.Periods)
		},
	},
	getOp(OpConfidenceLevels, "/api/predictions/confidence-levels"),
	getOp(OpModelComparison, "/api/predictions/model-comparison"),
	getOp(OpAdvancedModelsInfo, "/api/predictions/advanced-models-info"),
	{
		Name: OpAdvancedForecast, Method: http.MethodPost, Path: "/api/predictions/advanced-forecast",
		call: func(ctx context.Context, c *Client, p Params) (json.RawMessage, error) {
			return c.GetAdvancedForecast(ctx, p.ModelName, p.Periods)
		},
	},
	getOp(OpExecutiveSummary, "/api/insights/executive-summary"),
	getOp(OpPerformanceMetrics, "/api/insights/performance-metrics"),
	getOp(OpRiskAnalysis, "/api/insights/risk-analysis"),
	getOp(OpComparativeAnalysis, "/api/insights/comparative-analysis"),
	getOp(OpActionPlan, "/api/insights/action-plan"),
}

func getOp(name, path string) Operation {
	return Operation{
		Name:   name,
		Method: http.MethodGet,
		Path:   path,
		call: func(ctx context.Context, c *Client, _ Params) (json.RawMessage, error) {
			return c.Get(ctx, name, path, nil)
		},
	}
}

// Operations lists every supported operation in a stable order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

func periodsOrDefault(periods int) int {
	if periods <= 0 {
		return DefaultPeriods
	}
	return periods
}

// GetDashboard fetches the headline dashboard summary.
func (c *Client) GetDashboard(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpDashboard, "/api/analytics/dashboard", nil)
}

// GetDetailedStatistics fetches the extended statistics block.
func (c *Client) GetDetailedStatistics(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpDetailedStatistics, "/api/analytics/detailed-statistics", nil)
}

// GetOutlierAnalysis fetches outlier detection results.
func (c *Client) GetOutlierAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpOutlierAnalysis, "/api/analytics/outlier-analysis", nil)
}

// GetTrendAnalysis fetches the overall trend figures.
func (c *Client) GetTrendAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpTrendAnalysis, "/api/analytics/trend-analysis", nil)
}

// GetQuarterlyInsights fetches per-quarter statistics and recommendations.
func (c *Client) GetQuarterlyInsights(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpQuarterlyInsights, "/api/analytics/quarterly-insights", nil)
}

// GetDescriptive fetches descriptive statistics.
func (c *Client) GetDescriptive(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpDescriptive, "/api/statistics/descriptive", nil)
}

// GetCorrelation fetches correlation results.
func (c *Client) GetCorrelation(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpCorrelation, "/api/statistics/correlation", nil)
}

// GetNormalityTests fetches normality test results.
func (c *Client) GetNormalityTests(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpNormalityTests, "/api/statistics/normality-tests", nil)
}

// GetSimpleForecast fetches a simple forecast. periods <= 0 uses DefaultPeriods.
func (c *Client) GetSimpleForecast(ctx context.Context, periods int) (json.RawMessage, error) {
	query := url.Values{"periods": {strconv.Itoa(periodsOrDefault(periods))}}
	return c.Get(ctx, OpSimpleForecast, "/api/predictions/simple-forecast", query)
}

// GetSeasonalForecast fetches a seasonal forecast. periods <= 0 uses DefaultPeriods.
func (c *Client) GetSeasonalForecast(ctx context.Context, periods int) (json.RawMessage, error) {
	query := url.Values{"periods": {strconv.Itoa(periodsOrDefault(periods))}}
	return c.Get(ctx, OpSeasonalForecast, "/api/predictions/seasonal-forecast", query)
}

// GetConfidenceLevels fetches forecast confidence levels.
func (c *Client) GetConfidenceLevels(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpConfidenceLevels, "/api/predictions/confidence-levels", nil)
}

// GetModelComparison fetches the model comparison table.
func (c *Client) GetModelComparison(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpModelComparison, "/api/predictions/model-comparison", nil)
}

// GetAdvancedModelsInfo fetches metadata for the advanced models.
func (c *Client) GetAdvancedModelsInfo(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpAdvancedModelsInfo, "/api/predictions/advanced-models-info", nil)
}

// GetAdvancedForecast runs a named model forecast. nPeriods <= 0 uses
// DefaultPeriods. The parameters travel in the query string.
func (c *Client) GetAdvancedForecast(ctx context.Context, modelName string, nPeriods int) (json.RawMessage, error) {
	params := AdvancedForecastParams{ModelName: modelName, NPeriods: periodsOrDefault(nPeriods)}
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("analyticsapi: advanced forecast: %w", err)
	}
	query := url.Values{
		"model_name": {params.ModelName},
		"n_periods":  {strconv.Itoa(params.NPeriods)},
	}
	return c.Post(ctx, OpAdvancedForecast, "/api/predictions/advanced-forecast", query, nil)
}

// GetExecutiveSummary fetches the executive summary.
func (c *Client) GetExecutiveSummary(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpExecutiveSummary, "/api/insights/executive-summary", nil)
}

// GetPerformanceMetrics fetches performance metrics.
func (c *Client) GetPerformanceMetrics(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpPerformanceMetrics, "/api/insights/performance-metrics", nil)
}

// GetRiskAnalysis fetches the risk analysis.
func (c *Client) GetRiskAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpRiskAnalysis, "/api/insights/risk-analysis", nil)
}

// GetComparativeAnalysis fetches the comparative analysis.
func (c *Client) GetComparativeAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpComparativeAnalysis, "/api/insights/comparative-analysis", nil)
}

// GetActionPlan fetches the action plan.
func (c *Client) GetActionPlan(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, OpActionPlan, "/api/insights/action-plan", nil)
}
