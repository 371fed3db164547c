package analyticsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	path        string
	query       string
	contentType string
}

func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestOperationsUseFixedMethodAndPath(t *testing.T) {
	expected := map[string][2]string{
		OpDashboard:           {http.MethodGet, "/api/analytics/dashboard"},
		OpDetailedStatistics:  {http.MethodGet, "/api/analytics/detailed-statistics"},
		OpOutlierAnalysis:     {http.MethodGet, "/api/analytics/outlier-analysis"},
		OpTrendAnalysis:       {http.MethodGet, "/api/analytics/trend-analysis"},
		OpQuarterlyInsights:   {http.MethodGet, "/api/analytics/quarterly-insights"},
		OpDescriptive:         {http.MethodGet, "/api/statistics/descriptive"},
		OpCorrelation:         {http.MethodGet, "/api/statistics/correlation"},
		OpNormalityTests:      {http.MethodGet, "/api/statistics/normality-tests"},
		OpSimpleForecast:      {http.MethodGet, "/api/predictions/simple-forecast"},
		OpSeasonalForecast:    {http.MethodGet, "/api/predictions/seasonal-forecast"},
		OpConfidenceLevels:    {http.MethodGet, "/api/predictions/confidence-levels"},
		OpModelComparison:     {http.MethodGet, "/api/predictions/model-comparison"},
		OpAdvancedModelsInfo:  {http.MethodGet, "/api/predictions/advanced-models-info"},
		OpAdvancedForecast:    {http.MethodPost, "/api/predictions/advanced-forecast"},
		OpExecutiveSummary:    {http.MethodGet, "/api/insights/executive-summary"},
		OpPerformanceMetrics:  {http.MethodGet, "/api/insights/performance-metrics"},
		OpRiskAnalysis:        {http.MethodGet, "/api/insights/risk-analysis"},
		OpComparativeAnalysis: {http.MethodGet, "/api/insights/comparative-analysis"},
		OpActionPlan:          {http.MethodGet, "/api/insights/action-plan"},
	}
	ops := Operations()
	require.Len(t, ops, len(expected))

	for _, op := range ops {
		t.Run(op.Name, func(t *testing.T) {
			srv, seen := newRecordingServer(t, http.StatusOK, `{"ok":true}`)
			client := New(srv.URL)
			_, err := op.Call(context.Background(), client, Params{ModelName: "prophet"})
			require.NoError(t, err)
			require.Len(t, *seen, 1)
			want := expected[op.Name]
			assert.Equal(t, want[0], (*seen)[0].method)
			assert.Equal(t, want[1], (*seen)[0].path)
			assert.Equal(t, want[0], op.Method)
			assert.Equal(t, want[1], op.Path)
			assert.Equal(t, "application/json", (*seen)[0].contentType)
		})
	}
}

func TestForecastPeriodsDefault(t *testing.T) {
	srv, seen := newRecordingServer(t, http.StatusOK, `{}`)
	client := New(srv.URL)
	ctx := context.Background()

	_, err := client.GetSimpleForecast(ctx, 0)
	require.NoError(t, err)
	_, err = client.GetSeasonalForecast(ctx, 8)
	require.NoError(t, err)
	_, err = client.GetAdvancedForecast(ctx, "xgboost", 0)
	require.NoError(t, err)

	require.Len(t, *seen, 3)
	assert.Equal(t, "periods=4", (*seen)[0].query)
	assert.Equal(t, "periods=8", (*seen)[1].query)
	assert.Equal(t, "model_name=xgboost&n_periods=4", (*seen)[2].query)
}

func TestAdvancedForecastRequiresModel(t *testing.T) {
	srv, seen := newRecordingServer(t, http.StatusOK, `{}`)
	_, err := New(srv.URL).GetAdvancedForecast(context.Background(), "", 4)
	require.Error(t, err)
	assert.Empty(t, *seen)
}

func TestStatusErrorExposesDetail(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusInternalServerError, `{"detail":"Model registry missing"}`)
	_, err := New(srv.URL).GetDashboard(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindStatus, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	detail, ok := Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "Model registry missing", detail)
	assert.Equal(t, "Model registry missing", Message(err))
}

func TestStatusErrorWithoutDetailFallsBack(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusNotFound, `{"detail":[{"loc":["query"]}]}`)
	_, err := New(srv.URL).GetTrendAnalysis(context.Background())
	require.Error(t, err)
	_, ok := Detail(err)
	assert.False(t, ok)
	assert.Equal(t, "Request failed with status code 404", Message(err))
}

func TestDecodeErrorOnInvalidBody(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `<html>oops</html>`)
	_, err := New(srv.URL).GetQuarterlyInsights(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindDecode, apiErr.Kind)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(addr).GetExecutiveSummary(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Contains(t, Message(err), "Network Error")
}

func TestForOrigin(t *testing.T) {
	explicit := New("https://api.example.com/")
	assert.Same(t, explicit, explicit.ForOrigin("http://page.local"))
	assert.Equal(t, "https://api.example.com", explicit.BaseURL())

	relative := New("")
	assert.True(t, relative.SameOrigin())
	bound := relative.ForOrigin("http://page.local/")
	assert.Equal(t, "http://page.local", bound.BaseURL())
	assert.Equal(t, "", relative.BaseURL())

	prefixed := New("/backend/")
	assert.True(t, prefixed.SameOrigin())
	assert.Equal(t, "https://page.local/backend", prefixed.ForOrigin("https://page.local").BaseURL())
}

type countingObserver struct {
	mu     sync.Mutex
	calls  map[string]int
	status []int
}

func (o *countingObserver) ObserveAPICall(operation string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[operation]++
	o.status = append(o.status, status)
}

func TestObserverSeesEveryCall(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[]`)
	obs := &countingObserver{}
	client := New(srv.URL, WithObserver(obs))
	_, err := client.GetActionPlan(context.Background())
	require.NoError(t, err)
	_, err = client.GetActionPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, obs.calls[OpActionPlan])
	assert.Equal(t, []int{200, 200}, obs.status)
}

func TestLookup(t *testing.T) {
	op, ok := Lookup(OpRiskAnalysis)
	require.True(t, ok)
	assert.Equal(t, "/api/insights/risk-analysis", op.Path)
	_, ok = Lookup("nope")
	assert.False(t, ok)
}
