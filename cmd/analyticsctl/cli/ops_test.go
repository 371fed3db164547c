package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/analytics-dashboard/internal/analyticsapi"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/predictions/simple-forecast":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"periods":"` + r.URL.Query().Get("periods") + `"}`))
		case "/api/insights/risk-analysis":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Risk modeli hazır deyil"}`))
		case "/api/analytics/dashboard", "/api/insights/executive-summary", "/api/analytics/trend-analysis", "/api/analytics/quarterly-insights":
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewAnalyticsCLIRequiresBase(t *testing.T) {
	_, err := NewAnalyticsCLI(nil)
	require.Error(t, err)
	_, err = NewAnalyticsCLI(analyticsapi.New(""))
	require.Error(t, err)
}

func TestCallCommandPrintsJSON(t *testing.T) {
	server := newAPIServer(t)
	cli, err := NewAnalyticsCLI(analyticsapi.New(server.URL))
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := cli.CallCommand(context.Background(), CallOptions{
		Operation: analyticsapi.OpSimpleForecast,
		Periods:   8,
		Compact:   true,
		Stdout:    stdout,
		Stderr:    stderr,
	})
	require.Zero(t, code)
	require.Empty(t, stderr.String())
	require.Equal(t, "{\"periods\":\"8\"}\n", stdout.String())
}

func TestCallCommandReportsServerDetail(t *testing.T) {
	server := newAPIServer(t)
	cli, err := NewAnalyticsCLI(analyticsapi.New(server.URL))
	require.NoError(t, err)

	stderr := new(bytes.Buffer)
	code := cli.CallCommand(context.Background(), CallOptions{
		Operation: analyticsapi.OpRiskAnalysis,
		Stdout:    new(bytes.Buffer),
		Stderr:    stderr,
	})
	require.Equal(t, 1, code)
	require.Equal(t, "risk-analysis failed: Risk modeli hazır deyil\n", stderr.String())
}

func TestCallCommandUnknownOperation(t *testing.T) {
	cli, err := NewAnalyticsCLI(analyticsapi.New("http://127.0.0.1:1"))
	require.NoError(t, err)

	stderr := new(bytes.Buffer)
	code := cli.CallCommand(context.Background(), CallOptions{Operation: "nope", Stdout: new(bytes.Buffer), Stderr: stderr})
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), `unknown operation "nope"`)
}

func TestListCommand(t *testing.T) {
	cli, err := NewAnalyticsCLI(analyticsapi.New("http://127.0.0.1:1"))
	require.NoError(t, err)

	out := new(bytes.Buffer)
	require.Zero(t, cli.ListCommand(out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(analyticsapi.Operations()))
	require.Contains(t, out.String(), "/api/predictions/advanced-forecast")
}

func TestBatchCommand(t *testing.T) {
	server := newAPIServer(t)
	cli, err := NewAnalyticsCLI(analyticsapi.New(server.URL))
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	code := cli.BatchCommand(context.Background(), BatchOptions{Variant: dashboard.VariantBaseline, Stdout: stdout, Stderr: stderr})
	require.Zero(t, code, stderr.String())

	var summary BatchSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.Equal(t, dashboard.VariantBaseline, summary.Variant)
	require.Len(t, summary.Slots, 5)

	stderr.Reset()
	code = cli.BatchCommand(context.Background(), BatchOptions{Variant: dashboard.VariantExtended, Stdout: new(bytes.Buffer), Stderr: stderr})
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "batch failed")
}
