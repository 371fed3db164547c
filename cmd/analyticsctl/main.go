package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/analytics-dashboard/cmd/analyticsctl/cli"
	"github.com/odyssey-erp/analytics-dashboard/internal/analyticsapi"
	"github.com/odyssey-erp/analytics-dashboard/internal/app"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaultBase := app.DefaultAnalyticsAPIURL
	if v, ok := os.LookupEnv("ANALYTICS_API_URL"); ok && v != "" {
		defaultBase = v
	}

	base := flag.String("base", defaultBase, "analytics service base URL")
	op := flag.String("op", "", "operation to call, e.g. dashboard or simple-forecast")
	periods := flag.Int("periods", 0, "forecast periods (0 uses the service default)")
	model := flag.String("model", "", "model name for advanced-forecast")
	compact := flag.Bool("compact", false, "print compact JSON")
	list := flag.Bool("list", false, "list operations and exit")
	batch := flag.String("batch", "", "run the dashboard load sequence for a variant (baseline|extended)")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := analyticsapi.New(*base, analyticsapi.WithHTTPClient(&http.Client{Timeout: *timeout}))
	ctl, err := cli.NewAnalyticsCLI(client)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	switch {
	case *list:
		return ctl.ListCommand(os.Stdout)
	case *batch != "":
		variant, err := dashboard.ParseVariant(*batch)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return ctl.BatchCommand(ctx, cli.BatchOptions{Variant: variant, Stdout: os.Stdout, Stderr: os.Stderr})
	case *op != "":
		return ctl.CallCommand(ctx, cli.CallOptions{
			Operation: *op,
			Periods:   *periods,
			Model:     *model,
			Compact:   *compact,
			Stdout:    os.Stdout,
			Stderr:    os.Stderr,
		})
	default:
		flag.Usage()
		return 2
	}
}
