package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/odyssey-erp/analytics-dashboard/internal/analyticsapi"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

// CallOptions configures a single operation call.
type CallOptions struct {
	Operation string
	Periods   int
	Model     string
	Compact   bool
	Stdout    io.Writer
	Stderr    io.Writer
}

// BatchOptions configures a dry run of the dashboard load sequence.
type BatchOptions struct {
	Variant dashboard.Variant
	Stdout  io.Writer
	Stderr  io.Writer
}

// BatchSummary is the JSON printed after a batch run.
type BatchSummary struct {
	Variant  dashboard.Variant `json:"variant"`
	Slots    []dashboard.Slot  `json:"slots"`
	LoadedAt time.Time         `json:"loaded_at"`
}

// AnalyticsCLI exposes the analytics operations on the command line.
type AnalyticsCLI struct {
	client *analyticsapi.Client
}

// NewAnalyticsCLI constructs the helper around a configured client.
func NewAnalyticsCLI(client *analyticsapi.Client) (*AnalyticsCLI, error) {
	if client == nil {
		return nil, errors.New("analyticsctl: client not configured")
	}
	if client.SameOrigin() {
		return nil, errors.New("analyticsctl: an explicit base URL is required")
	}
	return &AnalyticsCLI{client: client}, nil
}

// ListCommand prints every known operation.
func (c *AnalyticsCLI) ListCommand(out io.Writer) int {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, op := range analyticsapi.Operations() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", op.Name, op.Method, op.Path)
	}
	if err := tw.Flush(); err != nil {
		return 1
	}
	return 0
}

// CallCommand runs one operation and prints its JSON body.
func (c *AnalyticsCLI) CallCommand(ctx context.Context, opts CallOptions) int {
	op, ok := analyticsapi.Lookup(opts.Operation)
	if !ok {
		fmt.Fprintf(opts.Stderr, "unknown operation %q (use -list)\n", opts.Operation)
		return 2
	}
	raw, err := op.Call(ctx, c.client, analyticsapi.Params{Periods: opts.Periods, ModelName: opts.Model})
	if err != nil {
		fmt.Fprintf(opts.Stderr, "%s failed: %s\n", op.Name, analyticsapi.Message(err))
		return 1
	}
	if err := writeJSON(opts.Stdout, raw, opts.Compact); err != nil {
		fmt.Fprintf(opts.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

// BatchCommand runs the dashboard load sequence once against an in-memory
// store and reports which slots were filled.
func (c *AnalyticsCLI) BatchCommand(ctx context.Context, opts BatchOptions) int {
	loader := dashboard.NewLoader(dashboard.NewMemoryStore(), opts.Variant, nil)
	state, err := loader.Load(ctx, "analyticsctl", c.client)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "batch failed: %s\n", analyticsapi.Message(err))
		return 1
	}
	summary := BatchSummary{Variant: opts.Variant, LoadedAt: state.LoadedAt}
	for slot := range state.Slots {
		summary.Slots = append(summary.Slots, slot)
	}
	sort.Slice(summary.Slots, func(i, j int) bool { return summary.Slots[i] < summary.Slots[j] })

	data, err := json.Marshal(summary)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "encode summary: %v\n", err)
		return 1
	}
	if err := writeJSON(opts.Stdout, data, false); err != nil {
		fmt.Fprintf(opts.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func writeJSON(out io.Writer, raw []byte, compact bool) error {
	var buf bytes.Buffer
	var err error
	if compact {
		err = json.Compact(&buf, raw)
	} else {
		err = json.Indent(&buf, raw, "", "  ")
	}
	if err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = out.Write(buf.Bytes())
	return err
}
