package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ForecastPeriods is the horizon requested by the load sequence.
const ForecastPeriods = 4

// Source is the subset of the analytics client the load sequence uses.
type Source interface {
	GetDashboard(ctx context.Context) (json.RawMessage, error)
	GetSimpleForecast(ctx context.Context, periods int) (json.RawMessage, error)
	GetExecutiveSummary(ctx context.Context) (json.RawMessage, error)
	GetTrendAnalysis(ctx context.Context) (json.RawMessage, error)
	GetQuarterlyInsights(ctx context.Context) (json.RawMessage, error)
	GetDetailedStatistics(ctx context.Context) (json.RawMessage, error)
	GetCorrelation(ctx context.Context) (json.RawMessage, error)
}

type request struct {
	slot  Slot
	fetch func(ctx context.Context, src Source) (json.RawMessage, error)
}

var baselineRequests = []request{
	{SlotDashboard, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetDashboard(ctx) }},
	{SlotForecast, func(ctx context.Context, src Source) (json.RawMessage, error) {
		return src.GetSimpleForecast(ctx, ForecastPeriods)
	}},
	{SlotExecutiveSummary, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetExecutiveSummary(ctx) }},
	{SlotTrendAnalysis, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetTrendAnalysis(ctx) }},
	{SlotQuarterlyInsights, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetQuarterlyInsights(ctx) }},
}

var extendedRequests = append(append([]request{}, baselineRequests...),
	request{SlotDetailedStatistics, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetDetailedStatistics(ctx) }},
	request{SlotCorrelation, func(ctx context.Context, src Source) (json.RawMessage, error) { return src.GetCorrelation(ctx) }},
)

// Slots returns the slots a variant fills, in request order.
func (v Variant) Slots() []Slot {
	reqs := v.requests()
	out := make([]Slot, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.slot)
	}
	return out
}

func (v Variant) requests() []request {
	if v == VariantExtended {
		return extendedRequests
	}
	return baselineRequests
}

// Loader runs the batch fetch and commits results to a Store.
type Loader struct {
	store   Store
	variant Variant
	logger  *slog.Logger
	now     func() time.Time
}

// NewLoader constructs a Loader.
func NewLoader(store Store, variant Variant, logger *slog.Logger) *Loader {
	return &Loader{store: store, variant: variant, logger: logger, now: time.Now}
}

// WithNow overrides the loader clock for testing.
func (l *Loader) WithNow(fn func() time.Time) {
	if fn != nil {
		l.now = fn
	}
}

// Variant returns the configured variant.
func (l *Loader) Variant() Variant {
	return l.variant
}

// Load runs the load sequence for one session. Every request settles before
// the outcome is decided. On success every slot is replaced in one write; on
// any failure no slot changes. The loading flag is cleared either way and
// the returned state is what was committed. When the commit itself fails the
// flag is cleared in a second write so the session does not stay loading.
func (l *Loader) Load(ctx context.Context, sessionID string, src Source) (State, error) {
	if src == nil {
		return State{}, errors.New("dashboard: source not configured")
	}
	state, err := l.store.Get(ctx, sessionID)
	if err != nil {
		return State{}, fmt.Errorf("dashboard: read state: %w", err)
	}
	state.Loading = true
	state.LoadingSince = l.now().UTC()
	if err := l.store.Put(ctx, sessionID, state); err != nil {
		return State{}, fmt.Errorf("dashboard: mark loading: %w", err)
	}

	results, batchErr := l.fetchAll(ctx, src)

	// Re-read so a tab switch made while the batch was in flight survives.
	current, err := l.store.Get(ctx, sessionID)
	if err != nil {
		current = state
	}
	current.Loading = false
	current.LoadingSince = time.Time{}
	current.Mounted = true
	if batchErr == nil {
		slots := make(map[Slot]json.RawMessage, len(results))
		for slot, raw := range results {
			slots[slot] = raw
		}
		current.Slots = slots
		current.LoadedAt = l.now().UTC()
	}
	if err := l.store.Put(ctx, sessionID, current); err != nil {
		commitErr := fmt.Errorf("dashboard: commit state: %w", err)
		l.clearLoading(ctx, sessionID, state)
		return current, errors.Join(batchErr, commitErr)
	}
	if batchErr != nil {
		l.log().Error("dashboard batch failed", slog.String("session", sessionID), slog.Any("error", batchErr))
		return current, batchErr
	}
	l.log().Info("dashboard batch loaded", slog.String("session", sessionID), slog.Int("slots", len(results)))
	return current, nil
}

// clearLoading writes the pre-batch state back with the flag cleared. It is
// best effort; a failure is only logged.
func (l *Loader) clearLoading(ctx context.Context, sessionID string, previous State) {
	previous.Loading = false
	previous.LoadingSince = time.Time{}
	if err := l.store.Put(ctx, sessionID, previous); err != nil {
		l.log().Warn("dashboard loading flag not cleared", slog.String("session", sessionID), slog.Any("error", err))
	}
}

func (l *Loader) fetchAll(ctx context.Context, src Source) (map[Slot]json.RawMessage, error) {
	reqs := l.variant.requests()
	raws := make([]json.RawMessage, len(reqs))

	var g errgroup.Group
	for i, req := range reqs {
		g.Go(func() error {
			raw, err := req.fetch(ctx, src)
			if err != nil {
				return err
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[Slot]json.RawMessage, len(reqs))
	var snap Snapshot
	for i, req := range reqs {
		if err := snap.set(req.slot, raws[i]); err != nil {
			return nil, err
		}
		results[req.slot] = raws[i]
	}
	return results, nil
}

func (l *Loader) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}
