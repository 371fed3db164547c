package dashboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Slot names one piece of view state filled from a single endpoint.
type Slot string

// Known slots.
const (
	SlotDashboard          Slot = "dashboard"
	SlotForecast           Slot = "forecast"
	SlotExecutiveSummary   Slot = "executiveSummary"
	SlotTrendAnalysis      Slot = "trendAnalysis"
	SlotQuarterlyInsights  Slot = "quarterlyInsights"
	SlotDetailedStatistics Slot = "detailedStatistics"
	SlotCorrelation        Slot = "correlation"
)

// Tab selects the panel being rendered.
type Tab string

// Tabs in display order.
const (
	TabDashboard Tab = "dashboard"
	TabForecast  Tab = "forecast"
	TabInsights  Tab = "insights"
	TabQuarterly Tab = "quarterly"
)

// Tabs lists the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabForecast, TabInsights, TabQuarterly}
}

// ParseTab resolves a tab id, falling back to the dashboard tab.
func ParseTab(raw string) (Tab, bool) {
	switch Tab(strings.ToLower(strings.TrimSpace(raw))) {
	case TabDashboard:
		return TabDashboard, true
	case TabForecast:
		return TabForecast, true
	case TabInsights:
		return TabInsights, true
	case TabQuarterly:
		return TabQuarterly, true
	default:
		return TabDashboard, false
	}
}

// Variant decides how many endpoints the load sequence fetches.
type Variant string

const (
	// VariantBaseline fetches the five core slots.
	VariantBaseline Variant = "baseline"
	// VariantExtended also fetches detailed statistics and correlation.
	VariantExtended Variant = "extended"
)

// ParseVariant validates a configured variant.
func ParseVariant(raw string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case VariantBaseline, "":
		return VariantBaseline, nil
	case VariantExtended:
		return VariantExtended, nil
	default:
		return "", fmt.Errorf("dashboard: unknown variant %q", raw)
	}
}

// State is the per-session view state. Slots hold the raw payload of the
// last successful batch; a missing key means the slot is absent.
type State struct {
	Slots        map[Slot]json.RawMessage `json:"slots"`
	Loading      bool                     `json:"loading"`
	LoadingSince time.Time                `json:"loading_since"`
	Mounted      bool                     `json:"mounted"`
	ActiveTab    Tab                      `json:"active_tab"`
	LoadedAt     time.Time                `json:"loaded_at"`
}

// NewState returns an empty state on the dashboard tab.
func NewState() State {
	return State{Slots: map[Slot]json.RawMessage{}, ActiveTab: TabDashboard}
}

// LoadingActive reports whether the loading flag belongs to a batch that may
// still be running at now. A flag older than staleAfter, or one without a
// start time, is abandoned. A non-positive staleAfter trusts the flag.
func (s State) LoadingActive(now time.Time, staleAfter time.Duration) bool {
	if !s.Loading {
		return false
	}
	if staleAfter <= 0 {
		return true
	}
	if s.LoadingSince.IsZero() {
		return false
	}
	return now.Sub(s.LoadingSince) < staleAfter
}

// Has reports whether slot holds a payload.
func (s State) Has(slot Slot) bool {
	_, ok := s.Slots[slot]
	return ok
}

// Snapshot is the decoded form of State's slots. Nil fields are absent.
type Snapshot struct {
	Dashboard          *Summary
	Forecast           *Forecast
	ExecutiveSummary   *ExecutiveSummary
	TrendAnalysis      *TrendAnalysis
	QuarterlyInsights  *QuarterlyInsights
	DetailedStatistics *DetailedStatistics
	Correlation        *Correlation
}

// Decode turns every present slot into its typed payload.
func (s State) Decode() (Snapshot, error) {
	var snap Snapshot
	for slot, raw := range s.Slots {
		if err := snap.set(slot, raw); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

func (snap *Snapshot) set(slot Slot, raw json.RawMessage) error {
	var target any
	switch slot {
	case SlotDashboard:
		snap.Dashboard = new(Summary)
		target = snap.Dashboard
	case SlotForecast:
		snap.Forecast = new(Forecast)
		target = snap.Forecast
	case SlotExecutiveSummary:
		snap.ExecutiveSummary = new(ExecutiveSummary)
		target = snap.ExecutiveSummary
	case SlotTrendAnalysis:
		snap.TrendAnalysis = new(TrendAnalysis)
		target = snap.TrendAnalysis
	case SlotQuarterlyInsights:
		snap.QuarterlyInsights = new(QuarterlyInsights)
		target = snap.QuarterlyInsights
	case SlotDetailedStatistics:
		snap.DetailedStatistics = new(DetailedStatistics)
		target = snap.DetailedStatistics
	case SlotCorrelation:
		snap.Correlation = new(Correlation)
		target = snap.Correlation
	default:
		return fmt.Errorf("dashboard: unknown slot %q", slot)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("dashboard: decode %s: %w", slot, err)
	}
	return nil
}
