package ui

import (
	"testing"

	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

func BenchmarkPageAllTabs(b *testing.B) {
	format, err := NewFormatter("az")
	if err != nil {
		b.Fatalf("formatter: %v", err)
	}
	builder := NewBuilder(format, nil)
	state := dashboard.NewState()
	for slot, raw := range map[dashboard.Slot]string{
		dashboard.SlotDashboard:          summaryJSON,
		dashboard.SlotForecast:           forecastJSON,
		dashboard.SlotExecutiveSummary:   executiveJSON,
		dashboard.SlotTrendAnalysis:      trendJSON,
		dashboard.SlotQuarterlyInsights:  quarterlyJSON,
		dashboard.SlotDetailedStatistics: detailedJSON,
		dashboard.SlotCorrelation:        correlJSON,
	} {
		state.Slots[slot] = []byte(raw)
	}
	snap, err := state.Decode()
	if err != nil {
		b.Fatalf("decode: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tab := range dashboard.Tabs() {
			state.ActiveTab = tab
			if _, err := builder.Page(state, snap); err != nil {
				b.Fatalf("page %s: %v", tab, err)
			}
		}
	}
}
