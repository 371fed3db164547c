package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
)

// WriteForecastCSV emits the forecast table as CSV. A nil forecast still
// produces the header row.
func WriteForecastCSV(w io.Writer, forecast *dashboard.Forecast) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Dövr", "Proqnoz", "Aşağı Sərhəd", "Yuxarı Sərhəd"}); err != nil {
		return err
	}
	if forecast != nil {
		for _, point := range forecast.Points {
			if err := writer.Write([]string{
				point.Period.String(),
				formatFloat(point.Forecast),
				formatFloat(point.Lower95),
				formatFloat(point.Upper95),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteQuarterlyCSV emits per-quarter statistics in service order.
func WriteQuarterlyCSV(w io.Writer, insights *dashboard.QuarterlyInsights) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Rüb", "Ortalama", "Minimum", "Maksimum"}); err != nil {
		return err
	}
	if insights != nil {
		for _, entry := range insights.Quarters {
			if err := writer.Write([]string{
				entry.Quarter,
				formatFloat(entry.Stats.Mean),
				formatFloat(entry.Stats.Min),
				formatFloat(entry.Stats.Max),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
