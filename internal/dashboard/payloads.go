package dashboard

// The types below mirror the response contract of the analytics service.
// JSON keys are the service's own; optional members decode to nil. Text that
// is only displayed decodes as Label so a changed scalar type does not fail
// the batch.

// Figure is a single headline value.
type Figure struct {
	Value *float64 `json:"dəyər"`
}

// LatestPeriod is the most recent period with its change versus the prior one.
type LatestPeriod struct {
	Period       Label    `json:"dövr"`
	Value        *float64 `json:"dəyər"`
	Delta        *float64 `json:"artım"`
	DeltaPercent *float64 `json:"artım_faiz"`
}

// CoreFigures groups the headline indicators.
type CoreFigures struct {
	LatestPeriod LatestPeriod `json:"son_dövr"`
	Mean         Figure       `json:"ortalama_dəyər"`
}

// ValueRange holds the observed extremes.
type ValueRange struct {
	Min Figure `json:"minimum"`
	Max Figure `json:"maksimum"`
}

// YearComparison is one bar of the year-over-year chart.
type YearComparison struct {
	Year  Label    `json:"il"`
	Total *float64 `json:"məbləğ"`
}

// Summary is the dashboard endpoint payload.
type Summary struct {
	Core         CoreFigures      `json:"əsas_göstəricilər"`
	Range        ValueRange       `json:"diapazon"`
	YearOverYear []YearComparison `json:"illik_müqayisə"`
}

// ForecastPoint is one forecast period.
type ForecastPoint struct {
	Period   Label    `json:"dövr"`
	Forecast *float64 `json:"kombinə_proqnoz"`
	Lower95  *float64 `json:"aşağı_sərhəd_95"`
	Upper95  *float64 `json:"yuxarı_sərhəd_95"`
}

// Forecast is the simple-forecast payload.
type Forecast struct {
	Points []ForecastPoint `json:"proqnozlar"`
}

// RiskAssessment carries the qualitative risk level.
type RiskAssessment struct {
	Level       Label `json:"səviyyə"`
	Description Label `json:"təsvir"`
}

// Amount wraps a monetary figure.
type Amount struct {
	Value *float64 `json:"məbləğ"`
}

// Percent wraps a percentage figure.
type Percent struct {
	Value *float64 `json:"faiz"`
}

// ExecutiveFigures are the executive key numbers.
type ExecutiveFigures struct {
	Current Amount  `json:"cari_dəyər"`
	QoQ     Percent `json:"rüb_rüb_dəyişiklik"`
}

// Insight is a single finding with polarity and priority.
type Insight struct {
	Kind     Label `json:"tip"`
	Title    Label `json:"başlıq"`
	Body     Label `json:"məzmun"`
	Priority Label `json:"prioritet"`
}

// Recommendation is an actionable suggestion.
type Recommendation struct {
	Area           Label `json:"sahə"`
	Text           Label `json:"tövsiyə"`
	ExpectedImpact Label `json:"gözlənilən_təsir"`
}

// NextStep is one entry of the next-steps grid.
type NextStep struct {
	Step     Label `json:"addım"`
	Owner    Label `json:"məsul"`
	Deadline Label `json:"müddət"`
}

// ExecutiveSummary is the executive-summary payload.
type ExecutiveSummary struct {
	Risk             *RiskAssessment  `json:"risk_qiymətləndirməsi"`
	Figures          ExecutiveFigures `json:"əsas_rəqəmlər"`
	Insights         []Insight        `json:"əsas_təhlillər"`
	Recommendations  []Recommendation `json:"tövsiyələr"`
	NextSteps        []NextStep       `json:"növbəti_addımlar"`
	CriticalFindings []Label          `json:"kritik_tapıntılar"`
}

// TrendStrength holds the goodness of fit of the trend line.
type TrendStrength struct {
	R2 Label `json:"R²"`
}

// OverallTrend summarises the long-run trend.
type OverallTrend struct {
	Direction          Label         `json:"trend_istiqaməti"`
	Strength           TrendStrength `json:"güclülük"`
	AvgQuarterlyChange *float64      `json:"ortalama_rüblük_dəyişmə"`
}

// TrendAnalysis is the trend-analysis payload.
type TrendAnalysis struct {
	Overall OverallTrend `json:"ümumi_trend"`
}

// QuarterHighlight describes the best or worst quarter.
type QuarterHighlight struct {
	Quarter             Label    `json:"rüb"`
	Mean                *float64 `json:"ortalama"`
	ActionPlan          []Label  `json:"fəaliyyət_planı"`
	ImprovementStrategy []Label  `json:"təkmilləşdirmə_strategiyası"`
}

// QuarterComparison pairs the best and worst quarter.
type QuarterComparison struct {
	Best  QuarterHighlight `json:"ən_yaxşı_rüb"`
	Worst QuarterHighlight `json:"ən_zəif_rüb"`
}

// QuarterlyInsights is the quarterly-insights payload.
type QuarterlyInsights struct {
	Quarters                QuarterStatsList  `json:"rüblər_üzrə_statistika"`
	Comparison              QuarterComparison `json:"müqayisəli_təhlil"`
	BusinessRecommendations []Label           `json:"biznes_tövsiyələri"`
	OverallStrategy         KeyValues         `json:"ümumi_strategiya"`
}

// YearlyTotal is one year of the composed totals/growth chart.
type YearlyTotal struct {
	Year          Label    `json:"il"`
	Total         *float64 `json:"cəm"`
	GrowthPercent *float64 `json:"artım_faiz"`
}

// Spread compares central tendency and dispersion.
type Spread struct {
	Mean   *float64 `json:"ortalama"`
	Median *float64 `json:"median"`
	StdDev *float64 `json:"standart_sapma"`
}

// DetailedStatistics is the detailed-statistics payload.
type DetailedStatistics struct {
	QuarterAverages NumberList    `json:"rüblük_ortalamalar"`
	YearlyTotals    []YearlyTotal `json:"illik_cəmlər"`
	Spread          *Spread       `json:"yayılma"`
}

// CorrelationPair is one measured relationship.
type CorrelationPair struct {
	First       Label    `json:"dəyişən_1"`
	Second      Label    `json:"dəyişən_2"`
	Coefficient *float64 `json:"əmsal"`
	Strength    Label    `json:"güc"`
}

// Correlation is the correlation payload.
type Correlation struct {
	Pairs []CorrelationPair `json:"əlaqələr"`
}
