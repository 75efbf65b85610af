package models

// SummaryRequest asks for descriptive statistics over a series.
type SummaryRequest struct {
	Values []float64 `json:"values" validate:"required,min=1"`
}

// TrendRequest asks for trend analysis over a timestamped series.
type TrendRequest struct {
	Values     []float64 `json:"values" validate:"required,min=3"`
	Timestamps []int64   `json:"timestamps,omitempty"` // epoch millis; index positions when omitted
}

// CorrelationRequest asks for pairwise correlation between two series of
// equal length.
type CorrelationRequest struct {
	X []float64 `json:"x" validate:"required,min=3"`
	Y []float64 `json:"y" validate:"required,min=3"`
}

// ForecastRequest asks for projections over a timestamped series. A nil
// Horizon means the configured default; an explicit 0 is honored and yields
// empty prediction lists.
type ForecastRequest struct {
	Values     []float64 `json:"values" validate:"required,min=10"`
	Timestamps []int64   `json:"timestamps,omitempty"`
	Horizon    *int      `json:"horizon,omitempty"`
}

// InsightsRequest asks for synthesized findings over a primary series plus
// optional companion series for correlation insights.
type InsightsRequest struct {
	Values     []float64            `json:"values" validate:"required,min=1"`
	Timestamps []int64              `json:"timestamps,omitempty"`
	Correlated map[string][]float64 `json:"correlated,omitempty"`
}
