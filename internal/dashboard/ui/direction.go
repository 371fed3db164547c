package ui

// Direction selects the indicator icon and color of a card.
type Direction string

// Directions.
const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// DirectionOf derives a direction from the sign of delta.
func DirectionOf(delta *float64) Direction {
	switch {
	case delta == nil:
		return DirectionNeutral
	case *delta > 0:
		return DirectionUp
	case *delta < 0:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// Icon returns the glyph shown next to the change.
func (d Direction) Icon() string {
	switch d {
	case DirectionUp:
		return "↗"
	case DirectionDown:
		return "↘"
	default:
		return "−"
	}
}

// TextClass returns the color class for the change text.
func (d Direction) TextClass() string {
	switch d {
	case DirectionUp:
		return "text-green"
	case DirectionDown:
		return "text-red"
	default:
		return "text-gray"
	}
}

// BadgeClass returns the background class for the icon badge.
func (d Direction) BadgeClass() string {
	switch d {
	case DirectionUp:
		return "badge-green"
	case DirectionDown:
		return "badge-red"
	default:
		return "badge-blue"
	}
}

// Risk levels reported by the service.
const (
	RiskHigh   = "Yüksək"
	RiskMedium = "Orta"
)

// Insight polarities reported by the service.
const (
	PolarityPositive = "Pozitiv"
	PolarityNegative = "Neqativ"
)

// RiskClass maps a risk level to its severity class.
func RiskClass(level string) string {
	switch level {
	case RiskHigh:
		return "text-red"
	case RiskMedium:
		return "text-yellow"
	default:
		return "text-green"
	}
}

// InsightClass maps an insight polarity to its card class.
func InsightClass(kind string) string {
	switch kind {
	case PolarityPositive:
		return "insight-positive"
	case PolarityNegative:
		return "insight-negative"
	default:
		return "insight-neutral"
	}
}
