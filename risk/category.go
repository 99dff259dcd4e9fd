// Package risk implements health risk assessment for US EPA Air Quality
// Index values: category classification, risk levels, advisory messages,
// vulnerable group warnings and outdoor exposure calculations. All
// operations are pure functions over constant tables and are safe for
// concurrent use.
package risk

import (
	"math"
)

// Category is an AQI category based on US EPA standards.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryGood
	CategoryModerate
	CategoryUnhealthySensitive
	CategoryUnhealthy
	CategoryVeryUnhealthy
	CategoryHazardous
)

// String returns the category label used by the US EPA and by API consumers.
func (c Category) String() string {
	switch c {
	case CategoryGood:
		return "Good"
	case CategoryModerate:
		return "Moderate"
	case CategoryUnhealthySensitive:
		return "Unhealthy for Sensitive Groups"
	case CategoryUnhealthy:
		return "Unhealthy"
	case CategoryVeryUnhealthy:
		return "Very Unhealthy"
	case CategoryHazardous:
		return "Hazardous"
	default:
		return "Unknown"
	}
}

// Color returns the EPA hex color code for the category, for dashboards.
func (c Category) Color() string {
	switch c {
	case CategoryGood:
		return "#00E400"
	case CategoryModerate:
		return "#FFFF00"
	case CategoryUnhealthySensitive:
		return "#FF7E00"
	case CategoryUnhealthy:
		return "#FF0000"
	case CategoryVeryUnhealthy:
		return "#8F3F97"
	case CategoryHazardous:
		return "#7E0023"
	default:
		return ""
	}
}

// Level is a qualitative health risk level derived from an AQI category.
type Level int

const (
	LevelUnknown Level = iota
	LevelLow
	LevelModerate
	LevelHigh
	LevelVeryHigh
	LevelExtreme
)

// String returns the risk level label.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelModerate:
		return "Moderate"
	case LevelHigh:
		return "High"
	case LevelVeryHigh:
		return "Very High"
	case LevelExtreme:
		return "Extreme"
	default:
		return "Unknown"
	}
}

// Group identifies a vulnerable population with elevated sensitivity to
// air pollution. Identifiers match the wire format used by API consumers.
type Group string

const (
	GroupChildren     Group = "children"
	GroupElderly      Group = "elderly"
	GroupPregnant     Group = "pregnant_women"
	GroupAsthma       Group = "asthma_patients"
	GroupHeartDisease Group = "heart_disease_patients"
	GroupCOPD         Group = "copd_patients"
	GroupAthletes     Group = "athletes"
)

// Groups lists all known vulnerable groups in display order.
func Groups() []Group {
	return []Group{
		GroupChildren,
		GroupElderly,
		GroupPregnant,
		GroupAsthma,
		GroupHeartDisease,
		GroupCOPD,
		GroupAthletes,
	}
}

// categoryBounds holds the closed AQI intervals per category, ascending.
// The intervals partition [0, 500]; fractional values between adjacent
// integer bounds (e.g. 50.5) belong to the higher category.
var categoryBounds = []struct {
	category  Category
	low, high float64
}{
	{CategoryGood, 0, 50},
	{CategoryModerate, 51, 100},
	{CategoryUnhealthySensitive, 101, 150},
	{CategoryUnhealthy, 151, 200},
	{CategoryVeryUnhealthy, 201, 300},
	{CategoryHazardous, 301, 500},
}

// Classify maps an AQI value to its category. Values above 500 are still
// Hazardous. NaN and negative values are unclassifiable and report false;
// callers receive CategoryUnknown and must not treat it as an error.
func Classify(aqi float64) (Category, bool) {
	if math.IsNaN(aqi) || aqi < 0 {
		return CategoryUnknown, false
	}

	for _, b := range categoryBounds {
		if aqi <= b.high {
			return b.category, true
		}
	}

	// AQI > 500 is still hazardous
	return CategoryHazardous, true
}
