// Package aqi converts raw PM2.5 concentrations to US EPA Air Quality
// Index values using the standard piecewise-linear breakpoint table.
package aqi

import (
	"math"
)

// pm25Breakpoints holds the US EPA AQI breakpoints for PM2.5 (µg/m³).
// Each row maps a concentration interval onto an AQI interval.
var pm25Breakpoints = []struct {
	concLow, concHigh float64
	aqiLow, aqiHigh   float64
}{
	{0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 500.4, 301, 500},
}

// FromPM25 converts a PM2.5 concentration in µg/m³ to an AQI value by
// linear interpolation within the matching breakpoint row, rounded to the
// nearest integer. Concentrations beyond the top of the scale map to 500.
// Returns false for NaN or negative input.
func FromPM25(pm25 float64) (int, bool) {
	if math.IsNaN(pm25) || pm25 < 0 {
		return 0, false
	}

	for _, bp := range pm25Breakpoints {
		if bp.concLow <= pm25 && pm25 <= bp.concHigh {
			aqi := ((bp.aqiHigh-bp.aqiLow)/(bp.concHigh-bp.concLow))*(pm25-bp.concLow) + bp.aqiLow
			return int(math.Round(aqi)), true
		}
	}

	// Beyond the scale
	if pm25 > 500.4 {
		return 500, true
	}

	// Concentrations that fall between adjacent rows (e.g. 12.05) are not
	// covered by the EPA table; callers should treat the reading as unusable.
	return 0, false
}
