package risk

import (
	"math"
	"sort"
)

// ExposureSummary describes a day's pollution exposure over outdoor hours.
type ExposureSummary struct {
	TotalExposure    float64 `json:"total_exposure"`
	AverageExposure  float64 `json:"average_exposure"`
	PeakExposure     float64 `json:"peak_exposure"`
	ExposureCategory string  `json:"exposure_category"`
	HoursOutdoors    int     `json:"hours_outdoors"`
}

// BestOutdoorWindow finds the start of the contiguous window of exactly
// durationHours consecutive hour keys with the lowest mean AQI. Only
// windows where every hour in the span is present are considered; windows
// spanning a gap are skipped, not padded. Ties go to the earliest start
// hour. Returns false when no complete window exists or durationHours < 1.
func BestOutdoorWindow(hourlyAQI map[int]float64, durationHours int) (startHour int, averageAQI float64, ok bool) {
	if len(hourlyAQI) == 0 || durationHours < 1 {
		return 0, 0, false
	}

	hours := make([]int, 0, len(hourlyAQI))
	for h := range hourlyAQI {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	bestAvg := math.Inf(1)
	found := false

	for _, start := range hours {
		sum := 0.0
		count := 0
		for _, h := range hours {
			if h >= start && h < start+durationHours {
				sum += hourlyAQI[h]
				count++
			}
		}

		if count != durationHours {
			continue
		}

		avg := sum / float64(durationHours)
		if avg < bestAvg {
			bestAvg = avg
			startHour = start
			found = true
		}
	}

	if !found {
		return 0, 0, false
	}
	return startHour, bestAvg, true
}

// DailyExposure sums and averages AQI over the given outdoor hour keys.
// An outdoor hour missing from hourlyAQI counts as exposure 0 and stays in
// the average divisor; downstream consumers depend on this behavior.
func DailyExposure(hourlyAQI map[int]float64, outdoorHours []int) ExposureSummary {
	if len(outdoorHours) == 0 {
		return ExposureSummary{ExposureCategory: "Minimal"}
	}

	total := 0.0
	peak := 0.0
	for _, h := range outdoorHours {
		value := hourlyAQI[h]
		total += value
		if value > peak {
			peak = value
		}
	}
	average := total / float64(len(outdoorHours))

	var category string
	switch {
	case average <= 50:
		category = "Low"
	case average <= 100:
		category = "Moderate"
	case average <= 150:
		category = "High"
	default:
		category = "Very High"
	}

	return ExposureSummary{
		TotalExposure:    round2(total),
		AverageExposure:  round2(average),
		PeakExposure:     round2(peak),
		ExposureCategory: category,
		HoursOutdoors:    len(outdoorHours),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
