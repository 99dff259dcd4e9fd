package risk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestOutdoorWindow(t *testing.T) {
	hourly := map[int]float64{
		6: 45, 7: 52, 8: 68, 9: 85, 10: 92,
		11: 98, 12: 105, 13: 112, 14: 108, 15: 95,
		16: 87, 17: 78, 18: 65, 19: 55, 20: 48,
	}

	start, avg, ok := BestOutdoorWindow(hourly, 2)
	require.True(t, ok)
	require.Equal(t, 6, start)
	require.InDelta(t, 48.5, avg, 1e-9) // (45+52)/2

	start, avg, ok = BestOutdoorWindow(hourly, 4)
	require.True(t, ok)
	require.Equal(t, 17, start)
	require.InDelta(t, 61.5, avg, 1e-9) // (78+65+55+48)/4
}

func TestBestOutdoorWindowSkipsGaps(t *testing.T) {
	// 7 is missing, so the complete 2-hour windows start at 5, 8 and 9
	hourly := map[int]float64{5: 80, 6: 80, 8: 20, 9: 30, 10: 35}

	start, avg, ok := BestOutdoorWindow(hourly, 2)
	require.True(t, ok)
	require.Equal(t, 8, start)
	require.InDelta(t, 25.0, avg, 1e-9)

	// No complete 3-hour window before the gap
	start, avg, ok = BestOutdoorWindow(hourly, 3)
	require.True(t, ok)
	require.Equal(t, 8, start)
	require.InDelta(t, 28.333333333333332, avg, 1e-9)
}

func TestBestOutdoorWindowTieBreaksEarliest(t *testing.T) {
	hourly := map[int]float64{1: 10, 2: 10, 3: 10, 4: 10}

	start, avg, ok := BestOutdoorWindow(hourly, 2)
	require.True(t, ok)
	require.Equal(t, 1, start)
	require.InDelta(t, 10.0, avg, 1e-9)
}

func TestBestOutdoorWindowNoResult(t *testing.T) {
	_, _, ok := BestOutdoorWindow(nil, 2)
	require.False(t, ok)

	_, _, ok = BestOutdoorWindow(map[int]float64{6: 50}, 0)
	require.False(t, ok)

	_, _, ok = BestOutdoorWindow(map[int]float64{6: 50, 7: 50}, 3)
	require.False(t, ok)

	// Present hours but nothing contiguous long enough
	_, _, ok = BestOutdoorWindow(map[int]float64{1: 10, 3: 10, 5: 10}, 2)
	require.False(t, ok)
}

func TestDailyExposure(t *testing.T) {
	hourly := map[int]float64{8: 60, 9: 75, 17: 120, 18: 110}

	summary := DailyExposure(hourly, []int{8, 9, 17, 18})
	require.Equal(t, 365.0, summary.TotalExposure)
	require.Equal(t, 91.25, summary.AverageExposure)
	require.Equal(t, 120.0, summary.PeakExposure)
	require.Equal(t, "Moderate", summary.ExposureCategory)
	require.Equal(t, 4, summary.HoursOutdoors)
}

func TestDailyExposureMissingHoursCountAsZero(t *testing.T) {
	hourly := map[int]float64{8: 100}

	// Hour 9 is absent from the series: it contributes 0 but still
	// counts toward the average divisor.
	summary := DailyExposure(hourly, []int{8, 9})
	require.Equal(t, 100.0, summary.TotalExposure)
	require.Equal(t, 50.0, summary.AverageExposure)
	require.Equal(t, 100.0, summary.PeakExposure)
	require.Equal(t, "Low", summary.ExposureCategory)
	require.Equal(t, 2, summary.HoursOutdoors)
}

func TestDailyExposureEmptyOutdoorHours(t *testing.T) {
	summary := DailyExposure(map[int]float64{8: 100}, nil)
	require.Equal(t, 0.0, summary.TotalExposure)
	require.Equal(t, 0.0, summary.AverageExposure)
	require.Equal(t, 0.0, summary.PeakExposure)
	require.Equal(t, "Minimal", summary.ExposureCategory)
	require.Equal(t, 0, summary.HoursOutdoors)
}

func TestDailyExposureCategoryBoundaries(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{50, "Low"},
		{50.01, "Moderate"},
		{100, "Moderate"},
		{100.5, "High"},
		{150, "High"},
		{151, "Very High"},
	}

	for _, tc := range cases {
		summary := DailyExposure(map[int]float64{10: tc.avg}, []int{10})
		require.Equal(t, tc.want, summary.ExposureCategory, "avg=%v", tc.avg)
	}
}

func TestDailyExposureRounding(t *testing.T) {
	hourly := map[int]float64{1: 10, 2: 10, 3: 11}

	summary := DailyExposure(hourly, []int{1, 2, 3})
	require.Equal(t, 31.0, summary.TotalExposure)
	require.Equal(t, 10.33, summary.AverageExposure)
}
