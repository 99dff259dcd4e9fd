package risk

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		aqi  float64
		want Category
	}{
		{0, CategoryGood},
		{50, CategoryGood},
		{51, CategoryModerate},
		{100, CategoryModerate},
		{101, CategoryUnhealthySensitive},
		{150, CategoryUnhealthySensitive},
		{151, CategoryUnhealthy},
		{200, CategoryUnhealthy},
		{201, CategoryVeryUnhealthy},
		{300, CategoryVeryUnhealthy},
		{301, CategoryHazardous},
		{500, CategoryHazardous},
		{600, CategoryHazardous},
	}

	for _, tc := range cases {
		got, ok := Classify(tc.aqi)
		require.True(t, ok, "aqi=%v", tc.aqi)
		require.Equal(t, tc.want, got, "aqi=%v", tc.aqi)
	}
}

func TestClassifyCoversWholeDomain(t *testing.T) {
	valid := map[Category]bool{
		CategoryGood:               true,
		CategoryModerate:           true,
		CategoryUnhealthySensitive: true,
		CategoryUnhealthy:          true,
		CategoryVeryUnhealthy:      true,
		CategoryHazardous:          true,
	}

	for aqi := 0; aqi <= 500; aqi++ {
		category, ok := Classify(float64(aqi))
		require.True(t, ok, "aqi=%d", aqi)
		require.True(t, valid[category], "aqi=%d classified as %v", aqi, category)
	}

	// Fractional values between adjacent integer bounds have a home too
	category, ok := Classify(50.5)
	require.True(t, ok)
	require.Equal(t, CategoryModerate, category)
}

func TestClassifyUnclassifiable(t *testing.T) {
	for _, aqi := range []float64{math.NaN(), -1, -0.01, -500} {
		category, ok := Classify(aqi)
		require.False(t, ok, "aqi=%v", aqi)
		require.Equal(t, CategoryUnknown, category, "aqi=%v", aqi)
	}
}

func TestLevelForEscalation(t *testing.T) {
	cases := []struct {
		aqi        float64
		general    Level
		vulnerable Level
	}{
		{25, LevelLow, LevelLow},
		{75, LevelLow, LevelModerate},
		{125, LevelModerate, LevelHigh},
		{175, LevelHigh, LevelVeryHigh},
		{250, LevelVeryHigh, LevelExtreme},
		{400, LevelExtreme, LevelExtreme}, // no escalation past the ceiling
	}

	for _, tc := range cases {
		require.Equal(t, tc.general, LevelFor(tc.aqi, false), "aqi=%v general", tc.aqi)
		require.Equal(t, tc.vulnerable, LevelFor(tc.aqi, true), "aqi=%v vulnerable", tc.aqi)
	}

	require.Equal(t, LevelUnknown, LevelFor(math.NaN(), false))
	require.Equal(t, LevelUnknown, LevelFor(-10, true))
}

func TestMessage(t *testing.T) {
	require.Equal(t,
		"Air quality is satisfactory, and air pollution poses little or no risk.",
		Message(25))
	require.Equal(t,
		"Health warning of emergency conditions: everyone is more likely to be affected.",
		Message(450))
	require.Equal(t, "Unable to determine health impact.", Message(math.NaN()))
	require.Equal(t, "Unable to determine health impact.", Message(-1))
}

func TestRecommendationsPerCategory(t *testing.T) {
	// Every in-domain AQI yields at least one recommendation
	for aqi := 0; aqi <= 500; aqi += 10 {
		require.NotEmpty(t, Recommendations(float64(aqi), false), "aqi=%d", aqi)
		require.NotEmpty(t, Recommendations(float64(aqi), true), "aqi=%d", aqi)
	}

	require.Equal(t, []string{
		"Enjoy outdoor activities!",
		"No precautions needed",
	}, Recommendations(30, false))

	require.Equal(t, []string{
		"Outdoor activities are generally safe",
		"Sensitive individuals should watch for symptoms",
	}, Recommendations(75, false))

	require.Equal(t, []string{
		"Consider reducing prolonged outdoor exertion",
		"Watch for symptoms like coughing or shortness of breath",
	}, Recommendations(75, true))

	require.Equal(t, []string{
		"Sensitive groups should reduce prolonged outdoor exertion",
		"Keep windows closed to reduce indoor pollution",
		"Consider moving activities indoors",
		"Have quick-relief medication readily available (if applicable)",
	}, Recommendations(125, true))

	require.Equal(t, []string{
		"Everyone should reduce prolonged outdoor exertion",
		"Sensitive groups should avoid prolonged outdoor exertion",
		"Keep windows closed",
		"Use air purifiers indoors if available",
		"Stay indoors as much as possible",
	}, Recommendations(175, true))

	require.Len(t, Recommendations(250, false), 5)
	require.Len(t, Recommendations(350, false), 6)

	require.Empty(t, Recommendations(math.NaN(), false))
	require.Empty(t, Recommendations(-5, true))
}

func TestActivityLevelMonotonicRestrictiveness(t *testing.T) {
	restrictiveness := map[string]int{
		"Unrestricted":              0,
		"Generally Safe":            1,
		"Reduce Prolonged Exertion": 2,
		"Avoid Prolonged Exertion":  3,
		"Minimize Outdoor Activity": 4,
		"Stay Indoors":              5,
		"Stay Indoors - Emergency":  6,
	}

	// One representative AQI per category
	for _, aqi := range []float64{25, 75, 125, 175, 250, 400} {
		general := ActivityLevel(aqi, false)
		vulnerable := ActivityLevel(aqi, true)

		generalRank, ok := restrictiveness[general]
		require.True(t, ok, "unexpected label %q", general)
		vulnerableRank, ok := restrictiveness[vulnerable]
		require.True(t, ok, "unexpected label %q", vulnerable)

		require.GreaterOrEqual(t, vulnerableRank, generalRank, "aqi=%v", aqi)
	}

	require.Equal(t, "Unrestricted", ActivityLevel(10, true))
	require.Equal(t, "Stay Indoors", ActivityLevel(250, true))
	require.Equal(t, "Stay Indoors - Emergency", ActivityLevel(400, false))
	require.Equal(t, "Unknown", ActivityLevel(math.NaN(), false))
}

func TestMaskAdvice(t *testing.T) {
	require.Equal(t, "Not necessary", MaskAdvice(25))
	require.Equal(t, "Not necessary", MaskAdvice(75))
	require.Equal(t, "Recommended for sensitive groups", MaskAdvice(125))
	require.Equal(t, "N95 mask recommended for everyone outdoors", MaskAdvice(175))
	require.Equal(t, "N95/N99 mask required if going outdoors", MaskAdvice(250))
	require.Equal(t, "N95/N99 mask required if going outdoors", MaskAdvice(400))
	require.Equal(t, "Unknown", MaskAdvice(-1))
}

func TestGroupWarningsAlwaysFullyPopulated(t *testing.T) {
	for _, aqi := range []float64{0, 50, 75, 125, 175, 250, 400, math.NaN(), -3} {
		warnings := GroupWarnings(aqi)
		require.Len(t, warnings, 7, "aqi=%v", aqi)
		for _, group := range Groups() {
			_, present := warnings[group]
			require.True(t, present, "aqi=%v group=%s", aqi, group)
		}
	}
}

func TestGroupWarningsContent(t *testing.T) {
	// Good and Moderate carry no warnings for any group
	for _, aqi := range []float64{0, 50, 75, 100} {
		for group, warning := range GroupWarnings(aqi) {
			require.Empty(t, warning, "aqi=%v group=%s", aqi, group)
		}
	}

	warnings := GroupWarnings(125)
	require.Equal(t, "Children should reduce prolonged outdoor play. Watch for symptoms.", warnings[GroupChildren])
	require.Equal(t, "Have quick-relief inhaler ready. Reduce outdoor activities.", warnings[GroupAsthma])

	warnings = GroupWarnings(400)
	for group, warning := range warnings {
		require.Contains(t, warning, "CRITICAL", "group=%s", group)
	}
}

func TestAssessComposition(t *testing.T) {
	a := Assess(165, []Group{GroupAsthma})

	require.Equal(t, 165.0, a.AQI)
	require.Equal(t, "Unhealthy", a.Category)
	require.Equal(t, "Very High", a.RiskLevel)
	require.Equal(t, MaskAdvice(165), a.MaskRecommendation)
	require.Equal(t, "Minimize Outdoor Activity", a.OutdoorActivityLevel)
	require.Len(t, a.VulnerableGroupWarnings, 7)
	require.NotEmpty(t, a.Recommendations)
}

func TestAssessVulnerabilityFromGroupList(t *testing.T) {
	general := Assess(75, nil)
	vulnerable := Assess(75, []Group{GroupElderly})

	require.Equal(t, "Low", general.RiskLevel)
	require.Equal(t, "Moderate", vulnerable.RiskLevel)

	// Unrecognized identifiers do not change the output shape; a non-empty
	// list still marks the caller vulnerable.
	odd := Assess(75, []Group{"scuba_divers"})
	require.Equal(t, "Moderate", odd.RiskLevel)
	require.Len(t, odd.VulnerableGroupWarnings, 7)
}

func TestAssessUnknownInputNeverErrors(t *testing.T) {
	for _, aqi := range []float64{math.NaN(), -42} {
		a := Assess(aqi, []Group{GroupChildren})
		require.Equal(t, "Unknown", a.Category, "aqi=%v", aqi)
		require.Equal(t, "Unknown", a.RiskLevel, "aqi=%v", aqi)
		require.Equal(t, "Unable to determine health impact.", a.HealthMessage)
		require.Empty(t, a.Recommendations)
		require.Len(t, a.VulnerableGroupWarnings, 7)
		require.Equal(t, "Unknown", a.OutdoorActivityLevel)
		require.Equal(t, "Unknown", a.MaskRecommendation)
	}
}

func TestAssessIdempotent(t *testing.T) {
	first := Assess(180, []Group{GroupCOPD, GroupElderly})
	second := Assess(180, []Group{GroupCOPD, GroupElderly})

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, firstJSON, secondJSON)
}

func TestCategoryColor(t *testing.T) {
	require.Equal(t, "#00E400", CategoryGood.Color())
	require.Equal(t, "#7E0023", CategoryHazardous.Color())
	require.Equal(t, "", CategoryUnknown.Color())
}

func TestFormatReport(t *testing.T) {
	report := FormatReport(Assess(165, []Group{GroupAsthma}))

	require.Contains(t, report, "HEALTH RISK ASSESSMENT REPORT")
	require.Contains(t, report, "Air Quality Index: 165")
	require.Contains(t, report, "Category: Unhealthy")
	require.Contains(t, report, "Risk Level: Very High")
	require.Contains(t, report, "Asthma Patients:")
	require.Contains(t, report, "Heart Disease Patients:")
	require.NotContains(t, FormatReport(Assess(40, nil)), "Vulnerable Group Warnings")
}
