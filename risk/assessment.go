package risk

// Assessment is the complete health risk assessment for an AQI value.
// Category and risk level are carried as their display labels so the
// record serializes directly for API consumers.
type Assessment struct {
	AQI                     float64          `json:"aqi"`
	Category                string           `json:"aqi_category"`
	RiskLevel               string           `json:"risk_level"`
	HealthMessage           string           `json:"health_message"`
	Recommendations         []string         `json:"recommendations"`
	VulnerableGroupWarnings map[Group]string `json:"vulnerable_group_warnings"`
	OutdoorActivityLevel    string           `json:"outdoor_activity_level"`
	MaskRecommendation      string           `json:"mask_recommendation"`
}

// healthMessages holds the EPA advisory sentence per category.
var healthMessages = map[Category]string{
	CategoryGood:               "Air quality is satisfactory, and air pollution poses little or no risk.",
	CategoryModerate:           "Air quality is acceptable. However, there may be a risk for some people, particularly those who are unusually sensitive to air pollution.",
	CategoryUnhealthySensitive: "Members of sensitive groups may experience health effects. The general public is less likely to be affected.",
	CategoryUnhealthy:          "Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects.",
	CategoryVeryUnhealthy:      "Health alert: The risk of health effects is increased for everyone.",
	CategoryHazardous:          "Health warning of emergency conditions: everyone is more likely to be affected.",
}

// LevelFor derives the risk level from the AQI category; being in a
// vulnerable population shifts the level up one tier, saturating at
// Extreme. Unclassifiable AQI yields LevelUnknown.
func LevelFor(aqi float64, vulnerable bool) Level {
	category, ok := Classify(aqi)
	if !ok {
		return LevelUnknown
	}

	switch category {
	case CategoryGood:
		return LevelLow
	case CategoryModerate:
		if vulnerable {
			return LevelModerate
		}
		return LevelLow
	case CategoryUnhealthySensitive:
		if vulnerable {
			return LevelHigh
		}
		return LevelModerate
	case CategoryUnhealthy:
		if vulnerable {
			return LevelVeryHigh
		}
		return LevelHigh
	case CategoryVeryUnhealthy:
		if vulnerable {
			return LevelExtreme
		}
		return LevelVeryHigh
	default: // Hazardous
		return LevelExtreme
	}
}

// Message returns the general health advisory for the AQI level, or a
// fallback sentence when the value cannot be classified.
func Message(aqi float64) string {
	category, _ := Classify(aqi)
	if msg, found := healthMessages[category]; found {
		return msg
	}
	return "Unable to determine health impact."
}

// Recommendations returns the ordered, category-specific advice list, with
// extra items for vulnerable populations. Order is most important first.
// Unclassifiable AQI yields an empty list.
func Recommendations(aqi float64, vulnerable bool) []string {
	category, ok := Classify(aqi)
	if !ok {
		return nil
	}

	var recommendations []string

	switch category {
	case CategoryGood:
		recommendations = append(recommendations,
			"Enjoy outdoor activities!",
			"No precautions needed")

	case CategoryModerate:
		if vulnerable {
			recommendations = append(recommendations,
				"Consider reducing prolonged outdoor exertion",
				"Watch for symptoms like coughing or shortness of breath")
		} else {
			recommendations = append(recommendations,
				"Outdoor activities are generally safe",
				"Sensitive individuals should watch for symptoms")
		}

	case CategoryUnhealthySensitive:
		recommendations = append(recommendations,
			"Sensitive groups should reduce prolonged outdoor exertion",
			"Keep windows closed to reduce indoor pollution")
		if vulnerable {
			recommendations = append(recommendations,
				"Consider moving activities indoors",
				"Have quick-relief medication readily available (if applicable)")
		}

	case CategoryUnhealthy:
		recommendations = append(recommendations,
			"Everyone should reduce prolonged outdoor exertion",
			"Sensitive groups should avoid prolonged outdoor exertion",
			"Keep windows closed",
			"Use air purifiers indoors if available")
		if vulnerable {
			recommendations = append(recommendations,
				"Stay indoors as much as possible")
		}

	case CategoryVeryUnhealthy:
		recommendations = append(recommendations,
			"Everyone should avoid prolonged outdoor exertion",
			"Sensitive groups should remain indoors",
			"Keep windows and doors closed",
			"Use HEPA air purifiers",
			"Postpone outdoor activities")

	default: // Hazardous
		recommendations = append(recommendations,
			"STAY INDOORS - Emergency conditions",
			"Keep all windows and doors closed",
			"Run air purifiers continuously",
			"Avoid all outdoor activities",
			"Vulnerable individuals should seek medical advice",
			"Use N95/N99 masks if you must go outside")
	}

	return recommendations
}

// ActivityLevel returns the outdoor activity recommendation label. The
// vulnerable label at a category is never less restrictive than the
// general population label.
func ActivityLevel(aqi float64, vulnerable bool) string {
	category, ok := Classify(aqi)
	if !ok {
		return "Unknown"
	}

	switch category {
	case CategoryGood:
		return "Unrestricted"
	case CategoryModerate:
		if vulnerable {
			return "Reduce Prolonged Exertion"
		}
		return "Generally Safe"
	case CategoryUnhealthySensitive:
		if vulnerable {
			return "Avoid Prolonged Exertion"
		}
		return "Reduce Prolonged Exertion"
	case CategoryUnhealthy:
		if vulnerable {
			return "Minimize Outdoor Activity"
		}
		return "Avoid Prolonged Exertion"
	case CategoryVeryUnhealthy:
		if vulnerable {
			return "Stay Indoors"
		}
		return "Minimize Outdoor Activity"
	default: // Hazardous
		return "Stay Indoors - Emergency"
	}
}

// MaskAdvice returns the mask wearing recommendation, independent of
// vulnerability.
func MaskAdvice(aqi float64) string {
	category, ok := Classify(aqi)
	if !ok {
		return "Unknown"
	}

	switch category {
	case CategoryGood, CategoryModerate:
		return "Not necessary"
	case CategoryUnhealthySensitive:
		return "Recommended for sensitive groups"
	case CategoryUnhealthy:
		return "N95 mask recommended for everyone outdoors"
	default: // Very Unhealthy or Hazardous
		return "N95/N99 mask required if going outdoors"
	}
}

// groupWarnings holds the per-group warning text for the four categories
// that warrant one. Good, Moderate and Unknown have no entries and yield
// empty strings.
var groupWarnings = map[Group]map[Category]string{
	GroupChildren: {
		CategoryUnhealthySensitive: "Children should reduce prolonged outdoor play. Watch for symptoms.",
		CategoryUnhealthy:          "Children should avoid prolonged outdoor activities. Indoor play recommended.",
		CategoryVeryUnhealthy:      "Keep children indoors. Close schools may consider closure.",
		CategoryHazardous:          "CRITICAL: Keep children indoors at all times. Schools should close.",
	},
	GroupElderly: {
		CategoryUnhealthySensitive: "Seniors should limit time outdoors and reduce exertion.",
		CategoryUnhealthy:          "Seniors should stay indoors and minimize physical activity.",
		CategoryVeryUnhealthy:      "Seniors must stay indoors. Monitor for chest pain or breathing difficulty.",
		CategoryHazardous:          "CRITICAL: Seniors should remain indoors. Seek medical help if needed.",
	},
	GroupPregnant: {
		CategoryUnhealthySensitive: "Limit outdoor exposure to protect fetal health.",
		CategoryUnhealthy:          "Avoid outdoor activities. Indoor rest recommended.",
		CategoryVeryUnhealthy:      "Stay indoors. High pollution may affect pregnancy.",
		CategoryHazardous:          "CRITICAL: Remain indoors. Consult doctor if experiencing symptoms.",
	},
	GroupAsthma: {
		CategoryUnhealthySensitive: "Have quick-relief inhaler ready. Reduce outdoor activities.",
		CategoryUnhealthy:          "High risk of asthma attacks. Stay indoors. Keep medication close.",
		CategoryVeryUnhealthy:      "SEVERE RISK: Stay indoors. Monitor symptoms closely. Have emergency plan ready.",
		CategoryHazardous:          "CRITICAL: Extreme asthma risk. Stay indoors. Seek emergency care if symptoms worsen.",
	},
	GroupHeartDisease: {
		CategoryUnhealthySensitive: "Reduce physical exertion. Monitor for chest discomfort.",
		CategoryUnhealthy:          "Avoid all outdoor activities. Rest indoors. Watch for symptoms.",
		CategoryVeryUnhealthy:      "HIGH RISK: Stay indoors. Seek medical attention if experiencing chest pain.",
		CategoryHazardous:          "CRITICAL: Cardiovascular emergency risk. Stay indoors. Call doctor if symptoms appear.",
	},
	GroupCOPD: {
		CategoryUnhealthySensitive: "Use medications as prescribed. Limit outdoor exposure.",
		CategoryUnhealthy:          "High risk of exacerbation. Stay indoors. Keep oxygen therapy ready if applicable.",
		CategoryVeryUnhealthy:      "SEVERE RISK: Stay indoors. Monitor oxygen levels. Have emergency plan.",
		CategoryHazardous:          "CRITICAL: Extreme risk of respiratory failure. Stay indoors. Seek immediate care if worsening.",
	},
	GroupAthletes: {
		CategoryUnhealthySensitive: "Reduce intensity and duration of outdoor training.",
		CategoryUnhealthy:          "Move training indoors. High-intensity exercise is risky.",
		CategoryVeryUnhealthy:      "Cancel outdoor training. Indoor low-intensity only.",
		CategoryHazardous:          "CRITICAL: No training. Rest and recovery mode.",
	},
}

// GroupWarnings returns the warning text for every known vulnerable group
// at the given AQI. The map always carries exactly one entry per group;
// the value is the empty string when no warning applies. Callers filter
// for display.
func GroupWarnings(aqi float64) map[Group]string {
	category, _ := Classify(aqi)

	warnings := make(map[Group]string, len(groupWarnings))
	for _, group := range Groups() {
		warnings[group] = groupWarnings[group][category]
	}
	return warnings
}

// Assess produces a complete health risk assessment for the AQI value.
// The caller is considered vulnerable when the group list is non-empty;
// unrecognized group identifiers are ignored and do not change the output
// shape. This is the entry point other services should call; the
// sub-operations exist to keep the composition testable in isolation.
func Assess(aqi float64, vulnerableGroups []Group) Assessment {
	vulnerable := len(vulnerableGroups) > 0

	category, _ := Classify(aqi)

	return Assessment{
		AQI:                     aqi,
		Category:                category.String(),
		RiskLevel:               LevelFor(aqi, vulnerable).String(),
		HealthMessage:           Message(aqi),
		Recommendations:         Recommendations(aqi, vulnerable),
		VulnerableGroupWarnings: GroupWarnings(aqi),
		OutdoorActivityLevel:    ActivityLevel(aqi, vulnerable),
		MaskRecommendation:      MaskAdvice(aqi),
	}
}
