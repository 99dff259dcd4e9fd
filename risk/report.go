package risk

import (
	"fmt"
	"strings"
)

// FormatReport renders an assessment as a plain-text report, suitable for
// CLI output or logs.
func FormatReport(a Assessment) string {
	var b strings.Builder
	divider := strings.Repeat("=", 60)

	b.WriteString(divider + "\n")
	b.WriteString("HEALTH RISK ASSESSMENT REPORT\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "\nAir Quality Index: %.0f\n", a.AQI)
	fmt.Fprintf(&b, "Category: %s\n", a.Category)
	fmt.Fprintf(&b, "Risk Level: %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "\nHealth Message:\n%s\n", a.HealthMessage)
	fmt.Fprintf(&b, "\nOutdoor Activity Level: %s\n", a.OutdoorActivityLevel)
	fmt.Fprintf(&b, "Mask Recommendation: %s\n", a.MaskRecommendation)

	b.WriteString("\nRecommendations:\n")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}

	hasWarnings := false
	for _, warning := range a.VulnerableGroupWarnings {
		if warning != "" {
			hasWarnings = true
			break
		}
	}
	if hasWarnings {
		b.WriteString("\nVulnerable Group Warnings:\n")
		// Iterate in display order for stable output
		for _, group := range Groups() {
			warning := a.VulnerableGroupWarnings[group]
			if warning == "" {
				continue
			}
			fmt.Fprintf(&b, "\n  %s:\n  %s\n", groupTitle(group), warning)
		}
	}

	b.WriteString("\n" + divider + "\n")
	return b.String()
}

// groupTitle converts a group identifier like "heart_disease_patients"
// into "Heart Disease Patients".
func groupTitle(g Group) string {
	words := strings.Split(string(g), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
