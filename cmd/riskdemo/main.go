package main

import (
	"fmt"

	"airquality-service/risk"
)

func main() {
	// Example 1: General population, moderate AQI
	fmt.Println("Example 1: General Population, AQI = 75")
	fmt.Println(risk.FormatReport(risk.Assess(75, nil)))

	// Example 2: Asthma patient, unhealthy AQI
	fmt.Println("\nExample 2: Asthma Patient, AQI = 165")
	fmt.Println(risk.FormatReport(risk.Assess(165, []risk.Group{risk.GroupAsthma})))

	// Example 3: Best time for outdoor activity
	fmt.Println("\nExample 3: Finding Best Time for Outdoor Activity")
	hourlyForecast := map[int]float64{
		6: 45, 7: 52, 8: 68, 9: 85, 10: 92,
		11: 98, 12: 105, 13: 112, 14: 108, 15: 95,
		16: 87, 17: 78, 18: 65, 19: 55, 20: 48,
	}

	startHour, avgAQI, ok := risk.BestOutdoorWindow(hourlyForecast, 2)
	if !ok {
		fmt.Println("No suitable outdoor window found")
		return
	}

	category, _ := risk.Classify(avgAQI)
	fmt.Println("Best time for 2-hour outdoor activity:")
	fmt.Printf("  Start at: %d:00\n", startHour)
	fmt.Printf("  Average AQI: %.1f\n", avgAQI)
	fmt.Printf("  Category: %s\n", category)

	// Example 4: Daily exposure for a commute plus lunch break
	fmt.Println("\nExample 4: Daily Exposure")
	summary := risk.DailyExposure(hourlyForecast, []int{8, 12, 13, 18})
	fmt.Printf("  Total exposure: %.2f\n", summary.TotalExposure)
	fmt.Printf("  Average exposure: %.2f\n", summary.AverageExposure)
	fmt.Printf("  Peak exposure: %.2f\n", summary.PeakExposure)
	fmt.Printf("  Category: %s (%d hours outdoors)\n", summary.ExposureCategory, summary.HoursOutdoors)
}
