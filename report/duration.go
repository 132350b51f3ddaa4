package report

import (
	"fmt"
	"math"
	"strconv"
)

// FormatDuration renders seconds as "Ns", "Nm Ns" or "Nh Nm Ns".
//
// Seconds are rounded to hundredths before they are split, so a carry moves into the next unit.
func FormatDuration(seconds float64) string {
	hundredths := math.Round(seconds * 100)
	if hundredths < 6000 {
		return formatSeconds(hundredths)
	}

	minutes := math.Floor(hundredths / 6000)
	remaining := math.Mod(hundredths, 6000)

	if minutes < 60 {
		return fmt.Sprintf("%.0fm %s", minutes, formatSeconds(remaining))
	}

	hours := math.Floor(minutes / 60)
	remainingMinutes := math.Mod(minutes, 60)

	return fmt.Sprintf("%.0fh %.0fm %s", hours, remainingMinutes, formatSeconds(remaining))
}

func formatSeconds(hundredths float64) string {
	return strconv.FormatFloat(hundredths/100, 'f', -1, 64) + "s"
}
