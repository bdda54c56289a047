package astro

import (
	"math"
	"time"
)

// Average lunar cycle in days
const moonCycleDays = 29.53

// MoonPhase approximates the current lunar phase from the calendar date.
// Good to a day or so, which is plenty for a daily digest.
func MoonPhase(t time.Time) (name string, emoji string) {
	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	totalDays := math.Floor(float64(year-2000)*365.25) +
		math.Floor(float64(month-1)*30.44) + float64(day)
	phase := math.Mod(totalDays, moonCycleDays) / moonCycleDays
	if phase < 0 {
		phase += 1
	}

	switch {
	case phase < 0.0625 || phase >= 0.9375:
		return "New Moon", "🌑"
	case phase < 0.1875:
		return "Waxing Crescent", "🌒"
	case phase < 0.3125:
		return "First Quarter", "🌓"
	case phase < 0.4375:
		return "Waxing Gibbous", "🌔"
	case phase < 0.5625:
		return "Full Moon", "🌕"
	case phase < 0.6875:
		return "Waning Gibbous", "🌖"
	case phase < 0.8125:
		return "Last Quarter", "🌗"
	default:
		return "Waning Crescent", "🌘"
	}
}
