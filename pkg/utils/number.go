package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Percent calcula 100*part/whole limitado a [0, 100]; denominador zero resulta em 0
func Percent(part, whole float64) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}

	pct := 100 * part / whole
	if pct > 100 {
		pct = 100
	}

	return RoundWithTwoDecimalPlace(pct)
}
