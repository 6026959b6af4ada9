package model

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns the arithmetic mean rounded to two decimals, or zero for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round2(sum / float64(len(values)))
}

// Percent returns part/total as a percentage rounded to two decimals.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}
