package utils

import "math"

// Round2 rounds a number to 2 decimal places
func Round2(num float64) float64 {
	return math.Round(num*100) / 100
}
