package utils

import "math"

// Round2 rounds a currency amount to 2 decimal places.
// All amounts are rounded at write time so balance comparisons
// only have to absorb a one-cent tolerance.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
