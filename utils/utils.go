package utils

import (
	"fmt"
	"math"
)

// FormatAmount renders a minor-unit amount as a display string
func FormatAmount(minor int64) string {
	return fmt.Sprintf("%.2f coins", float64(minor)/100)
}

// ComputePayout derives a room payout from its entry fee and odds, rounded
// down to whole minor units.
func ComputePayout(entryFee int64, odds float64) int64 {
	return int64(math.Floor(float64(entryFee) * odds))
}
