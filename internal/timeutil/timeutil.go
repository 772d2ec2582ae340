// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"math"
	"time"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Minutes expresses d in minutes rounded to two decimal places.
func Minutes(d time.Duration) float64 {
	return Round2(d.Seconds() / 60)
}

// RoundToMinute resets the given time to the start of its minute. It works on
// the absolute instant, so the result stays correct inside a repeated
// daylight-saving hour.
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
