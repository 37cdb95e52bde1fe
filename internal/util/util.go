// Package util holds small helpers shared across packages.
package util

import "math"

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}

// Clamp limits x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
// A negative n is treated as zero.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
