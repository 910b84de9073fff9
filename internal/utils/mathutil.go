package utils

import "math"

// SafeDivide divides n by d, returning def when the denominator is exactly
// zero. Every rate computation in the projection pipeline routes divisions
// through here so a missing denominator yields the caller's chosen default
// instead of an Inf/NaN.
func SafeDivide(n, d, def float64) float64 {
	if d == 0 {
		return def
	}
	return n / d
}

// SafeDividePtr is SafeDivide with a nullable denominator: nil counts as
// missing and returns the default.
func SafeDividePtr(n float64, d *float64, def float64) float64 {
	if d == nil {
		return def
	}
	return SafeDivide(n, *d, def)
}

// Round2 rounds to two decimal places, the storage precision for every
// matchup and projection metric.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2Ptr rounds a nullable value, preserving nil.
func Round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round2(*v)
	return &r
}

// Coalesce returns the first non-nil value, or def when all are nil.
func Coalesce(def float64, vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}
