package calc

import (
	"math"
	"strconv"
)

// Value is a number carrying either an exact integer or a real
// representation. The representation decides arithmetic promotion: an
// operation on two Integers generally stays Integer, anything else is Real.
// The zero Value is Integer 0.
type Value struct {
	i    int64
	f    float64
	real bool
}

// Int returns an Integer value.
func Int(i int64) Value {
	return Value{i: i}
}

// Real returns a Real value.
func Real(f float64) Value {
	return Value{f: f, real: true}
}

// IsReal reports whether the value carries a real representation. Note that
// a Real may still be mathematically an integer, e.g. the result of "4/2".
func (v Value) IsReal() bool {
	return v.real
}

// Float64 returns the value as a float64.
func (v Value) Float64() float64 {
	if v.real {
		return v.f
	}
	return float64(v.i)
}

// Int64 returns the integer representation. ok is false for Real values.
func (v Value) Int64() (i int64, ok bool) {
	return v.i, !v.real
}

func (v Value) String() string {
	return Format(v)
}

// Format renders a value to its canonical display string. Values that are
// mathematically integers, including Reals with no fractional part, render
// as plain integer strings. Anything else renders with up to 12 significant
// digits, trailing zeros removed, in scientific notation only when the
// magnitude demands it.
func Format(v Value) string {
	if !v.real {
		return strconv.FormatInt(v.i, 10)
	}
	f := v.f
	switch {
	case math.IsInf(f, 0) || math.IsNaN(f):
		return strconv.FormatFloat(f, 'g', -1, 64)
	case f == 0:
		// Collapse negative zero.
		return "0"
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', 12, 64)
	}
}
