package core

import "math"

// Interval is an open range of ray parameters (Min, Max)
type Interval struct {
	Min, Max float64
}

// NewInterval creates a new interval
func NewInterval(minVal, maxVal float64) Interval {
	return Interval{Min: minVal, Max: maxVal}
}

// Forward is the interval used for scene queries: it skips self-intersections
// at the ray origin and is unbounded above
func Forward() Interval {
	return Interval{Min: 0.001, Max: math.Inf(1)}
}

// Surrounds reports whether Min < x < Max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// WithMax returns a copy of the interval with a tightened upper bound
func (i Interval) WithMax(maxVal float64) Interval {
	i.Max = maxVal
	return i
}
