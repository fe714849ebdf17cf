package bridge

import "math"

// Clamp01 limits x to [0, 1]
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Scale maps v into [0, 1] over the range. Ranges with min > max are
// measured down from max so they round trip through Unscale. A degenerate
// range maps to 0.
func Scale(v, min, max float64) float64 {
	switch {
	case min < max:
		return (v - min) / (max - min)
	case min > max:
		return 1 - (v-max)/(min-max)
	}
	return 0
}

// Unscale is the inverse of Scale for x in [0, 1]
func Unscale(x, min, max float64) float64 {
	x = Clamp01(x)
	switch {
	case min < max:
		return x*(max-min) + min
	case min > max:
		return (1-x)*(min-max) + max
	}
	return min
}

// logBounds replaces a zero end with the smallest float32 step so the
// logarithm stays finite
func logBounds(min, max float64) (float64, float64) {
	if min == 0 {
		min = epsilon32
	}
	if max == 0 {
		max = epsilon32
	}
	return min, max
}

// LogUnscale maps x in [0, 1] onto the range exponentially
func LogUnscale(x, min, max float64) float64 {
	min, max = logBounds(min, max)
	return math.Exp(Clamp01(x)*math.Log(max/min)) * min
}

// LogScale is the inverse of LogUnscale
func LogScale(v, min, max float64) float64 {
	min, max = logBounds(min, max)
	r := math.Log(max / min)
	if r == 0 || v/min <= 0 {
		return 0
	}
	return Clamp01(math.Log(v/min) / r)
}
