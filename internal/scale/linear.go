// Package scale maps data domains onto pixel ranges the way the chart
// axes expect: a continuous linear scale with "nice" bounds and tick
// generation, and a padded band scale for categories.
package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear is a continuous scale from [D0, D1] onto [R0, R1].
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns a linear scale with the given domain and range.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map projects v from the domain onto the range. A degenerate domain maps
// everything to the middle of the range.
func (l *Linear) Map(v float64) float64 {
	if l.D1 == l.D0 {
		return (l.R0 + l.R1) / 2
	}
	t := (v - l.D0) / (l.D1 - l.D0)
	return l.R0 + t*(l.R1-l.R0)
}

// Nice extends the domain outward to round values so that ticks land on
// the bounds. count is the tick count the rounding targets (10 by default
// in callers). The domain never shrinks.
func (l *Linear) Nice(count int) *Linear {
	start, stop := l.D0, l.D1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	var prestep float64
loop:
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, float64(count))
		switch {
		case step == prestep:
			break loop
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prestep = step
	}
	start, stop = unsignedZero(start), unsignedZero(stop)
	if reversed {
		start, stop = stop, start
	}
	l.D0, l.D1 = start, stop
	return l
}

// Ticks returns roughly count evenly spaced round values inside the domain.
func (l *Linear) Ticks(count int) []float64 {
	start, stop := l.D0, l.D1
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
		ticks[i] = unsignedZero(ticks[i])
	}
	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

func stepFactor(err float64) float64 {
	switch {
	case err >= e10:
		return 10
	case err >= e5:
		return 5
	case err >= e2:
		return 2
	}
	return 1
}

// tickIncrement returns the tick step; negative values encode 1/step for
// sub-unit steps so that the division stays exact.
func tickIncrement(start, stop, count float64) float64 {
	step := (stop - start) / math.Max(0, count)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	factor := stepFactor(step / math.Pow(10, power))
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	factor := stepFactor(step / math.Pow(10, power))
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func unsignedZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
