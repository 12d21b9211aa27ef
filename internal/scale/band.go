package scale

import "math"

// Band divides a continuous range into evenly spaced bands, one per domain
// value, with inner and outer padding expressed as a fraction of the step.
type Band struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over domain spanning [r0, r1]. padding sets
// both inner and outer padding; bands are centred (align 0.5).
func NewBand(domain []string, r0, r1, padding float64) *Band {
	b := &Band{
		domain: append([]string(nil), domain...),
		index:  make(map[string]int, len(domain)),
	}
	for i, d := range b.domain {
		if _, dup := b.index[d]; !dup {
			b.index[d] = i
		}
	}
	padding = math.Min(1, math.Max(0, padding))
	n := float64(len(b.domain))
	b.step = (r1 - r0) / math.Max(1, n-padding+padding*2)
	b.start = r0 + (r1-r0-b.step*(n-padding))*0.5
	b.bandwidth = b.step * (1 - padding)
	return b
}

// Map returns the start of the band for key and whether key is in the domain.
func (b *Band) Map(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth is the width of each band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step is the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Domain returns a copy of the ordered domain.
func (b *Band) Domain() []string { return append([]string(nil), b.domain...) }
