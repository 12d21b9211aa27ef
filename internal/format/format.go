// Package format renders axis and tooltip numbers.
package format

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// SI formats v with the given number of significant digits and an SI
// prefix, e.g. SI(1500, 1) == "2k", SI(0.5, 1) == "500m", SI(10, 1) == "10".
func SI(v float64, digits int) string {
	if digits < 1 {
		digits = 1
	}
	if v == 0 {
		return "0"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'e', digits-1, 64), 64)
	if err != nil {
		rounded = v
	}
	scaled, prefix := humanize.ComputeSI(rounded)
	// ComputeSI divides by a power of ten; strip the float noise it leaves.
	scaled = math.Round(scaled*1e9) / 1e9
	return strconv.FormatFloat(scaled, 'f', -1, 64) + prefix
}

// Thousands formats v with comma group separators: 1234.5 -> "1,234.5".
// v is first rounded to 12 significant digits so summation noise such as
// 0.6000000000000001 prints as 0.6.
func Thousands(v float64) string {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		if rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64); err == nil {
			v = rounded
		}
	}
	return humanize.Commaf(v)
}
