package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// SmoothStep is a clamped cubic ease, 1 for x <= -1 and 0 for x >= 1, with a
// continuous first derivative at both ends.
func SmoothStep(x float64) (y float64) {
	var (
		m = Clamp(x, -1, 1)
	)
	y = 0.5 - m*(3.-m*m)/4.
	return
}

// Blend returns the SmoothStep weighted mix of an inner and an outer value,
// inner*w + outer*(1-w).
func Blend(inner, outer, w float64) float64 {
	return (inner-outer)*w + outer
}

func Clamp(x, min, max float64) float64 {
	return math.Max(math.Min(x, max), min)
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
