package utils

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrRootNotBracketed = errors.New("root is not bracketed, function has the same sign at both ends")
	ErrRootNotConverged = errors.New("root iteration did not converge")
)

// RootTolerance holds tolerances for brackets of order one. Brackets with a
// larger magnitude scale both tolerances by |x1| + |x2|, the float spacing
// near the root grows with it.
type RootTolerance struct {
	XTol    float64 // Bracket width below which the iteration stops
	FTol    float64 // |f| below which a candidate is accepted
	MaxIter int
}

// Scaled returns the tolerances used on bracket
func (tol RootTolerance) Scaled(bracket [2]float64) (st RootTolerance) {
	var (
		scale = math.Max(1., math.Abs(bracket[0])+math.Abs(bracket[1]))
	)
	st = tol
	st.XTol *= scale
	st.FTol *= scale
	return
}

func DefaultRootTolerance() RootTolerance {
	return RootTolerance{
		XTol:    1.e-12,
		FTol:    1.e-13,
		MaxIter: 200,
	}
}

// SolveMonotonicRoot finds x in bracket with f(x) = 0 for a function that
// changes sign exactly once over the bracket. It uses false position with the
// Illinois modification, so an endpoint that is retained twice in a row has
// its function value halved and the bracket keeps shrinking from both sides.
//
// On failure the best available estimate is still returned alongside the
// error: the endpoint with the smaller |f| when the root is not bracketed, the
// last candidate when the iteration count is exhausted.
func SolveMonotonicRoot(bracket [2]float64, f func(x float64) float64,
	tol RootTolerance) (root float64, err error) {
	var (
		x1, x2 = bracket[0], bracket[1]
		f1, f2 = f(x1), f(x2)
		st     = tol.Scaled(bracket)
		x3, f3 float64
		side   int // -1 when x1 was retained last, +1 for x2
	)
	// Exact hits at either end
	if math.Abs(f1) < st.FTol {
		return x1, nil
	}
	if math.Abs(f2) < st.FTol {
		return x2, nil
	}
	if f1*f2 > 0 || !IsFinite(f1*f2) {
		root = x1
		if math.Abs(f2) < math.Abs(f1) {
			root = x2
		}
		err = fmt.Errorf("%w: f(%g) = %g, f(%g) = %g",
			ErrRootNotBracketed, x1, f1, x2, f2)
		return
	}
	for iter := 0; iter < tol.MaxIter; iter++ {
		x3 = x1 - f1*(x2-x1)/(f2-f1)
		f3 = f(x3)
		if math.Abs(f3) < st.FTol {
			return x3, nil
		}
		if f1*f3 < 0 {
			// Root is in [x1, x3], x1 is retained
			x2, f2 = x3, f3
			if side == -1 {
				f1 *= 0.5
			}
			side = -1
		} else {
			// Root is in [x3, x2], x2 is retained
			x1, f1 = x3, f3
			if side == 1 {
				f2 *= 0.5
			}
			side = 1
		}
		if math.Abs(x2-x1) < st.XTol {
			return x3, nil
		}
	}
	root = x3
	err = fmt.Errorf("%w after %d iterations, bracket [%g, %g]",
		ErrRootNotConverged, tol.MaxIter, x1, x2)
	return
}
