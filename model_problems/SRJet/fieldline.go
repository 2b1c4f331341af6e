package SRJet

import (
	"errors"
	"math"

	"github.com/notargets/srjet/utils"
)

// decay returns the accumulated twist length z0 (1 - exp(-z/z0)) and the
// local factor exp(-z/z0). A non positive z0 is an infinite decay length.
func (jet *Jet) decay(z float64) (L, e float64) {
	var (
		z0 = jet.PP.Z0
	)
	if z0 <= 0 {
		return z, 1
	}
	e = math.Exp(-z / z0)
	L = z0 * (1. - e)
	return
}

func (jet *Jet) blendWeight(r0 float64) float64 {
	return utils.SmoothStep((r0 - jet.PP.RJet) / jet.PP.DrJet)
}

// RotationRate is the transverse to axial velocity ratio of the field line
// rooted at r0, growing linearly from zero at the inner edge
func (jet *Jet) RotationRate(r0 float64) float64 {
	var (
		pp = jet.PP
	)
	return utils.Blend(jet.DI.RAngJet, jet.DI.RAngAmb, jet.blendWeight(r0)) * (r0 - pp.X1Min) / pp.RJet
}

// AzimuthalRatio is the azimuthal to axial velocity ratio for source radius r0
func (jet *Jet) AzimuthalRatio(r0 float64) float64 {
	var (
		pp = jet.PP
	)
	return utils.Blend(jet.DI.PhAngJet, jet.DI.PhAngAmb, jet.blendWeight(r0)) * (r0 - pp.X1Min) / pp.RJet
}

// FieldLineRadius is the forward mapping, the radius at height z of the field
// line that leaves the inner edge at r0
func (jet *Jet) FieldLineRadius(r0, z float64) float64 {
	L, _ := jet.decay(z)
	return r0 + jet.RotationRate(r0)*L
}

// SourceRadius inverts FieldLineRadius. Radii at or inside the inner edge map
// to the inner edge, radii past the transition band are untwisted.
func (jet *Jet) SourceRadius(r, z float64) (r0 float64) {
	var (
		pp  = jet.PP
		top = pp.RJet + pp.DrJet
		err error
	)
	switch {
	case r <= pp.X1Min:
		return pp.X1Min
	case r >= top:
		return r
	}
	L, _ := jet.decay(z)
	g := func(x float64) float64 {
		return x + jet.RotationRate(x)*L - r
	}
	r0, err = utils.SolveMonotonicRoot([2]float64{pp.X1Min, top}, g, jet.RootTol)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrRootNotBracketed):
			jet.Diag.RootNotBracketed.Inc()
		default:
			jet.Diag.RootNotConverged.Inc()
		}
		r0 = utils.Clamp(r0, pp.X1Min, top)
		jet.Log.Debug("source radius clamped", "r", r, "z", z, "r0", r0, "error", err)
	}
	return
}
