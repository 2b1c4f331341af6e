package SRJet

import (
	"math"

	"github.com/notargets/srjet/utils"
)

// MinRadius bounds |r| away from zero where the potential divides by radius
const MinRadius = 1.e-12

/*
The flux function is the magnetic flux enclosed within source radius r0, the
antiderivative of r0 * B0 a^2/(a^2 + r0^2) * S((r0 - rjet)/drjet). Inside
rjet - drjet the smoothing weight is 1 and the antiderivative is logarithmic.
Across the transition band the weight is the cubic smooth step and the
antiderivative picks up polynomial and arctangent terms. Past rjet + drjet the
weight vanishes and the flux is frozen.
*/
func (jet *Jet) fintg1(r float64) float64 {
	var (
		a  = jet.DI.A
		a2 = a * a
	)
	return jet.PP.B0 * (a2 / 2.) * math.Log(a2+r*r)
}

func (jet *Jet) fintg2(r float64) float64 {
	var (
		a, d   = jet.DI.A, jet.DI.D
		a2     = a * a
		rj, dr = jet.PP.RJet, jet.PP.DrJet
		rj2    = rj * rj
		dr2    = dr * dr
	)
	poly := r * (-6.*a2 - 18.*dr2 + 18.*rj2 - 9.*rj*r + 2.*r*r)
	arc := 6. * a * (a2 + 3.*dr2 - 3.*rj2) * math.Atan(r/a)
	lg := (9.*rj*a2 + 6.*utils.POW(dr, 3) + 9.*rj*dr2 - 3.*utils.POW(rj, 3)) * math.Log(a2+r*r)
	return jet.PP.B0 * (d * a2 / 6.) * (poly + arc + lg)
}

// Flux is zero at the inner edge and continuous with a continuous first
// derivative at both ends of the transition band
func (jet *Jet) Flux(r0 float64) (f float64) {
	var (
		rj, dr = jet.PP.RJet, jet.PP.DrJet
	)
	switch {
	case r0 < rj-dr:
		f = jet.fintg1(r0) - jet.fluxInner
	case r0 < rj+dr:
		f = jet.fintg2(r0) - jet.fluxBandLow2 + jet.fluxBandLow1 - jet.fluxInner
	default:
		f = jet.fluxMax
	}
	return
}

// FluxDerivative is dFlux/dr0, r0 times the axial field at the source radius
func (jet *Jet) FluxDerivative(r0 float64) float64 {
	var (
		a2 = jet.DI.A * jet.DI.A
	)
	return jet.PP.B0 * a2 * r0 / (a2 + r0*r0) * utils.SmoothStep((r0-jet.PP.RJet)/jet.PP.DrJet)
}

// Potential is the azimuthal vector potential at (r, z), the flux carried by
// the field line through that point divided by the radius. No flux means no
// potential, on the axis included.
func (jet *Jet) Potential(r, z float64) float64 {
	var (
		f = jet.Flux(jet.SourceRadius(r, z))
	)
	if f == 0 {
		return 0
	}
	if math.Abs(r) < MinRadius {
		jet.Diag.AxisRadiusClamps.Inc()
		r = math.Copysign(MinRadius, r)
	}
	return f / r
}
