package SRJet

import (
	"math"

	"github.com/notargets/srjet/utils"
)

// CellState is the primitive state of one ghost cell
type CellState struct {
	Rho, Vx, Vy, Vz, P float64
}

// lorentzSnap is how far below 1 a Lorentz factor may round before the
// clamp is counted as a diagnostic
const lorentzSnap = 1.e-12

// LorentzFactor inverts the Bernoulli and Atwood relations
// for the bulk Lorentz factor at the ambient boundary pressure,
//
//	Gamma_L = (psi/(2 k p)) (sqrt(1 + 4 k p atw/psi^2) - 1)
//
// written in the equivalent form 2 atw / (psi (sqrt(1 + 4 k p atw/psi^2) + 1))
// which stays finite as p goes to zero. Results that are not finite or fall
// below 1 are clamped to 1.
func (jet *Jet) LorentzFactor(psi, atw float64) (gamma float64) {
	var (
		kp        = jet.DI.GamAdd * jet.PP.PAmb
		radicand  = 1. + 4.*kp*atw/(psi*psi)
		clampedTo = 1.
	)
	if radicand < 0 || !utils.IsFinite(radicand) {
		jet.Diag.LorentzFactorClamps.Inc()
		jet.Log.Debug("negative Lorentz factor radicand", "psi", psi, "atwood", atw, "radicand", radicand)
		return clampedTo
	}
	gamma = 2. * atw / (psi * (math.Sqrt(radicand) + 1.))
	switch {
	case !utils.IsFinite(gamma) || gamma < 1.-lorentzSnap:
		jet.Diag.LorentzFactorClamps.Inc()
		jet.Log.Debug("Lorentz factor clamped", "psi", psi, "atwood", atw, "gamma", gamma)
		gamma = clampedTo
	case gamma < 1.:
		gamma = 1.
	}
	return
}

// BoundaryState is the jet/ambient mixture at radius r, azimuth phi and
// height z
func (jet *Jet) BoundaryState(r, phi, z float64) (cs CellState) {
	return jet.boundaryStateAt(jet.SourceRadius(r, z), phi, z)
}

/*
boundaryStateAt blends the jet and ambient invariants along the field line
rooted at r0. The jet boundary ripple, r0 (1 + dang cos(mang phi)), enters the
Bernoulli blend used for density only, the velocities stay axisymmetric.
*/
func (jet *Jet) boundaryStateAt(r0, phi, z float64) (cs CellState) {
	var (
		pp   = jet.PP
		di   = jet.DI
		pert = 1. + pp.Dang*math.Cos(pp.Mang*phi)
		w    = jet.blendWeight(r0)
		wp   = jet.blendWeight(r0 * pert)
	)
	atw := utils.Blend(di.BoundaryAtwoodJet, di.BoundaryAtwoodAmb, w)
	bern := utils.Blend(di.BernoulliJet, di.BernoulliAmb, w)
	bernP := utils.Blend(di.BernoulliJet, di.BernoulliAmb, wp)
	bphi := di.BphiJet * w
	psi := (atw + bphi*bphi) / bern
	psiP := (atw + bphi*bphi) / bernP

	gamma := jet.LorentzFactor(psi, atw)
	gammaP := jet.LorentzFactor(psiP, atw)

	_, e := jet.decay(z)
	rot := jet.RotationRate(r0)
	phang := jet.AzimuthalRatio(r0)
	cs.Vz = math.Sqrt((gamma*gamma - 1.) / (1. + rot*rot*e*e + phang*phang))
	cs.Vx = cs.Vz * rot * e
	cs.Vy = cs.Vz * phang
	cs.Rho = psiP / gammaP
	cs.P = pp.PAmb
	return
}
