package SRJet

import (
	"fmt"
	"math"

	"github.com/notargets/srjet/InputParameters"
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/utils"
)

// PhysicalParameters are the ambient and jet constants of the problem, fixed
// after initialization. Velocities are the spatial components of the four
// velocity.
type PhysicalParameters struct {
	// Ambient medium
	DAmb, PAmb             float64
	VxAmb, VyAmb, VzAmb    float64
	BxAmb, ByAmb, BzAmb    float64
	DJet, PJet             float64
	VxJet, VyJet, VzJet    float64
	BxJet, ByJet, BzJet    float64
	B0                     float64 // Jet azimuthal field amplitude
	Z0                     float64 // Field line decay length, <= 0 means infinite
	RJet, DrJet            float64 // Jet core radius and transition half width
	Mang, Dang             float64 // Azimuthal perturbation mode and amplitude
	Gamma                  float64 // Adiabatic index
	X1Min, X1Max, X1Rat    float64 // Domain inner radial edge, outer edge, radial grid ratio
	MagneticFieldsEnabled  bool
	AdaptiveRefinementUsed bool
}

func NewPhysicalParameters(ip *InputParameters.InputParametersJet) (pp PhysicalParameters, err error) {
	if err = ip.Validate(); err != nil {
		err = fmt.Errorf("invalid jet configuration: %w", err)
		return
	}
	var (
		pr = ip.Problem
	)
	pp = PhysicalParameters{
		DAmb: pr.D, PAmb: pr.P,
		VxAmb: pr.Vx, VyAmb: pr.Vy, VzAmb: pr.Vz,
		BxAmb: pr.Bx, ByAmb: pr.By, BzAmb: pr.Bz,
		DJet: pr.Djet, PJet: pr.Pjet,
		VxJet: pr.Vxjet, VyJet: pr.Vyjet, VzJet: pr.Vzjet,
		BxJet: pr.Bxjet, ByJet: pr.Byjet, BzJet: pr.Bzjet,
		B0:   pr.B0,
		Z0:   pr.Z0,
		RJet: pr.Rjet, DrJet: pr.Drjet,
		Mang: pr.Mang, Dang: pr.Dang,
		Gamma: ip.Hydro.Gamma,
		X1Min: ip.Mesh.X1min, X1Max: ip.Mesh.X1max, X1Rat: ip.Mesh.X1rat,
		MagneticFieldsEnabled:  ip.Job.MagneticFields,
		AdaptiveRefinementUsed: ip.Job.Adaptive,
	}
	return
}

func (pp PhysicalParameters) RegionSize(ip *InputParameters.InputParametersJet) mesh.RegionSize {
	return mesh.RegionSize{
		X1Min: pp.X1Min, X1Max: pp.X1Max, X1Rat: pp.X1Rat,
		X2Min: ip.Mesh.X2min, X2Max: ip.Mesh.X2max,
		X3Min: ip.Mesh.X3min, X3Max: ip.Mesh.X3max,
		Nx1: ip.Mesh.Nx1, Nx2: ip.Mesh.Nx2, Nx3: ip.Mesh.Nx3,
	}
}

// DerivedInvariants are pure functions of PhysicalParameters
type DerivedInvariants struct {
	GammaAmb, GammaJet         float64 // Lorentz factors
	GamAdd                     float64 // Gamma/(Gamma-1)
	AtwoodAmb, AtwoodJet       float64 // Gamma_L^2 (rho + GamAdd p)
	EnthalpyAmb, EnthalpyJet   float64 // (1 + GamAdd p/rho) Gamma_L
	RAngAmb, RAngJet           float64 // vx/vz, opening
	PhAngAmb, PhAngJet         float64 // vy/vz, rotation
	A                          float64 // Length scale of the core field, rjet/2
	D                          float64 // Transition band normalization, 1/(4 drjet^3)
	BphiJet, BphiCenter        float64 // Azimuthal field at the jet radius and at the inner edge
	BernoulliAmb, BernoulliJet float64 // At the boundary, where pressure is ambient
	BoundaryAtwoodAmb          float64
	BoundaryAtwoodJet          float64
}

func DeriveInvariants(pp PhysicalParameters) (di DerivedInvariants) {
	var (
		k    = pp.Gamma / (pp.Gamma - 1.)
		gAmb = math.Sqrt(1. + pp.VxAmb*pp.VxAmb + pp.VyAmb*pp.VyAmb + pp.VzAmb*pp.VzAmb)
		gJet = math.Sqrt(1. + pp.VxJet*pp.VxJet + pp.VyJet*pp.VyJet + pp.VzJet*pp.VzJet)
		a    = pp.RJet / 2.
	)
	di = DerivedInvariants{
		GammaAmb:    gAmb,
		GammaJet:    gJet,
		GamAdd:      k,
		AtwoodAmb:   gAmb * gAmb * (pp.DAmb + k*pp.PAmb),
		AtwoodJet:   gJet * gJet * (pp.DJet + k*pp.PJet),
		EnthalpyAmb: (1. + k*pp.PAmb/pp.DAmb) * gAmb,
		EnthalpyJet: (1. + k*pp.PJet/pp.DJet) * gJet,
		RAngAmb:     ratio(pp.VxAmb, pp.VzAmb),
		RAngJet:     ratio(pp.VxJet, pp.VzJet),
		PhAngAmb:    ratio(pp.VyAmb, pp.VzAmb),
		PhAngJet:    ratio(pp.VyJet, pp.VzJet),
		A:           a,
		D:           1. / (4. * utils.POW(pp.DrJet, 3)),
	}
	di.BphiJet = pp.B0 * a * pp.RJet / (a*a + pp.RJet*pp.RJet)
	di.BphiCenter = pp.B0 * a * pp.X1Min / (a*a + pp.X1Min*pp.X1Min) *
		utils.SmoothStep((pp.X1Min-pp.RJet)/pp.DrJet)
	// The boundary holds the ambient pressure everywhere, jet values included
	di.BernoulliJet = (1.+k*pp.PAmb/pp.DJet)*gJet + di.BphiCenter*di.BphiCenter/(gJet*pp.DJet)
	di.BernoulliAmb = (1. + k*pp.PAmb/pp.DAmb) * gAmb
	di.BoundaryAtwoodJet = gJet * gJet * (pp.DJet + k*pp.PAmb)
	di.BoundaryAtwoodAmb = gAmb * gAmb * (pp.DAmb + k*pp.PAmb)
	return
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func (pp PhysicalParameters) Print(di DerivedInvariants) {
	fmt.Printf("Lorentz factor ambient, jet = %8.5f, %8.5f\n", di.GammaAmb, di.GammaJet)
	fmt.Printf("Atwood ambient, jet = %8.5f, %8.5f\n", di.AtwoodAmb, di.AtwoodJet)
	fmt.Printf("Bernoulli ambient, jet = %8.5f, %8.5f\n", di.BernoulliAmb, di.BernoulliJet)
	fmt.Printf("Opening vx/vz ambient, jet = %8.5f, %8.5f\n", di.RAngAmb, di.RAngJet)
	fmt.Printf("Rotation vy/vz ambient, jet = %8.5f, %8.5f\n", di.PhAngAmb, di.PhAngJet)
	fmt.Printf("Transition band = [%8.5f, %8.5f], inner edge = %8.5f\n",
		pp.RJet-pp.DrJet, pp.RJet+pp.DrJet, pp.X1Min)
}
