package SRJet

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/srjet/InputParameters"
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

// exampleInput is the rotating, twisted jet of the example input file
func exampleInput(t *testing.T) *InputParameters.InputParametersJet {
	ip := InputParameters.NewInputParametersJet()
	require.NoError(t, ip.Parse([]byte(InputParameters.ExampleYAMLFile)))
	return ip
}

// scenarioInput is a cold, unmagnetized, non rotating jet
func scenarioInput(t *testing.T) *InputParameters.InputParametersJet {
	ip := exampleInput(t)
	ip.Problem.Vxjet, ip.Problem.Vyjet = 0, 0
	ip.Problem.B0, ip.Problem.Dang = 0, 0
	ip.Hydro.Gamma = 4. / 3.
	return ip
}

func newTestJet(t *testing.T, ip *InputParameters.InputParametersJet, ProcLimit int) *Jet {
	pp, err := NewPhysicalParameters(ip)
	require.NoError(t, err)
	return NewJet(pp, ProcLimit, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewPhysicalParameters(t *testing.T) {
	{ // Missing keys are reported together
		ip := InputParameters.NewInputParametersJet()
		_, err := NewPhysicalParameters(ip)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "problem/djet")
		assert.Contains(t, err.Error(), "hydro/gamma")
	}
	{
		ip := exampleInput(t)
		ip.Problem.Drjet = 0
		_, err := NewPhysicalParameters(ip)
		assert.ErrorContains(t, err, "problem/drjet must be positive")
	}
	{
		ip := exampleInput(t)
		pp, err := NewPhysicalParameters(ip)
		require.NoError(t, err)
		assert.Equal(t, 1., pp.RJet)
		assert.Equal(t, 10., pp.Z0)
		assert.True(t, pp.MagneticFieldsEnabled)
		rs := pp.RegionSize(ip)
		assert.Equal(t, 64, rs.Nx1)
		assert.Equal(t, 40., rs.X3Max)
	}
}

func TestDerivedInvariants(t *testing.T) {
	jet := newTestJet(t, scenarioInput(t), 1)
	di := jet.DI
	assert.InDelta(t, math.Sqrt(26.), di.GammaJet, 1.e-14)
	assert.Equal(t, 1., di.GammaAmb)
	assert.InDelta(t, 4., di.GamAdd, 1.e-8)
	assert.InDelta(t, 0.5, di.A, 1.e-15)
	assert.InDelta(t, 250., di.D, 1.e-9)
	assert.Equal(t, 0., di.RAngJet)
	assert.Equal(t, 0., di.BphiCenter)
}

func TestFlux(t *testing.T) {
	jet := newTestJet(t, exampleInput(t), 1)
	var (
		rj, dr = jet.PP.RJet, jet.PP.DrJet
	)
	assert.Equal(t, 0., jet.Flux(jet.PP.X1Min))
	{ // Continuity at both ends of the transition band
		for _, r := range []float64{rj - dr, rj + dr} {
			below, at := jet.Flux(r-1.e-13), jet.Flux(r)
			assert.InEpsilon(t, at, below, 1.e-9, "r = %v", r)
		}
		// The frozen value is the band antiderivative at its outer end
		assert.InEpsilon(t, jet.fluxMax, jet.Flux(5.), 1.e-15)
		assert.InEpsilon(t, jet.Flux(rj+dr-1.e-12), jet.Flux(5.), 1.e-9)
	}
	{ // The derivative is r0 times the axial source field, inside and across the band
		settings := &fd.Settings{Formula: fd.Central, Step: 1.e-6}
		for _, r := range []float64{0.2, 0.5, rj - dr, rj - 0.05, rj, rj + 0.05, rj + dr, 2.} {
			num := fd.Derivative(jet.Flux, r, settings)
			assert.InDelta(t, jet.FluxDerivative(r), num, 1.e-7, "r = %v", r)
		}
	}
	{ // Monotonic
		var last float64
		for r := 0.; r < 2.; r += 0.01 {
			f := jet.Flux(r)
			assert.GreaterOrEqual(t, f, last-1.e-13)
			last = f
		}
	}
}

func TestPotentialFinite(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.05
	jet := newTestJet(t, ip, 1)
	var (
		rmin = jet.PP.X1Min * 1.0001
		rmax = jet.PP.X1Max
		N    = 200
	)
	for n := 0; n <= N; n++ {
		r := rmin + (rmax-rmin)*float64(n)/float64(N)
		for _, z := range []float64{0, 0.5, 5, 40} {
			assert.False(t, math.IsNaN(jet.Potential(r, z)*r))
			assert.False(t, math.IsInf(jet.Potential(r, z)*r, 0))
		}
	}
	// With the inner edge on the axis no flux is enclosed there, nothing to clamp
	ip.Mesh.X1min = 0
	jet = newTestJet(t, ip, 1)
	assert.Equal(t, 0., jet.Potential(0, 1))
	assert.Equal(t, 0., jet.Potential(-0.3, 1))
	assert.Equal(t, int64(0), jet.Diag.AxisRadiusClamps.Load())
	// Flux through the axis with the inner edge below it, the radius is clamped
	ip.Mesh.X1min = -0.5
	jet = newTestJet(t, ip, 1)
	A := jet.Potential(0, 0)
	assert.False(t, math.IsInf(A, 0))
	assert.Greater(t, math.Abs(A), 1.)
	assert.Equal(t, int64(1), jet.Diag.AxisRadiusClamps.Load())
}

func TestSourceRadius(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.1
	jet := newTestJet(t, ip, 1)
	var (
		pp  = jet.PP
		top = pp.RJet + pp.DrJet
	)
	{ // Outside the band the mapping is the identity, inside the edge it clamps
		for _, r := range []float64{top, top + 0.3, 7.} {
			assert.Equal(t, r, jet.SourceRadius(r, 3.))
		}
		for _, r := range []float64{pp.X1Min, 0.05, -0.2} {
			assert.Equal(t, pp.X1Min, jet.SourceRadius(r, 3.))
		}
	}
	{ // Round trip of the rotation mapping
		for _, z := range []float64{0, 0.5, 2} {
			for r0 := pp.X1Min; r0 < top; r0 += 0.0373 {
				r := jet.FieldLineRadius(r0, z)
				if r >= top {
					continue
				}
				assert.InDelta(t, r0, jet.SourceRadius(r, z), 1.e-10, "r0, z = %v, %v", r0, z)
			}
			for r := pp.X1Min + 0.01; r < top; r += 0.05 {
				assert.InDelta(t, r, jet.FieldLineRadius(jet.SourceRadius(r, z), z), 1.e-10)
			}
		}
	}
	{ // No twist at the boundary itself
		assert.InDelta(t, 0.7, jet.SourceRadius(0.7, 0), 1.e-12)
	}
	{ // Infinite decay length keeps twisting linearly in z
		ip.Problem.Z0 = 0
		jet = newTestJet(t, ip, 1)
		L, e := jet.decay(3)
		assert.Equal(t, 3., L)
		assert.Equal(t, 1., e)
	}
	assert.Equal(t, int64(0), jet.Diag.Total())
}

func TestLorentzFactor(t *testing.T) {
	jet := newTestJet(t, scenarioInput(t), 1)
	// Ambient medium at rest
	assert.InDelta(t, 1., jet.LorentzFactor(1, 1.04), 1.e-14)
	assert.Equal(t, int64(0), jet.Diag.LorentzFactorClamps.Load())
	// Negative radicand
	assert.Equal(t, 1., jet.LorentzFactor(1, -100))
	assert.Equal(t, int64(1), jet.Diag.LorentzFactorClamps.Load())
	// Non finite radicand
	assert.Equal(t, 1., jet.LorentzFactor(0, 1))
	assert.Equal(t, int64(2), jet.Diag.LorentzFactorClamps.Load())
	// Below one
	assert.Equal(t, 1., jet.LorentzFactor(10, 1))
	assert.Equal(t, int64(3), jet.Diag.LorentzFactorClamps.Load())
	jet.Diag.Reset()
	assert.Equal(t, int64(0), jet.Diag.Total())
}

func TestBoundaryState(t *testing.T) {
	{ // Jet scenario, core gets the jet density and velocity, far field the ambient medium
		jet := newTestJet(t, scenarioInput(t), 1)
		cs := jet.BoundaryState(0.2, 0, 0)
		assert.InDelta(t, 0.1, cs.Rho, 1.e-10)
		assert.InDelta(t, 5., cs.Vz, 1.e-10)
		assert.Equal(t, 0., cs.Vx)
		assert.Equal(t, 0., cs.Vy)
		assert.Equal(t, 0.01, cs.P)
		cs = jet.BoundaryState(3, 0, 0)
		assert.InDelta(t, 1., cs.Rho, 1.e-12)
		assert.InDelta(t, 0., cs.Vz, 1.e-6)
		// The transition band is in between
		cs = jet.BoundaryState(1, 0, 0)
		assert.True(t, cs.Rho > 0.1 && cs.Rho < 1)
		assert.True(t, cs.Vz > 0 && cs.Vz < 5)
		assert.Equal(t, int64(0), jet.Diag.Total())
	}
	{ // Without a perturbation the state is independent of azimuth
		ip := exampleInput(t)
		ip.Problem.Dang = 0
		jet := newTestJet(t, ip, 1)
		for _, r := range []float64{0.3, 0.95, 1.05, 2} {
			ref := jet.BoundaryState(r, 0, 2)
			for _, phi := range []float64{0.4, 1.7, 3.1, 5.5} {
				assert.Equal(t, ref, jet.BoundaryState(r, phi, 2))
			}
		}
	}
	{ // With a perturbation only the density ripples
		jet := newTestJet(t, exampleInput(t), 1)
		a, b := jet.BoundaryState(0.98, 0, 0), jet.BoundaryState(0.98, math.Pi/4, 0)
		assert.NotEqual(t, a.Rho, b.Rho)
		assert.Equal(t, a.Vz, b.Vz)
		assert.Equal(t, a.Vy, b.Vy)
	}
	{ // Rotating jet has positive axial velocity and rotates inside the band
		jet := newTestJet(t, exampleInput(t), 1)
		cs := jet.BoundaryState(0.5, 0, 1)
		assert.Greater(t, cs.Vz, 0.)
		assert.Greater(t, cs.Vy, 0.)
		assert.Greater(t, cs.Vx, 0.)
	}
}

func TestFaceFieldDivergence(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.05
	for _, rat := range []float64{1, 1.04} {
		ip.Mesh.X1rat = rat
		jet := newTestJet(t, ip, 1)
		var (
			rf = []float64{0.1, 0.4, 0.93, 1.02, 1.3}
			zf = []float64{0, 0.1, 0.25, 0.7}
		)
		for i := 0; i < len(rf)-1; i++ {
			for k := 0; k < len(zf)-1; k++ {
				var (
					r0, r1 = rf[i], rf[i+1]
					z0, z1 = zf[k], zf[k+1]
					dz     = z1 - z0
				)
				div := r1*dz*jet.RadialFaceField(r1, z0, z1) - r0*dz*jet.RadialFaceField(r0, z0, z1) +
					0.5*(r1*r1-r0*r0)*(jet.AxialFaceField(r0, r1, z1)-jet.AxialFaceField(r0, r1, z0))
				assert.InDelta(t, 0., div, 1.e-13, "i, k = %d, %d", i, k)
			}
		}
	}
}

func TestFaceFieldMirror(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.2
	jet := newTestJet(t, ip, 1)
	{ // Radial faces inside the edge are reflected
		assert.InDelta(t, -jet.RadialFaceField(0.3, 1, 1.1), jet.RadialFaceField(0.1, 1, 1.1), 1.e-12)
	}
	{ // Additive mirroring on a uniform grid
		m0, m1 := jet.mirroredAnnulus(0.1, 0.15)
		assert.InDelta(t, 0.25, m0, 1.e-15)
		assert.InDelta(t, 0.3, m1, 1.e-15)
		assert.Equal(t, jet.AxialFaceField(m0, m1, 1), jet.AxialFaceField(0.1, 0.15, 1))
	}
	{ // Geometric mirroring, falling back to additive when degenerate
		jet.PP.X1Rat = 1.1
		m0, m1 := jet.mirroredAnnulus(0.1, 0.15)
		assert.InDelta(t, 0.25, m0, 1.e-15)
		assert.InDelta(t, 0.275, m1, 1.e-15)
		m0, m1 = jet.mirroredAnnulus(0.3, 0.4)
		assert.InDelta(t, 0., m0, 1.e-15)
		assert.InDelta(t, 0.1, m1, 1.e-15)
	}
}

func testBlock(t *testing.T, ip *InputParameters.InputParametersJet, pp PhysicalParameters) *mesh.Block {
	ip.Mesh.Nx1, ip.Mesh.Nx2, ip.Mesh.Nx3 = 24, 3, 4
	ip.Mesh.X1max, ip.Mesh.X3max = 2, 1
	pp.X1Max = 2
	blk, err := mesh.NewBlock(pp.RegionSize(ip), ip.Job.NGhost)
	require.NoError(t, err)
	return blk
}

func fillBlock(t *testing.T, ip *InputParameters.InputParametersJet, ProcLimit int) (
	jet *Jet, blk *mesh.Block, w mesh.Primitives, b mesh.FaceField) {
	jet = newTestJet(t, ip, ProcLimit)
	blk = testBlock(t, ip, jet.PP)
	w, b, _ = jet.ProblemGenerator(blk)
	bf, ok := jet.BoundaryFunctions()[types.InnerX3]
	require.True(t, ok)
	il, iu, jl, ju, kl, ku, ngh := blk.InnerX3Range()
	bf(blk, w, b, 0, 0, il, iu, jl, ju, kl, ku, ngh)
	return
}

func TestJetInnerX3(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.05
	jet, blk, w, b := fillBlock(t, ip, 1)
	il, iu, jl, ju, kl, _, ngh := blk.InnerX3Range()
	{ // Ghost cells carry the boundary state, active cells are untouched
		for k := kl - ngh; k < kl; k++ {
			for j := jl; j <= ju; j++ {
				for i := il; i <= iu; i++ {
					cs := jet.BoundaryState(blk.X1v(i), blk.X2v(j), blk.X3v(k))
					assert.InDelta(t, cs.Rho, w[types.IDN].At(k, j, i), 1.e-14)
					assert.InDelta(t, cs.Vy, w[types.IVY].At(k, j, i), 1.e-14)
					assert.InDelta(t, cs.Vz, w[types.IVZ].At(k, j, i), 1.e-14)
					assert.Equal(t, jet.PP.PAmb, w[types.IPR].At(k, j, i))
				}
			}
		}
		assert.Equal(t, jet.PP.DAmb, w[types.IDN].At(kl, 0, blk.Is))
		assert.Equal(t, jet.PP.VzAmb, w[types.IVZ].At(kl, 0, blk.Is))
	}
	{ // Face field closes the ghost cells and the core flow follows the field
		bc := blk.NewCellField()
		mesh.CalculateCellCenteredField(b, bc, il, iu, jl, ju, kl-ngh, kl-1)
		for k := kl - ngh; k < kl; k++ {
			dz := blk.X3f(k+1) - blk.X3f(k)
			for j := jl; j <= ju; j++ {
				assert.Equal(t, 0., b.X2f.At(k, j, blk.Is))
				for i := blk.Is; i <= iu; i++ {
					r0, r1 := blk.X1f(i), blk.X1f(i+1)
					div := r1*dz*b.X1f.At(k, j, i+1) - r0*dz*b.X1f.At(k, j, i) +
						0.5*(r1*r1-r0*r0)*(b.X3f.At(k+1, j, i)-b.X3f.At(k, j, i))
					assert.InDelta(t, 0., div, 1.e-12)
					if blk.X1v(i) <= jet.PP.RJet+jet.PP.DrJet && bc[types.IB3].At(k, j, i) != 0 {
						assert.InDelta(t, w[types.IVZ].At(k, j, i)*bc[types.IB1].At(k, j, i)/bc[types.IB3].At(k, j, i),
							w[types.IVX].At(k, j, i), 1.e-14)
					}
				}
			}
		}
	}
}

func TestJetInnerX3KeepsActiveFace(t *testing.T) {
	ip := exampleInput(t)
	jet := newTestJet(t, ip, 2)
	blk := testBlock(t, ip, jet.PP)
	w, b, _ := jet.ProblemGenerator(blk)
	il, iu, jl, ju, kl, ku, ngh := blk.InnerX3Range()
	// An evolved field, a uniform axial field added keeps it divergence free
	for k := 0; k < b.X3f.Nk; k++ {
		for j := 0; j < b.X3f.Nj; j++ {
			for i := 0; i < b.X3f.Ni; i++ {
				b.X3f.Set(k, j, i, b.X3f.At(k, j, i)+0.3)
			}
		}
	}
	before := b.X3f.Copy()
	jet.JetInnerX3(blk, w, b, 0, 0, il, iu, jl, ju, kl, ku, ngh)
	for k := kl; k < b.X3f.Nk; k++ {
		for j := 0; j < b.X3f.Nj; j++ {
			for i := 0; i < b.X3f.Ni; i++ {
				assert.Equal(t, before.At(k, j, i), b.X3f.At(k, j, i))
			}
		}
	}
	// Only the ghost faces below kl were written
	assert.NotEqual(t, before.At(kl-1, jl, blk.Is), b.X3f.At(kl-1, jl, blk.Is))
	dz := blk.X3f(kl+1) - blk.X3f(kl)
	for i := blk.Is; i <= blk.Ie; i++ {
		r0, r1 := blk.X1f(i), blk.X1f(i+1)
		div := r1*dz*b.X1f.At(kl, blk.Js, i+1) - r0*dz*b.X1f.At(kl, blk.Js, i) +
			0.5*(r1*r1-r0*r0)*(b.X3f.At(kl+1, blk.Js, i)-b.X3f.At(kl, blk.Js, i))
		assert.InDelta(t, 0., div, 1.e-12)
	}
}

func TestJetInnerX3NoFallbacks(t *testing.T) {
	{ // The example setup, inner edge on the axis
		jet, _, _, _ := fillBlock(t, exampleInput(t), 2)
		assert.Equal(t, int64(0), jet.Diag.Total(), jet.Diag.String())
	}
	{ // Off axis inner edge
		ip := exampleInput(t)
		ip.Mesh.X1min = 0.05
		jet, _, _, _ := fillBlock(t, ip, 2)
		assert.Equal(t, int64(0), jet.Diag.Total(), jet.Diag.String())
	}
}

func TestSourceRadiusLargeScale(t *testing.T) {
	ip := exampleInput(t)
	ip.Problem.Rjet, ip.Problem.Drjet = 1.e4, 1.e3
	ip.Problem.Z0 = 1.e5
	ip.Mesh.X1min, ip.Mesh.X1max = 100, 5.e4
	jet := newTestJet(t, ip, 1)
	var (
		pp  = jet.PP
		top = pp.RJet + pp.DrJet
		N   = 110
		z   = 5.e4
	)
	for n := 0; n <= N; n++ {
		r := pp.X1Min + (top-pp.X1Min)*float64(n)/float64(N)
		r0 := jet.SourceRadius(r, z)
		assert.InEpsilon(t, r, jet.FieldLineRadius(r0, z), 1.e-9)
	}
	assert.Equal(t, int64(0), jet.Diag.Total(), jet.Diag.String())
}

func TestJetInnerX3Parallel(t *testing.T) {
	ip := exampleInput(t)
	jet1, _, w1, b1 := fillBlock(t, ip, 1)
	jet4, _, w4, b4 := fillBlock(t, exampleInput(t), 4)
	assert.False(t, utils.IsNan(w1[:]))
	for n := range w1 {
		assert.True(t, floats.Equal(w1[n].DataP, w4[n].DataP), types.PrimitiveNames[n])
	}
	assert.True(t, floats.Equal(b1.X1f.DataP, b4.X1f.DataP))
	assert.True(t, floats.Equal(b1.X2f.DataP, b4.X2f.DataP))
	assert.True(t, floats.Equal(b1.X3f.DataP, b4.X3f.DataP))
	assert.Equal(t, jet1.Diag.Total(), jet4.Diag.Total())
}

func TestJetInnerX3Hydro(t *testing.T) {
	ip := exampleInput(t)
	ip.Job.MagneticFields = false
	_, blk, w, b := fillBlock(t, ip, 2)
	_, _, _, _, kl, _, _ := blk.InnerX3Range()
	for _, f := range []float64{b.X1f.At(kl-1, 0, blk.Is), b.X3f.At(kl, 0, blk.Is)} {
		assert.Equal(t, 0., f)
	}
	assert.Greater(t, w[types.IVZ].At(kl-1, 0, blk.Is), 0.)
}

func TestRefinementCondition(t *testing.T) {
	ip := exampleInput(t)
	jet := newTestJet(t, ip, 1)
	blk := testBlock(t, ip, jet.PP)
	var (
		w  = blk.NewPrimitives()
		bc = blk.NewCellField()
	)
	w[types.IDN].Fill(1)
	flag, sigma := jet.RefinementCondition(blk, w, bc)
	assert.Equal(t, types.NoAction, flag)
	assert.Equal(t, 0., sigma)
	// Below threshold
	bc[types.IB3].Fill(0.05)
	flag, sigma = jet.RefinementCondition(blk, w, bc)
	assert.Equal(t, types.NoAction, flag)
	assert.InDelta(t, 0.0025, sigma, 1.e-15)
	// One magnetized cell is enough, ghost cells are ignored
	bc[types.IB1].Set(blk.Ks+1, blk.Js, blk.Ie, 0.2)
	bc[types.IB2].Set(0, 0, 0, 10)
	flag, sigma = jet.RefinementCondition(blk, w, bc)
	assert.Equal(t, types.Refine, flag)
	assert.InDelta(t, 0.0425, sigma, 1.e-15)
	// Refinement disabled
	jet.PP.AdaptiveRefinementUsed = false
	flag, _ = jet.RefinementCondition(blk, w, bc)
	assert.Equal(t, types.NoAction, flag)
	assert.Equal(t, 0.04, Magnetization(1, 0.2, 0, 0))
}

func TestProblemGenerator(t *testing.T) {
	ip := exampleInput(t)
	ip.Mesh.X1min = 0.05
	jet := newTestJet(t, ip, 3)
	blk := testBlock(t, ip, jet.PP)
	w, b, bc := jet.ProblemGenerator(blk)
	assert.Equal(t, jet.PP.DAmb, w[types.IDN].At(blk.Ks, blk.Js, blk.Is))
	assert.Equal(t, jet.PP.PAmb, w[types.IPR].At(blk.Ke, blk.Je, blk.Ie))
	assert.Equal(t, jet.PP.ByAmb, b.X2f.At(blk.Ks, blk.Js, blk.Is))
	i, k := blk.Is+3, blk.Ks
	assert.Equal(t, jet.AxialFaceField(blk.X1f(i), blk.X1f(i+1), blk.X3f(k)), b.X3f.At(k, 0, i))
	assert.Equal(t, jet.RadialFaceField(blk.X1f(blk.NCells1), blk.X3f(k), blk.X3f(k+1)),
		b.X1f.At(k, 1, blk.NCells1))
	assert.InDelta(t, 0.5*(b.X3f.At(k, 0, i)+b.X3f.At(k+1, 0, i)), bc[types.IB3].At(k, 0, i), 1.e-15)
	assert.Greater(t, bc[types.IB3].At(k, 0, i), 0.)
}
