package SRJet

import (
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

/*
JetInnerX3 fills the ngh ghost layers below kl with the jet inflow state.

	Phase 1: primitives, one source radius per (k, i) shared by all j
	Phase 2: face field, B1 on i in [il, iu+1], B2 zero, B3 on faces kl-ngh .. kl-1
	Phase 3: cell centered field, then the radial velocity inside the jet core
	         is realigned with the field, vx = vz * Bcc1/Bcc3

The active face kl belongs to the interior and is left as is. Each phase splits the radial index range over go routines, a go routine only
writes its own radial slice. Time and dt are unused, the inflow is steady.
*/
func (jet *Jet) JetInnerX3(co Coordinates, w mesh.Primitives, b mesh.FaceField,
	time, dt float64, il, iu, jl, ju, kl, ku, ngh int) {
	var (
		pp   = jet.PP
		Ni   = iu - il + 1
		pmC  = utils.NewPartitionMap(utils.ParallelDegreeFor(jet.ProcLimit, Ni), Ni)
		pmF  = utils.NewPartitionMap(utils.ParallelDegreeFor(jet.ProcLimit, Ni+1), Ni+1)
		core = pp.RJet + pp.DrJet
	)
	pmC.ParallelRange(il, func(np, iMin, iMax int) {
		for k := 1; k <= ngh; k++ {
			z := co.X3v(kl - k)
			for i := iMin; i <= iMax; i++ {
				r0 := jet.SourceRadius(co.X1v(i), z)
				for j := jl; j <= ju; j++ {
					cs := jet.boundaryStateAt(r0, co.X2v(j), z)
					w[types.IDN].Set(kl-k, j, i, cs.Rho)
					w[types.IVX].Set(kl-k, j, i, cs.Vx)
					w[types.IVY].Set(kl-k, j, i, cs.Vy)
					w[types.IVZ].Set(kl-k, j, i, cs.Vz)
					w[types.IPR].Set(kl-k, j, i, cs.P)
				}
			}
		}
	})
	if !pp.MagneticFieldsEnabled {
		return
	}
	pmF.ParallelRange(il, func(np, iMin, iMax int) {
		for i := iMin; i <= iMax; i++ {
			for k := 1; k <= ngh; k++ {
				b1 := jet.RadialFaceField(co.X1f(i), co.X3f(kl-k), co.X3f(kl-k+1))
				for j := jl; j <= ju; j++ {
					b.X1f.Set(kl-k, j, i, b1)
				}
			}
			if i > iu {
				continue
			}
			for k := 1; k <= ngh; k++ {
				for j := jl; j <= ju+1; j++ {
					b.X2f.Set(kl-k, j, i, 0)
				}
			}
			for kf := kl - ngh; kf < kl; kf++ {
				b3 := jet.AxialFaceField(co.X1f(i), co.X1f(i+1), co.X3f(kf))
				for j := jl; j <= ju; j++ {
					b.X3f.Set(kf, j, i, b3)
				}
			}
		}
	})
	bc := cellFieldLike(w[types.IDN])
	pmC.ParallelRange(il, func(np, iMin, iMax int) {
		mesh.CalculateCellCenteredField(b, bc, iMin, iMax, jl, ju, kl-ngh, kl-1)
		for i := iMin; i <= iMax; i++ {
			if co.X1v(i) > core {
				continue
			}
			for k := 1; k <= ngh; k++ {
				for j := jl; j <= ju; j++ {
					bcc3 := bc[types.IB3].At(kl-k, j, i)
					if bcc3 == 0 {
						jet.Diag.AlignmentsSkipped.Inc()
						continue
					}
					vz := w[types.IVZ].At(kl-k, j, i)
					w[types.IVX].Set(kl-k, j, i, vz*bc[types.IB1].At(kl-k, j, i)/bcc3)
				}
			}
		}
	})
}

func cellFieldLike(A utils.Array3D) (bc mesh.CellField) {
	for n := range bc {
		bc[n] = utils.NewArray3D(A.Dims())
	}
	return
}
