package SRJet

import (
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

/*
ProblemGenerator initializes a block, ghost cells included, with the ambient
medium at rest state. With magnetic fields the radial and axial faces carry
the jet field from the same potential used by the inflow boundary, so the
interior starts threaded by the field lines leaving the boundary, and the
azimuthal faces carry the uniform ambient by.
*/
func (jet *Jet) ProblemGenerator(blk *mesh.Block) (w mesh.Primitives, b mesh.FaceField, bc mesh.CellField) {
	var (
		pp = jet.PP
		Ni = blk.NCells1
		pm = utils.NewPartitionMap(utils.ParallelDegreeFor(jet.ProcLimit, Ni), Ni)
	)
	w = blk.NewPrimitives()
	b = blk.NewFaceField()
	bc = blk.NewCellField()
	w[types.IDN].Fill(pp.DAmb)
	w[types.IVX].Fill(pp.VxAmb)
	w[types.IVY].Fill(pp.VyAmb)
	w[types.IVZ].Fill(pp.VzAmb)
	w[types.IPR].Fill(pp.PAmb)
	if !pp.MagneticFieldsEnabled {
		return
	}
	b.X2f.Fill(pp.ByAmb)
	pm.ParallelRange(0, func(np, iMin, iMax int) {
		for i := iMin; i <= iMax; i++ {
			for k := 0; k < blk.NCells3; k++ {
				b1 := jet.RadialFaceField(blk.X1f(i), blk.X3f(k), blk.X3f(k+1))
				for j := 0; j < blk.NCells2; j++ {
					b.X1f.Set(k, j, i, b1)
				}
				if i == Ni-1 { // The outermost radial face
					b1 = jet.RadialFaceField(blk.X1f(i+1), blk.X3f(k), blk.X3f(k+1))
					for j := 0; j < blk.NCells2; j++ {
						b.X1f.Set(k, j, i+1, b1)
					}
				}
			}
			for k := 0; k <= blk.NCells3; k++ {
				b3 := jet.AxialFaceField(blk.X1f(i), blk.X1f(i+1), blk.X3f(k))
				for j := 0; j < blk.NCells2; j++ {
					b.X3f.Set(k, j, i, b3)
				}
			}
		}
	})
	pm.ParallelRange(0, func(np, iMin, iMax int) {
		mesh.CalculateCellCenteredField(b, bc, iMin, iMax, 0, blk.NCells2-1, 0, blk.NCells3-1)
	})
	return
}
