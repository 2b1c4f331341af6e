package SRJet

import (
	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/types"
)

// RefineSigmaThreshold is the magnetization above which a block is refined
const RefineSigmaThreshold = 0.01

// Magnetization is the field energy to rest mass density ratio |B|^2/rho
func Magnetization(rho, b1, b2, b3 float64) float64 {
	return (b1*b1 + b2*b2 + b3*b3) / rho
}

/*
RefinementCondition flags a block for refinement when the largest
magnetization over cells [is, ie] x [js, je] x [ks, ke] exceeds
RefineSigmaThreshold. Blocks are never flagged for derefinement.
*/
func RefinementCondition(w mesh.Primitives, bc mesh.CellField,
	is, ie, js, je, ks, ke int) (flag types.RefineFlag, maxSigma float64) {
	for k := ks; k <= ke; k++ {
		for j := js; j <= je; j++ {
			for i := is; i <= ie; i++ {
				sigma := Magnetization(w[types.IDN].At(k, j, i),
					bc[types.IB1].At(k, j, i), bc[types.IB2].At(k, j, i), bc[types.IB3].At(k, j, i))
				if sigma > maxSigma {
					maxSigma = sigma
				}
			}
		}
	}
	flag = types.NoAction
	if maxSigma > RefineSigmaThreshold {
		flag = types.Refine
	}
	return
}

// RefinementCondition over the active cells of blk
func (jet *Jet) RefinementCondition(blk *mesh.Block, w mesh.Primitives,
	bc mesh.CellField) (flag types.RefineFlag, maxSigma float64) {
	if !jet.PP.AdaptiveRefinementUsed {
		return types.NoAction, 0
	}
	return RefinementCondition(w, bc, blk.Is, blk.Ie, blk.Js, blk.Je, blk.Ks, blk.Ke)
}
