package SRJet

// RadialFaceField is the discrete curl of the potential on the radial face at
// rf spanning [zf, zf1]. Faces inside the inner edge take the mirrored radius
// with the sign flipped, the reflection of the field across the edge.
func (jet *Jet) RadialFaceField(rf, zf, zf1 float64) (b1 float64) {
	var (
		x1min = jet.PP.X1Min
		dz    = zf1 - zf
	)
	if rf < x1min {
		mir := 2.*x1min - rf
		b1 = -(jet.Potential(mir, zf) - jet.Potential(mir, zf1)) / dz
		return
	}
	b1 = (jet.Potential(rf, zf) - jet.Potential(rf, zf1)) / dz
	return
}

// AxialFaceField is the discrete curl of the potential on the axial face at zf
// spanning radii [rf, rf1], the flux difference over the annulus area. Faces
// inside the inner edge use the mirrored annulus.
func (jet *Jet) AxialFaceField(rf, rf1, zf float64) (b3 float64) {
	if rf < jet.PP.X1Min {
		rf, rf1 = jet.mirroredAnnulus(rf, rf1)
	}
	b3 = 2. * (rf1*jet.Potential(rf1, zf) - rf*jet.Potential(rf, zf)) / (rf1*rf1 - rf*rf)
	return
}

// mirroredAnnulus reflects the cell [rf, rf1] about the inner edge x1min, not
// about the first interior cell center. On a geometrically stretched grid the
// outer mirrored face follows the grid ratio, otherwise the cell width is
// carried over.
func (jet *Jet) mirroredAnnulus(rf, rf1 float64) (m0, m1 float64) {
	var (
		x1min = jet.PP.X1Min
		x1rat = jet.PP.X1Rat
	)
	m0 = 2.*x1min - rf1
	if x1rat > 1. {
		m1 = x1rat * m0
	}
	if m1 <= m0 {
		m1 = m0 + (rf1 - rf)
	}
	return
}
