package mesh

import (
	"fmt"
	"math"

	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

// RegionSize describes the physical extent of a cylindrical (r, phi, z) block
// and its cell counts. X1Rat is the ratio between neighboring radial cell
// widths, 1 for a uniform radial grid.
type RegionSize struct {
	X1Min, X1Max, X1Rat float64
	X2Min, X2Max        float64
	X3Min, X3Max        float64
	Nx1, Nx2, Nx3       int
}

func (rs RegionSize) Stretched() bool {
	return rs.X1Rat > 1. || rs.X1Rat < 1.
}

func (rs RegionSize) Check() (err error) {
	switch {
	case rs.Nx1 < 1 || rs.Nx2 < 1 || rs.Nx3 < 1:
		err = fmt.Errorf("cell counts must be positive, have nx1, nx2, nx3 = %d, %d, %d",
			rs.Nx1, rs.Nx2, rs.Nx3)
	case !(rs.X1Max > rs.X1Min):
		err = fmt.Errorf("x1max must be larger than x1min, have %g <= %g", rs.X1Max, rs.X1Min)
	case !(rs.X3Max > rs.X3Min):
		err = fmt.Errorf("x3max must be larger than x3min, have %g <= %g", rs.X3Max, rs.X3Min)
	case rs.Nx2 > 1 && !(rs.X2Max > rs.X2Min):
		err = fmt.Errorf("x2max must be larger than x2min, have %g <= %g", rs.X2Max, rs.X2Min)
	case !(rs.X1Rat > 0):
		err = fmt.Errorf("x1rat must be positive, have %g", rs.X1Rat)
	}
	return
}

// Block is a single mesh block with NGhost ghost layers in x1 and x3, and in
// x2 when the block has more than one azimuthal cell. Indices are zero based
// and include the ghost cells, active cells are [Is, Ie] x [Js, Je] x [Ks, Ke].
type Block struct {
	Size                      RegionSize
	NGhost                    int
	Is, Ie, Js, Je, Ks, Ke    int
	NCells1, NCells2, NCells3 int
	x1f, x1v                  []float64
	x2f, x2v                  []float64
	x3f, x3v                  []float64
}

func NewBlock(size RegionSize, nGhost int) (b *Block, err error) {
	if size.X1Rat == 0 {
		size.X1Rat = 1
	}
	if err = size.Check(); err != nil {
		return
	}
	if nGhost < 1 {
		err = fmt.Errorf("need at least one ghost layer, have %d", nGhost)
		return
	}
	var (
		ng2 = nGhost
	)
	if size.Nx2 == 1 {
		ng2 = 0
	}
	b = &Block{
		Size:    size,
		NGhost:  nGhost,
		Is:      nGhost,
		Ie:      nGhost + size.Nx1 - 1,
		Js:      ng2,
		Je:      ng2 + size.Nx2 - 1,
		Ks:      nGhost,
		Ke:      nGhost + size.Nx3 - 1,
		NCells1: size.Nx1 + 2*nGhost,
		NCells2: size.Nx2 + 2*ng2,
		NCells3: size.Nx3 + 2*nGhost,
	}
	b.x1f = stretchedFaces(size.X1Min, size.X1Max, size.X1Rat, size.Nx1, nGhost)
	b.x2f = stretchedFaces(size.X2Min, size.X2Max, 1, size.Nx2, ng2)
	b.x3f = stretchedFaces(size.X3Min, size.X3Max, 1, size.Nx3, nGhost)
	b.x1v = centers(b.x1f)
	b.x2v = centers(b.x2f)
	b.x3v = centers(b.x3f)
	return
}

// stretchedFaces places nx+1 active faces between xmin and xmax with
// successive widths in ratio rat, and extends the same progression ng cells
// past each end.
func stretchedFaces(xmin, xmax, rat float64, nx, ng int) (xf []float64) {
	var (
		N   = nx + 2*ng + 1
		is  = ng
		ie1 = ng + nx // index of the last active face
		dx0 float64
	)
	xf = make([]float64, N)
	if rat == 1 {
		dx0 = (xmax - xmin) / float64(nx)
	} else {
		dx0 = (xmax - xmin) * (rat - 1.) / (math.Pow(rat, float64(nx)) - 1.)
	}
	for i := 0; i <= nx; i++ {
		if rat == 1 {
			xf[is+i] = xmin + float64(i)*dx0
		} else {
			xf[is+i] = xmin + dx0*(math.Pow(rat, float64(i))-1.)/(rat-1.)
		}
	}
	xf[is], xf[ie1] = xmin, xmax
	var (
		dxLow  = dx0
		dxHigh = xf[ie1] - xf[ie1-1]
	)
	for n := 1; n <= ng; n++ {
		dxLow /= rat
		dxHigh *= rat
		xf[is-n] = xf[is-n+1] - dxLow
		xf[ie1+n] = xf[ie1+n-1] + dxHigh
	}
	return
}

func centers(xf []float64) (xv []float64) {
	xv = make([]float64, len(xf)-1)
	for i := range xv {
		xv[i] = 0.5 * (xf[i] + xf[i+1])
	}
	return
}

func (b *Block) X1f(i int) float64 { return b.x1f[i] }
func (b *Block) X1v(i int) float64 { return b.x1v[i] }
func (b *Block) X2f(j int) float64 { return b.x2f[j] }
func (b *Block) X2v(j int) float64 { return b.x2v[j] }
func (b *Block) X3f(k int) float64 { return b.x3f[k] }
func (b *Block) X3v(k int) float64 { return b.x3v[k] }

// InnerX3Range is the index range handed to a lower axial boundary function:
// every radial and azimuthal cell including ghosts, the active axial range
// and the number of ghost layers to fill below Ks.
func (b *Block) InnerX3Range() (il, iu, jl, ju, kl, ku, ngh int) {
	il, iu = 0, b.NCells1-1
	jl, ju = 0, b.NCells2-1
	kl, ku = b.Ks, b.Ke
	ngh = b.NGhost
	return
}

func (b *Block) NewCellArray() utils.Array3D {
	return utils.NewArray3D(b.NCells3, b.NCells2, b.NCells1)
}

// Primitives holds the primitive variables indexed by types.IDN ... types.IPR
type Primitives [types.NHYDRO]utils.Array3D

func (b *Block) NewPrimitives() (w Primitives) {
	for n := range w {
		w[n] = b.NewCellArray()
	}
	return
}

// CellField holds the cell centered magnetic field indexed by types.IB1 ... types.IB3
type CellField [types.NFIELD]utils.Array3D

func (b *Block) NewCellField() (bc CellField) {
	for n := range bc {
		bc[n] = b.NewCellArray()
	}
	return
}

// FaceField holds face centered magnetic field, each component has one extra
// entry along its own direction.
type FaceField struct {
	X1f, X2f, X3f utils.Array3D
}

func (b *Block) NewFaceField() (ff FaceField) {
	ff = FaceField{
		X1f: utils.NewArray3D(b.NCells3, b.NCells2, b.NCells1+1),
		X2f: utils.NewArray3D(b.NCells3, b.NCells2+1, b.NCells1),
		X3f: utils.NewArray3D(b.NCells3+1, b.NCells2, b.NCells1),
	}
	return
}

// CalculateCellCenteredField averages face values onto cell centers over the
// inclusive index range
func CalculateCellCenteredField(b FaceField, bc CellField, il, iu, jl, ju, kl, ku int) {
	for k := kl; k <= ku; k++ {
		for j := jl; j <= ju; j++ {
			for i := il; i <= iu; i++ {
				bc[types.IB1].Set(k, j, i, 0.5*(b.X1f.At(k, j, i)+b.X1f.At(k, j, i+1)))
				bc[types.IB2].Set(k, j, i, 0.5*(b.X2f.At(k, j, i)+b.X2f.At(k, j+1, i)))
				bc[types.IB3].Set(k, j, i, 0.5*(b.X3f.At(k, j, i)+b.X3f.At(k+1, j, i)))
			}
		}
	}
}
