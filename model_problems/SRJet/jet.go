package SRJet

import (
	"fmt"
	"log/slog"

	"github.com/notargets/srjet/mesh"
	"github.com/notargets/srjet/types"
	"github.com/notargets/srjet/utils"
)

// Coordinates gives face and volume center positions of a block in
// cylindrical (r, phi, z) order, indexed like the block arrays
type Coordinates interface {
	X1f(i int) float64
	X1v(i int) float64
	X2f(j int) float64
	X2v(j int) float64
	X3f(k int) float64
	X3v(k int) float64
}

// BoundaryFunc fills ghost zones of one block face. Time and dt are passed
// through for boundaries that need them.
type BoundaryFunc func(co Coordinates, w mesh.Primitives, b mesh.FaceField,
	time, dt float64, il, iu, jl, ju, kl, ku, ngh int)

/*
Jet is the inflow boundary for a rotating magnetized relativistic jet entering
through the lower axial face. It only reads its parameters after construction,
so one Jet can serve any number of blocks concurrently.
*/
type Jet struct {
	PP        PhysicalParameters
	DI        DerivedInvariants
	RootTol   utils.RootTolerance
	ProcLimit int // Number of go routines to use per fill, 0 is one per CPU
	Diag      *Diagnostics
	Log       *slog.Logger
	// Flux function reference values
	fluxInner, fluxBandLow1, fluxBandLow2, fluxMax float64
}

func NewJet(pp PhysicalParameters, ProcLimit int, logger *slog.Logger) (jet *Jet) {
	if logger == nil {
		logger = slog.Default()
	}
	jet = &Jet{
		PP:        pp,
		DI:        DeriveInvariants(pp),
		RootTol:   utils.DefaultRootTolerance(),
		ProcLimit: ProcLimit,
		Diag:      &Diagnostics{},
		Log:       logger,
	}
	var (
		band = pp.RJet - pp.DrJet
	)
	jet.fluxInner = jet.fintg1(pp.X1Min)
	jet.fluxBandLow1 = jet.fintg1(band)
	jet.fluxBandLow2 = jet.fintg2(band)
	jet.fluxMax = jet.fintg2(pp.RJet+pp.DrJet) - jet.fluxBandLow2 + jet.fluxBandLow1 - jet.fluxInner
	return
}

// BoundaryFunctions maps the faces this problem provides boundaries for
func (jet *Jet) BoundaryFunctions() map[types.BoundaryFace]BoundaryFunc {
	return map[types.BoundaryFace]BoundaryFunc{
		types.InnerX3: jet.JetInnerX3,
	}
}

func (jet *Jet) Print() {
	fmt.Printf("Relativistic jet inflow through the %s boundary\n", types.InnerX3)
	jet.PP.Print(jet.DI)
}
