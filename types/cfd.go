package types

import "strings"

type BoundaryFace uint8

const (
	InnerX1 BoundaryFace = iota
	OuterX1
	InnerX2
	OuterX2
	InnerX3
	OuterX3
)

var BoundaryFaceNameMap = map[string]BoundaryFace{
	"inner_x1": InnerX1,
	"outer_x1": OuterX1,
	"inner_x2": InnerX2,
	"outer_x2": OuterX2,
	"inner_x3": InnerX3,
	"outer_x3": OuterX3,
}

func NewBoundaryFace(label string) (bf BoundaryFace, ok bool) {
	bf, ok = BoundaryFaceNameMap[strings.ToLower(label)]
	return
}

func (bf BoundaryFace) String() string {
	for name, face := range BoundaryFaceNameMap {
		if face == bf {
			return name
		}
	}
	return "unknown"
}

// RefineFlag is the block level answer of a refinement condition
type RefineFlag int8

const (
	Derefine RefineFlag = iota - 1
	NoAction
	Refine
)

func (rf RefineFlag) String() string {
	switch rf {
	case Derefine:
		return "derefine"
	case Refine:
		return "refine"
	default:
		return "no-action"
	}
}

// Primitive variable indices
const (
	IDN = iota // density
	IVX        // radial velocity
	IVY        // azimuthal velocity
	IVZ        // axial velocity
	IPR        // pressure
	NHYDRO
)

// Cell centered field indices
const (
	IB1 = iota
	IB2
	IB3
	NFIELD
)

var PrimitiveNames = [NHYDRO]string{"rho", "vx", "vy", "vz", "p"}
