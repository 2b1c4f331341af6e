package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Boundary face labels round trip
		for name, face := range BoundaryFaceNameMap {
			bf, ok := NewBoundaryFace(name)
			assert.True(t, ok)
			assert.Equal(t, face, bf)
			assert.Equal(t, name, bf.String())
		}
		bf, ok := NewBoundaryFace("Inner_X3")
		assert.True(t, ok)
		assert.Equal(t, InnerX3, bf)
		_, ok = NewBoundaryFace("sideways")
		assert.False(t, ok)
	}
	{ // Refinement flags follow the -1, 0, 1 convention
		assert.Equal(t, RefineFlag(-1), Derefine)
		assert.Equal(t, RefineFlag(0), NoAction)
		assert.Equal(t, RefineFlag(1), Refine)
		assert.Equal(t, "refine", Refine.String())
		assert.Equal(t, "no-action", NoAction.String())
		assert.Equal(t, "derefine", Derefine.String())
	}
	{
		assert.Equal(t, 5, NHYDRO)
		assert.Equal(t, 3, NFIELD)
		assert.Equal(t, "vz", PrimitiveNames[IVZ])
	}
}
