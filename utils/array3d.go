package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Array3D holds a block quantity indexed (k, j, i) with i varying fastest,
// the same layout used for mesh block arrays. Each k plane is contiguous and
// can be viewed as a gonum matrix with rows j and columns i.
type Array3D struct {
	Nk, Nj, Ni int
	DataP      []float64
}

func NewArray3D(nk, nj, ni int) (A Array3D) {
	if nk < 1 || nj < 1 || ni < 1 {
		panic(fmt.Sprintf("invalid array dimensions: nk, nj, ni = %d, %d, %d", nk, nj, ni))
	}
	A = Array3D{
		Nk:    nk,
		Nj:    nj,
		Ni:    ni,
		DataP: make([]float64, nk*nj*ni),
	}
	return
}

func (A Array3D) Dims() (nk, nj, ni int) { return A.Nk, A.Nj, A.Ni }

func (A Array3D) InBounds(k, j, i int) bool {
	return k >= 0 && k < A.Nk && j >= 0 && j < A.Nj && i >= 0 && i < A.Ni
}

func (A Array3D) index(k, j, i int) int {
	if !A.InBounds(k, j, i) {
		panic(fmt.Sprintf("index out of bounds: (k, j, i) = (%d, %d, %d), dims = (%d, %d, %d)",
			k, j, i, A.Nk, A.Nj, A.Ni))
	}
	return i + A.Ni*(j+A.Nj*k)
}

func (A Array3D) At(k, j, i int) float64 {
	return A.DataP[A.index(k, j, i)]
}

func (A Array3D) Set(k, j, i int, val float64) {
	A.DataP[A.index(k, j, i)] = val
}

func (A Array3D) Fill(val float64) Array3D { // Changes receiver
	for ii := range A.DataP {
		A.DataP[ii] = val
	}
	return A
}

func (A Array3D) Copy() (R Array3D) { // Does not change receiver
	R = NewArray3D(A.Nk, A.Nj, A.Ni)
	copy(R.DataP, A.DataP)
	return
}

// Slab returns plane k as a Nj x Ni matrix sharing storage with the array
func (A Array3D) Slab(k int) (S *mat.Dense) {
	var (
		start = A.index(k, 0, 0)
		size  = A.Nj * A.Ni
	)
	S = mat.NewDense(A.Nj, A.Ni, A.DataP[start:start+size])
	return
}
