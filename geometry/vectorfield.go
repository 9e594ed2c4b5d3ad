package geometry

import (
	"fmt"
	"math"

	"github.com/stelltools/gocpm/utils"
)

// VectorField holds one 3-vector per point of an (NPhi x NTheta) surface
// quadrature grid, stored as one matrix per Cartesian component.
type VectorField struct {
	X, Y, Z utils.Matrix
}

func NewVectorField(nPhi, nTheta int) (F VectorField) {
	F = VectorField{
		X: utils.NewMatrix(nPhi, nTheta),
		Y: utils.NewMatrix(nPhi, nTheta),
		Z: utils.NewMatrix(nPhi, nTheta),
	}
	return
}

func (f VectorField) Dims() (nPhi, nTheta int) { return f.X.Dims() }

func (f VectorField) At(i, j int) (x, y, z float64) {
	return f.X.At(i, j), f.Y.At(i, j), f.Z.At(i, j)
}

func (f VectorField) Set(i, j int, x, y, z float64) {
	f.X.Set(i, j, x)
	f.Y.Set(i, j, y)
	f.Z.Set(i, j, z)
}

func (f VectorField) Copy() (R VectorField) {
	R = VectorField{
		X: f.X.Copy(),
		Y: f.Y.Copy(),
		Z: f.Z.Copy(),
	}
	return
}

func (f VectorField) Scale(a float64) VectorField { // Changes receiver
	f.X.Scale(a)
	f.Y.Scale(a)
	f.Z.Scale(a)
	return f
}

// Magnitude returns the pointwise Euclidean norm as a new matrix.
func (f VectorField) Magnitude() (R utils.Matrix) {
	var (
		nPhi, nTheta = f.Dims()
		dX           = f.X.Data()
		dY           = f.Y.Data()
		dZ           = f.Z.Data()
	)
	R = utils.NewMatrix(nPhi, nTheta)
	dR := R.Data()
	for i := range dR {
		dR[i] = math.Sqrt(dX[i]*dX[i] + dY[i]*dY[i] + dZ[i]*dZ[i])
	}
	return
}

// SameDims reports an error naming the offending field when any of the
// component grids disagree with (nPhi, nTheta).
func (f VectorField) SameDims(nPhi, nTheta int, name string) (err error) {
	for _, m := range []utils.Matrix{f.X, f.Y, f.Z} {
		nr, nc := m.Dims()
		if nr != nPhi || nc != nTheta {
			return fmt.Errorf("field %s: component dims %d,%d do not match grid %d,%d",
				name, nr, nc, nPhi, nTheta)
		}
	}
	return
}
