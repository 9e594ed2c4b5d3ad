package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circularTorus(t *testing.T, R0, a float64, nPhi, nTheta int) *WindingSurface {
	ws, err := NewWindingSurface(1, nPhi, nTheta, []SurfaceMode{
		{M: 0, N: 0, RC: R0},
		{M: 1, N: 0, RC: a, ZS: a},
	})
	require.NoError(t, err)
	return ws
}

func TestWindingSurfaceCircularTorus(t *testing.T) {
	var (
		R0, a        = 3.0, 1.0
		nPhi, nTheta = 8, 8
		twoPi        = 2 * math.Pi
		tol          = 1.e-12
	)
	ws := circularTorus(t, R0, a, nPhi, nTheta)
	for i := 0; i < nPhi; i++ {
		phi := twoPi * float64(i) / float64(nPhi)
		sinP, cosP := math.Sincos(phi)
		for j := 0; j < nTheta; j++ {
			theta := twoPi * float64(j) / float64(nTheta)
			sinT, cosT := math.Sincos(theta)
			R := R0 + a*cosT
			// Positions
			x, y, z := ws.Gamma.At(i, j)
			assert.InDelta(t, R*cosP, x, tol)
			assert.InDelta(t, R*sinP, y, tol)
			assert.InDelta(t, a*sinT, z, tol)
			// Toroidal tangent circles the axis at radius R
			t1x, t1y, t1z := ws.GammaDash1.At(i, j)
			assert.InDelta(t, -twoPi*R*sinP, t1x, tol*R0*10)
			assert.InDelta(t, twoPi*R*cosP, t1y, tol*R0*10)
			assert.InDelta(t, 0, t1z, tol)
			// Poloidal tangent circles the magnetic axis at radius a
			t2x, t2y, t2z := ws.GammaDash2.At(i, j)
			assert.InDelta(t, -twoPi*a*sinT*cosP, t2x, tol*10)
			assert.InDelta(t, -twoPi*a*sinT*sinP, t2y, tol*10)
			assert.InDelta(t, twoPi*a*cosT, t2z, tol*10)
			// Normal = GammaDash1 x GammaDash2 points outward with
			// magnitude 4 pi^2 R a
			nx, ny, nz := ws.Normal.At(i, j)
			mag := twoPi * twoPi * R * a
			assert.InDelta(t, mag*cosT*cosP, nx, tol*mag*10)
			assert.InDelta(t, mag*cosT*sinP, ny, tol*mag*10)
			assert.InDelta(t, mag*sinT, nz, tol*mag*10)
		}
	}
	// Surface area of a circular torus is 4 pi^2 R0 a
	assert.InDelta(t, 4*math.Pi*math.Pi*R0*a, ws.Area(), 1.e-9)
}

func TestWindingSurfaceValidation(t *testing.T) {
	modes := []SurfaceMode{{M: 0, N: 0, RC: 1}}
	_, err := NewWindingSurface(0, 4, 4, modes)
	assert.Error(t, err)
	_, err = NewWindingSurface(1, 0, 4, modes)
	assert.Error(t, err)
	_, err = NewWindingSurface(1, 4, 4, nil)
	assert.Error(t, err)
	// Built grids are frozen
	ws := circularTorus(t, 2, 0.5, 4, 4)
	assert.Panics(t, func() { ws.Normal.X.Set(0, 0, 1) })
}

func TestVectorField(t *testing.T) {
	F := NewVectorField(2, 3)
	F.Set(1, 2, 3, 4, 0)
	x, y, z := F.At(1, 2)
	assert.Equal(t, [3]float64{3, 4, 0}, [3]float64{x, y, z})
	M := F.Magnitude()
	assert.Equal(t, 5., M.At(1, 2))
	assert.Equal(t, 0., M.At(0, 0))
	// Copy does not alias
	G := F.Copy().Scale(2)
	x, _, _ = G.At(1, 2)
	assert.Equal(t, 6., x)
	x, _, _ = F.At(1, 2)
	assert.Equal(t, 3., x)
	// Shape guard
	assert.NoError(t, F.SameDims(2, 3, "F"))
	assert.Error(t, F.SameDims(3, 2, "F"))
}
