package potential

import (
	"math"
	"testing"

	"github.com/stelltools/gocpm/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSurface(t *testing.T, nfp, nPhi, nTheta int) *geometry.WindingSurface {
	ws, err := geometry.NewWindingSurface(nfp, nPhi, nTheta, []geometry.SurfaceMode{
		{M: 0, N: 0, RC: 3},
		{M: 1, N: 0, RC: 1, ZS: 1},
	})
	require.NoError(t, err)
	return ws
}

func TestCurrentPotentialSingleMode(t *testing.T) {
	var (
		nfp, nPhi, nTheta = 2, 6, 5
		m, n              = 2, 1
		coef              = 1.5e4
		twoPi             = 2 * math.Pi
		tol               = 1.e-8
	)
	ws := testSurface(t, nfp, nPhi, nTheta)
	cp, err := NewCurrentPotential(ws, 3, 2, 1.1e7, -2.e5)
	require.NoError(t, err)
	require.NoError(t, cp.SetPhiS(m, n, coef))

	Phi, P1, P2 := cp.Phi(), cp.PhiDash1(), cp.PhiDash2()
	for i := 0; i < nPhi; i++ {
		phi := float64(i) / float64(nPhi)
		for j := 0; j < nTheta; j++ {
			theta := float64(j) / float64(nTheta)
			angle := twoPi * (float64(m)*theta - float64(n*nfp)*phi)
			assert.InDelta(t, coef*math.Sin(angle), Phi.At(i, j), tol)
			assert.InDelta(t, coef*twoPi*float64(m)*math.Cos(angle), P1.At(i, j), tol)
			assert.InDelta(t, -coef*twoPi*float64(n*nfp)*math.Cos(angle), P2.At(i, j), tol)
		}
	}
	assert.Equal(t, 1.1e7, cp.NetPoloidalCurrentAmperes)
	assert.Equal(t, -2.e5, cp.NetToroidalCurrentAmperes)
}

func TestCurrentPotentialDerivativesFiniteDifference(t *testing.T) {
	// Central differences over the periodic grid must agree with the
	// analytic derivative grids.
	var (
		nPhi, nTheta = 64, 64
		twoPi        = 2 * math.Pi
	)
	ws := testSurface(t, 1, nPhi, nTheta)
	cp, err := NewCurrentPotential(ws, 2, 2, 0, 0)
	require.NoError(t, err)
	require.NoError(t, cp.SetPhiS(1, 0, 2.0))
	require.NoError(t, cp.SetPhiS(2, 1, -0.7))

	Phi, P1, P2 := cp.Phi(), cp.PhiDash1(), cp.PhiDash2()
	hTheta := 1. / float64(nTheta)
	hPhi := 1. / float64(nPhi)
	// Second order accuracy: h^2 * max|Phi'''| with Phi''' ~ (2 pi 3)^3
	tol := hTheta * hTheta * math.Pow(twoPi*3, 3)
	for i := 0; i < nPhi; i++ {
		ip, im := (i+1)%nPhi, (i-1+nPhi)%nPhi
		for j := 0; j < nTheta; j++ {
			jp, jm := (j+1)%nTheta, (j-1+nTheta)%nTheta
			fdTheta := (Phi.At(i, jp) - Phi.At(i, jm)) / (2 * hTheta)
			fdPhi := (Phi.At(ip, j) - Phi.At(im, j)) / (2 * hPhi)
			assert.InDelta(t, P1.At(i, j), fdTheta, tol)
			assert.InDelta(t, P2.At(i, j), fdPhi, tol)
		}
	}
}

func TestCurrentPotentialValidation(t *testing.T) {
	ws := testSurface(t, 1, 4, 4)
	_, err := NewCurrentPotential(nil, 2, 2, 0, 0)
	assert.Error(t, err)
	_, err = NewCurrentPotential(ws, 0, 2, 0, 0)
	assert.Error(t, err)
	_, err = NewCurrentPotential(ws, 2, -1, 0, 0)
	assert.Error(t, err)
	_, err = NewCurrentPotential(ws, 2, 2, math.NaN(), 0)
	assert.Error(t, err)

	cp, err := NewCurrentPotential(ws, 2, 2, 0, 0)
	require.NoError(t, err)
	assert.Error(t, cp.SetPhiS(3, 0, 1))  // m out of range
	assert.Error(t, cp.SetPhiS(1, -3, 1)) // n out of range
	assert.Error(t, cp.SetPhiS(0, 0, 1))  // identically zero mode
	assert.NoError(t, cp.SetPhiS(1, -2, 1))

	// Zero potential evaluates to zero grids
	cpZero, err := NewCurrentPotential(ws, 2, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0., cpZero.PhiDash1().Max())
	assert.Equal(t, 0., cpZero.PhiDash1().Min())
	assert.Equal(t, 0., cpZero.PhiDash2().Max())
	assert.Equal(t, 0., cpZero.PhiDash2().Min())
}
