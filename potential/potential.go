package potential

import (
	"fmt"
	"math"

	"github.com/stelltools/gocpm/geometry"
	"github.com/stelltools/gocpm/utils"
)

// CurrentPotentialFourier is a single-valued current potential on a winding
// surface, expanded in stellarator-symmetric Fourier modes:
//
//	Phi(theta,phi) = sum phis_{m,n} sin(2pi(m theta - n nfp phi))
//
// The secular (multi-valued) part of the physical potential is carried
// separately by the two net current constants, which downstream evaluation
// adds to the corresponding angular derivatives.
//
// Mode coefficients are stored sparsely so that grid evaluation visits only
// the nonzero modes; realistic potentials populate a small corner of the
// (MPol x 2*NTor+1) mode table.
type CurrentPotentialFourier struct {
	Surface    *geometry.WindingSurface
	MPol, NTor int

	NetPoloidalCurrentAmperes float64
	NetToroidalCurrentAmperes float64

	phis  utils.DOK // Row m in [0,MPol], column n+NTor for n in [-NTor,NTor]
	dirty bool

	phi, phiDash1, phiDash2 utils.Matrix
}

func NewCurrentPotential(ws *geometry.WindingSurface, mpol, ntor int,
	netPoloidal, netToroidal float64) (cp *CurrentPotentialFourier, err error) {
	if ws == nil {
		return nil, fmt.Errorf("current potential needs a winding surface")
	}
	if mpol < 1 || ntor < 0 {
		return nil, fmt.Errorf("invalid mode resolutions mpol,ntor = %d,%d", mpol, ntor)
	}
	if !isFinite(netPoloidal) || !isFinite(netToroidal) {
		return nil, fmt.Errorf("net currents must be finite, got G = %v, I = %v", netPoloidal, netToroidal)
	}
	cp = &CurrentPotentialFourier{
		Surface:                   ws,
		MPol:                      mpol,
		NTor:                      ntor,
		NetPoloidalCurrentAmperes: netPoloidal,
		NetToroidalCurrentAmperes: netToroidal,
		phis:                      utils.NewDOK(mpol+1, 2*ntor+1),
		dirty:                     true,
	}
	return
}

// SetPhiS sets the coefficient of sin(2pi(m theta - n nfp phi)). The
// (m,n) = (0,0) mode is identically zero and is rejected.
func (cp *CurrentPotentialFourier) SetPhiS(m, n int, val float64) (err error) {
	if m < 0 || m > cp.MPol || n < -cp.NTor || n > cp.NTor {
		return fmt.Errorf("mode (m,n) = (%d,%d) outside table bounds mpol,ntor = %d,%d",
			m, n, cp.MPol, cp.NTor)
	}
	if m == 0 && n == 0 {
		return fmt.Errorf("mode (0,0) has no sine content")
	}
	cp.phis.Set(m, n+cp.NTor, val)
	cp.dirty = true
	return
}

// Phi returns the single-valued potential on the quadrature grid.
func (cp *CurrentPotentialFourier) Phi() utils.Matrix {
	cp.build()
	return cp.phi
}

// PhiDash1 returns dPhi/dtheta on the quadrature grid.
func (cp *CurrentPotentialFourier) PhiDash1() utils.Matrix {
	cp.build()
	return cp.phiDash1
}

// PhiDash2 returns dPhi/dphi on the quadrature grid.
func (cp *CurrentPotentialFourier) PhiDash2() utils.Matrix {
	cp.build()
	return cp.phiDash2
}

func (cp *CurrentPotentialFourier) build() {
	if !cp.dirty {
		return
	}
	var (
		ws           = cp.Surface
		nPhi, nTheta = ws.NumQuadPointsPhi, ws.NumQuadPointsTheta
		twoPi        = 2 * math.Pi
		csr          = cp.phis.ToCSR()
	)
	cp.phi = utils.NewMatrix(nPhi, nTheta)
	cp.phiDash1 = utils.NewMatrix(nPhi, nTheta)
	cp.phiDash2 = utils.NewMatrix(nPhi, nTheta)
	var (
		dP  = cp.phi.Data()
		dP1 = cp.phiDash1.Data()
		dP2 = cp.phiDash2.Data()
	)
	for i := 0; i < nPhi; i++ {
		phi := ws.QuadPointsPhi.AtVec(i)
		for j := 0; j < nTheta; j++ {
			theta := ws.QuadPointsTheta.AtVec(j)
			ind := i*nTheta + j
			csr.DoNonZero(func(m, nCol int, val float64) {
				n := nCol - cp.NTor
				angle := twoPi * (float64(m)*theta - float64(n*ws.NFP)*phi)
				sinA, cosA := math.Sincos(angle)
				dP[ind] += val * sinA
				dP1[ind] += val * twoPi * float64(m) * cosA
				dP2[ind] -= val * twoPi * float64(n*ws.NFP) * cosA
			})
		}
	}
	cp.phi.SetReadOnly("Phi")
	cp.phiDash1.SetReadOnly("PhiDash1")
	cp.phiDash2.SetReadOnly("PhiDash2")
	cp.dirty = false
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
