package geometry

import (
	"fmt"
	"math"

	"github.com/stelltools/gocpm/utils"
)

// SurfaceMode is one stellarator-symmetric Fourier mode of a toroidal
// surface: R(theta,phi) += RC*cos(2pi(m theta - n nfp phi)) and
// Z(theta,phi) += ZS*sin(2pi(m theta - n nfp phi)).
type SurfaceMode struct {
	M, N   int
	RC, ZS float64
}

// WindingSurface is a toroidal surface used to carry a sheet current,
// parameterized by two angle-like coordinates theta (poloidal) and phi
// (toroidal), both on [0,1). After Build(), the position grid Gamma, the
// tangent grids GammaDash1 (d/dphi) and GammaDash2 (d/dtheta), and the
// unnormalized Normal = GammaDash1 x GammaDash2 are available and read-only.
type WindingSurface struct {
	NFP                int // Number of field periods
	NumQuadPointsPhi   int
	NumQuadPointsTheta int
	QuadPointsPhi      utils.Vector
	QuadPointsTheta    utils.Vector
	Modes              []SurfaceMode

	Gamma      VectorField
	GammaDash1 VectorField // Tangent along phi (toroidal)
	GammaDash2 VectorField // Tangent along theta (poloidal)
	Normal     VectorField
}

func NewWindingSurface(nfp, nPhi, nTheta int, modes []SurfaceMode) (ws *WindingSurface, err error) {
	if nfp < 1 {
		return nil, fmt.Errorf("number of field periods must be at least 1, got %d", nfp)
	}
	if nPhi < 1 || nTheta < 1 {
		return nil, fmt.Errorf("quadrature resolutions must be positive, got %d,%d", nPhi, nTheta)
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("surface needs at least one Fourier mode")
	}
	ws = &WindingSurface{
		NFP:                nfp,
		NumQuadPointsPhi:   nPhi,
		NumQuadPointsTheta: nTheta,
		QuadPointsPhi:      utils.NewVector(nPhi).Uniform(0, 1),
		QuadPointsTheta:    utils.NewVector(nTheta).Uniform(0, 1),
		Modes:              modes,
	}
	ws.Build()
	return
}

// Build evaluates position, tangent and normal grids from the Fourier
// modes. Grids are frozen read-only afterward; the surface is immutable
// from the point of view of downstream evaluators.
func (ws *WindingSurface) Build() {
	var (
		nPhi, nTheta = ws.NumQuadPointsPhi, ws.NumQuadPointsTheta
		twoPi        = 2 * math.Pi
	)
	ws.Gamma = NewVectorField(nPhi, nTheta)
	ws.GammaDash1 = NewVectorField(nPhi, nTheta)
	ws.GammaDash2 = NewVectorField(nPhi, nTheta)
	ws.Normal = NewVectorField(nPhi, nTheta)
	for i := 0; i < nPhi; i++ {
		var (
			phi          = ws.QuadPointsPhi.AtVec(i)
			sinP, cosP   = math.Sincos(twoPi * phi)
		)
		for j := 0; j < nTheta; j++ {
			var (
				theta                  = ws.QuadPointsTheta.AtVec(j)
				R, Z                   float64
				dRdTheta, dRdPhi       float64
				dZdTheta, dZdPhi       float64
			)
			for _, md := range ws.Modes {
				angle := twoPi * (float64(md.M)*theta - float64(md.N*ws.NFP)*phi)
				sinA, cosA := math.Sincos(angle)
				mFac := twoPi * float64(md.M)
				nFac := twoPi * float64(md.N*ws.NFP)
				R += md.RC * cosA
				Z += md.ZS * sinA
				dRdTheta -= md.RC * mFac * sinA
				dRdPhi += md.RC * nFac * sinA
				dZdTheta += md.ZS * mFac * cosA
				dZdPhi -= md.ZS * nFac * cosA
			}
			ws.Gamma.Set(i, j, R*cosP, R*sinP, Z)
			// d(R cos)/dphi picks up the rotation of the cylindrical frame
			t1x := dRdPhi*cosP - twoPi*R*sinP
			t1y := dRdPhi*sinP + twoPi*R*cosP
			t1z := dZdPhi
			t2x := dRdTheta * cosP
			t2y := dRdTheta * sinP
			t2z := dZdTheta
			ws.GammaDash1.Set(i, j, t1x, t1y, t1z)
			ws.GammaDash2.Set(i, j, t2x, t2y, t2z)
			ws.Normal.Set(i, j,
				t1y*t2z-t1z*t2y,
				t1z*t2x-t1x*t2z,
				t1x*t2y-t1y*t2x)
		}
	}
	for name, f := range map[string]*VectorField{
		"Gamma": &ws.Gamma, "GammaDash1": &ws.GammaDash1,
		"GammaDash2": &ws.GammaDash2, "Normal": &ws.Normal,
	} {
		f.X.SetReadOnly(name + ".X")
		f.Y.SetReadOnly(name + ".Y")
		f.Z.SetReadOnly(name + ".Z")
	}
}

// AreaElement returns |Normal| on the grid, the Jacobian converting
// parameter-space densities to physical per-unit-area quantities.
func (ws *WindingSurface) AreaElement() utils.Matrix {
	return ws.Normal.Magnitude()
}

// Area integrates |Normal| over the unit parameter square.
func (ws *WindingSurface) Area() (area float64) {
	var (
		nPhi, nTheta = ws.NumQuadPointsPhi, ws.NumQuadPointsTheta
		dN           = ws.AreaElement().Data()
	)
	for _, val := range dN {
		area += val
	}
	area /= float64(nPhi * nTheta)
	return
}
