package current

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/stelltools/gocpm/geometry"
	"github.com/stelltools/gocpm/potential"
	"github.com/stelltools/gocpm/utils"
)

// Evaluator computes the free-surface current density
//
//	K = (- dr/dzeta (dPhi/dzeta + G) + dr/dtheta (dPhi/dtheta + I)) / |n|
//
// pointwise on the quadrature grid, where G and I are the net toroidal and
// poloidal currents linking the surface and |n| is the local normal
// magnitude converting the cross-product identity to a physical per-unit-area
// density. The sign convention and term pairing follow K = n x grad(Phi)
// via N x grad(theta) = -dr/dzeta and N x grad(zeta) = dr/dtheta; changing
// either silently rotates or mirrors the current relative to the physical
// convention.
//
// The evaluator holds no grid state; each call is a pure function of its
// inputs and fully overwrites the output field.
type Evaluator struct {
	// Strict rejects grid points whose normal magnitude is zero or
	// subnormal with a degenerate-geometry error, checked before any
	// output is written. When false (the default), such points divide
	// through and propagate non-finite values, and surface validity is
	// the caller's responsibility.
	Strict bool
	// ParallelDegree is the number of worker goroutines the phi rows are
	// partitioned across. Values below 1 select runtime.NumCPU(). Every
	// output cell depends only on the matching input cells, so workers
	// share nothing.
	ParallelDegree int
}

// Smallest positive normalized float64; anything below is zero or subnormal.
const minNormal = 2.2250738585072014e-308

// Evaluate allocates and fills the surface current density field.
func (ev Evaluator) Evaluate(dPhiDTheta, dPhiDZeta utils.Matrix,
	tangentZeta, tangentTheta, normal geometry.VectorField,
	netToroidalCurrent, netPoloidalCurrent float64) (K geometry.VectorField, err error) {
	nPhi, nTheta := tangentZeta.Dims()
	K = geometry.NewVectorField(nPhi, nTheta)
	err = ev.EvaluateInto(K, dPhiDTheta, dPhiDZeta, tangentZeta, tangentTheta, normal,
		netToroidalCurrent, netPoloidalCurrent)
	return
}

// EvaluateInto fills a caller-owned output field, validating every shape
// before any cell is written. On error the output is untouched.
func (ev Evaluator) EvaluateInto(K geometry.VectorField, dPhiDTheta, dPhiDZeta utils.Matrix,
	tangentZeta, tangentTheta, normal geometry.VectorField,
	netToroidalCurrent, netPoloidalCurrent float64) (err error) {
	nPhi, nTheta := tangentZeta.Dims()
	for name, f := range map[string]geometry.VectorField{
		"tangentZeta": tangentZeta, "tangentTheta": tangentTheta,
		"normal": normal, "output": K,
	} {
		if err = f.SameDims(nPhi, nTheta, name); err != nil {
			return
		}
	}
	for name, m := range map[string]utils.Matrix{
		"dPhiDTheta": dPhiDTheta, "dPhiDZeta": dPhiDZeta,
	} {
		nr, nc := m.Dims()
		if nr != nPhi || nc != nTheta {
			return fmt.Errorf("field %s: dims %d,%d do not match grid %d,%d",
				name, nr, nc, nPhi, nTheta)
		}
	}
	normMag := normal.Magnitude()
	if ev.Strict {
		dN := normMag.Data()
		for ind, mag := range dN {
			if mag < minNormal {
				return fmt.Errorf("degenerate normal at grid point (%d,%d): |n| = %v",
					ind/nTheta, ind%nTheta, mag)
			}
		}
	}

	var (
		dP1, dP2      = dPhiDTheta.Data(), dPhiDZeta.Data()
		t1x, t1y, t1z = tangentZeta.X.Data(), tangentZeta.Y.Data(), tangentZeta.Z.Data()
		t2x, t2y, t2z = tangentTheta.X.Data(), tangentTheta.Y.Data(), tangentTheta.Z.Data()
		kx, ky, kz    = K.X.Data(), K.Y.Data(), K.Z.Data()
		dN            = normMag.Data()
	)
	evalRows := func(iMin, iMax int) {
		for i := iMin; i < iMax; i++ {
			for j := 0; j < nTheta; j++ {
				ind := i*nTheta + j
				normn := dN[ind]
				A := dP2[ind] + netToroidalCurrent
				B := dP1[ind] + netPoloidalCurrent
				kx[ind] = (-t1x[ind]*A + t2x[ind]*B) / normn
				ky[ind] = (-t1y[ind]*A + t2y[ind]*B) / normn
				kz[ind] = (-t1z[ind]*A + t2z[ind]*B) / normn
			}
		}
	}

	NP := ev.ParallelDegree
	if NP < 1 {
		NP = runtime.NumCPU()
	}
	if NP > nPhi {
		NP = nPhi
	}
	if NP == 1 {
		evalRows(0, nPhi)
		return
	}
	pm := utils.NewPartitionMap(NP, nPhi)
	wg := sync.WaitGroup{}
	for n := 0; n < NP; n++ {
		iMin, iMax := pm.GetBucketRange(n)
		wg.Add(1)
		go func(iMin, iMax int) {
			defer wg.Done()
			evalRows(iMin, iMax)
		}(iMin, iMax)
	}
	wg.Wait()
	return
}

// K evaluates the surface current carried by a current potential on its
// winding surface, the usual entry point for coil design pipelines.
func (ev Evaluator) K(cp *potential.CurrentPotentialFourier) (K geometry.VectorField, err error) {
	ws := cp.Surface
	return ev.Evaluate(cp.PhiDash1(), cp.PhiDash2(),
		ws.GammaDash1, ws.GammaDash2, ws.Normal,
		cp.NetToroidalCurrentAmperes, cp.NetPoloidalCurrentAmperes)
}

// IsFiniteField reports whether every component of every cell is finite,
// the quick post-check for callers that skipped Strict mode.
func IsFiniteField(F geometry.VectorField) bool {
	for _, data := range [][]float64{F.X.Data(), F.Y.Data(), F.Z.Data()} {
		for _, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
