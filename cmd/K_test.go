package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/stelltools/gocpm/InputParameters"
)

func TestCaseFileParse(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
NFP: 3
NPhi: 16
NTheta: 8
MPol: 2
NTor: 1
SurfaceModes:
  - {M: 0, N: 0, RC: 3.0}
  - {M: 1, N: 0, RC: 1.0, ZS: 1.0}
PotentialModes:
  - {M: 1, N: 0, PhiS: 1.0e4}
NetPoloidalCurrent: 1.1e7
NetToroidalCurrent: -2.0e5
Strict: true
`)
	var input InputParameters.CaseParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.NFP, 3)
	assert.Equal(t, input.NetPoloidalCurrent, 1.1e7)
	assert.Equal(t, input.NetToroidalCurrent, -2.0e5)
	assert.Equal(t, len(input.SurfaceModes), 2)
	assert.Equal(t, input.SurfaceModes[1].ZS, 1.0)
	assert.Equal(t, input.PotentialModes[0].PhiS, 1.0e4)
	assert.Equal(t, input.Strict, true)
	input.Print()
}

func TestRunK(t *testing.T) {
	ip := &InputParameters.CaseParameters{
		Title:  "Circular Torus",
		NFP:    1,
		NPhi:   8,
		NTheta: 8,
		MPol:   2,
		NTor:   1,
		SurfaceModes: []InputParameters.SurfaceMode{
			{M: 0, N: 0, RC: 3},
			{M: 1, N: 0, RC: 1, ZS: 1},
		},
		PotentialModes: []InputParameters.PotentialMode{
			{M: 1, N: 0, PhiS: 1.e4},
		},
		NetPoloidalCurrent: 1.1e7,
		Strict:             true,
	}
	mk := &ModelK{}
	if err := RunK(mk, ip); err != nil {
		t.Fatal(err)
	}
}
