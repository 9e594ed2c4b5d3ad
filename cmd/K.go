/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/stelltools/gocpm/InputParameters"
	"github.com/stelltools/gocpm/current"
	"github.com/stelltools/gocpm/geometry"
	"github.com/stelltools/gocpm/potential"
	"github.com/stelltools/gocpm/utils"
)

type ModelK struct {
	CaseFile string
	OutFile  string
	Parallel int
	Profile  bool
	Verbose  bool
}

// KCmd represents the K command
var KCmd = &cobra.Command{
	Use:   "K",
	Short: "Evaluate the surface current density on a winding surface",
	Long: `
Evaluates K = (- dr/dzeta (dPhi/dzeta + G) + dr/dtheta (dPhi/dtheta + I)) / |n|
on the quadrature grid of a Fourier winding surface, from a YAML case file
describing the surface, the current potential and the net linking currents.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("K called")
		mk := &ModelK{}
		if mk.CaseFile, err = cmd.Flags().GetString("caseFile"); err != nil {
			panic(err)
		}
		mk.OutFile, _ = cmd.Flags().GetString("outFile")
		mk.Parallel, _ = cmd.Flags().GetInt("parallel")
		mk.Profile, _ = cmd.Flags().GetBool("profile")
		mk.Verbose, _ = cmd.Flags().GetBool("verbose")
		ip := processInput(mk)
		if err = RunK(mk, ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processInput(mk *ModelK) (ip *InputParameters.CaseParameters) {
	var (
		err error
	)
	if len(mk.CaseFile) == 0 {
		err = fmt.Errorf("must supply a case file (-F, --caseFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Circular Torus"
NFP: 1
NPhi: 64
NTheta: 32
MPol: 4
NTor: 4
SurfaceModes:
  - {M: 0, N: 0, RC: 3.0}
  - {M: 1, N: 0, RC: 1.0, ZS: 1.0}
PotentialModes:
  - {M: 1, N: 0, PhiS: 1.0e4}
NetPoloidalCurrent: 1.1e7
NetToroidalCurrent: 0.
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(mk.CaseFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.CaseParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(KCmd)
	KCmd.Flags().StringP("caseFile", "F", "", "YAML case file describing surface, potential and net currents")
	KCmd.Flags().StringP("outFile", "o", "", "write the current density grid to this file in plain text")
	KCmd.Flags().IntP("parallel", "p", 0, "number of worker goroutines, 0 selects NumCPU")
	KCmd.Flags().Bool("profile", false, "write a CPU profile for the evaluation")
	KCmd.Flags().BoolP("verbose", "v", false, "print memory usage statistics")
}

func RunK(mk *ModelK, ip *InputParameters.CaseParameters) (err error) {
	if mk.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ip.Print()
	smodes := make([]geometry.SurfaceMode, len(ip.SurfaceModes))
	for i, md := range ip.SurfaceModes {
		smodes[i] = geometry.SurfaceMode{M: md.M, N: md.N, RC: md.RC, ZS: md.ZS}
	}
	var ws *geometry.WindingSurface
	if ws, err = geometry.NewWindingSurface(ip.NFP, ip.NPhi, ip.NTheta, smodes); err != nil {
		return
	}
	var cp *potential.CurrentPotentialFourier
	if cp, err = potential.NewCurrentPotential(ws, ip.MPol, ip.NTor,
		ip.NetPoloidalCurrent, ip.NetToroidalCurrent); err != nil {
		return
	}
	for _, md := range ip.PotentialModes {
		if err = cp.SetPhiS(md.M, md.N, md.PhiS); err != nil {
			return
		}
	}
	ev := current.Evaluator{Strict: ip.Strict, ParallelDegree: mk.Parallel}
	var K geometry.VectorField
	if K, err = ev.K(cp); err != nil {
		return
	}
	KMag := K.Magnitude()
	fmt.Printf("Kmin, Kmax = %8.5g, %8.5g (A/m)\n", KMag.Min(), KMag.Max())
	fmt.Printf("Surface area = %8.5g (m^2)\n", ws.Area())
	if !ip.Strict && !current.IsFiniteField(K) {
		fmt.Println("warning: non-finite current density, check surface for degenerate normals")
	}
	if mk.Verbose {
		fmt.Println(utils.GetMemUsage())
	}
	if len(mk.OutFile) != 0 {
		if err = writeField(mk.OutFile, ws, K); err != nil {
			return
		}
		fmt.Printf("wrote %s\n", mk.OutFile)
	}
	return
}

// writeField dumps the grid as "phi theta Kx Ky Kz" lines, one per
// quadrature point.
func writeField(fileName string, ws *geometry.WindingSurface, K geometry.VectorField) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "# phi theta Kx Ky Kz\n")
	nPhi, nTheta := K.Dims()
	for i := 0; i < nPhi; i++ {
		for j := 0; j < nTheta; j++ {
			x, y, z := K.At(i, j)
			fmt.Fprintf(f, "%v %v %v %v %v\n",
				ws.QuadPointsPhi.AtVec(i), ws.QuadPointsTheta.AtVec(j), x, y, z)
		}
	}
	return
}
