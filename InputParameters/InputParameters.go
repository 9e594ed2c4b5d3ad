package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title              string          `yaml:"Title"`
	NFP                int             `yaml:"NFP"` // Number of field periods
	NPhi               int             `yaml:"NPhi"`
	NTheta             int             `yaml:"NTheta"`
	MPol               int             `yaml:"MPol"`
	NTor               int             `yaml:"NTor"`
	SurfaceModes       []SurfaceMode   `yaml:"SurfaceModes"`
	PotentialModes     []PotentialMode `yaml:"PotentialModes"`
	NetPoloidalCurrent float64         `yaml:"NetPoloidalCurrent"` // Amperes
	NetToroidalCurrent float64         `yaml:"NetToroidalCurrent"` // Amperes
	Strict             bool            `yaml:"Strict"`
}

type SurfaceMode struct {
	M  int     `yaml:"M"`
	N  int     `yaml:"N"`
	RC float64 `yaml:"RC"`
	ZS float64 `yaml:"ZS"`
}

type PotentialMode struct {
	M    int     `yaml:"M"`
	N    int     `yaml:"N"`
	PhiS float64 `yaml:"PhiS"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%d]\t\t\t= Field Periods\n", cp.NFP)
	fmt.Printf("[%d x %d]\t\t= Quadrature Grid (NPhi x NTheta)\n", cp.NPhi, cp.NTheta)
	fmt.Printf("[%d, %d]\t\t\t= Potential Mode Resolutions (MPol, NTor)\n", cp.MPol, cp.NTor)
	fmt.Printf("%8.5g\t\t= Net Poloidal Current (A)\n", cp.NetPoloidalCurrent)
	fmt.Printf("%8.5g\t\t= Net Toroidal Current (A)\n", cp.NetToroidalCurrent)
	fmt.Printf("[%d]\t\t\t= Surface Modes\n", len(cp.SurfaceModes))
	fmt.Printf("[%d]\t\t\t= Potential Modes\n", len(cp.PotentialModes))
}
