package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type AssemblyParameters struct {
	Title            string `yaml:"Title"`
	Dimension        int    `yaml:"Dimension"`
	PolynomialDegree int    `yaml:"PolynomialDegree"`
	NumSpans         int    `yaml:"NumSpans"`
	Form             string `yaml:"Form"`     // mass or stiffness
	Geometry         string `yaml:"Geometry"` // identity, stretch, annulus, twisted
	ProcLimit        int    `yaml:"ProcLimit"`
	Symmetric        bool   `yaml:"Symmetric"`
}

func (ap *AssemblyParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ap)
}

func (ap *AssemblyParameters) Validate() error {
	if ap.Dimension != 2 && ap.Dimension != 3 {
		return fmt.Errorf("dimension must be 2 or 3, got %d", ap.Dimension)
	}
	if ap.PolynomialDegree < 1 {
		return fmt.Errorf("polynomial degree must be at least 1, got %d", ap.PolynomialDegree)
	}
	if ap.NumSpans < 1 {
		return fmt.Errorf("need at least one mesh span, got %d", ap.NumSpans)
	}
	switch ap.Form {
	case "mass", "stiffness":
	default:
		return fmt.Errorf("unknown form %q, want mass or stiffness", ap.Form)
	}
	return nil
}

func (ap *AssemblyParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ap.Title)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ap.Dimension)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Degree\n", ap.PolynomialDegree)
	fmt.Printf("[%d]\t\t\t\t= Mesh Spans Per Axis\n", ap.NumSpans)
	fmt.Printf("[%s]\t\t\t= Form\n", ap.Form)
	fmt.Printf("[%s]\t\t\t= Geometry\n", ap.Geometry)
	fmt.Printf("[%d]\t\t\t\t= Proc Limit (0 = all cores)\n", ap.ProcLimit)
	fmt.Printf("[%v]\t\t\t= Symmetric Pruning\n", ap.Symmetric)
}
