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
	"os"
	"time"

	"github.com/james-bowman/sparse"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gdrealm/goiga/InputParameters"
	"github.com/gdrealm/goiga/assemble"
	"github.com/gdrealm/goiga/bspline"
	"github.com/gdrealm/goiga/geometry"
	"github.com/gdrealm/goiga/utils"
)

var perfEnabled bool

// AssembleCmd represents the assemble command
var AssembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble a mass or stiffness matrix on a tensor-product spline space",
	Long: `
Builds the B-spline spaces, precomputes basis and geometry tables and runs
the parallel banded assembler, printing matrix dimensions and timings,

goiga assemble -d 2 -n 2 -k 16 -f stiffness -g annulus`,
	Run: func(cmd *cobra.Command, args []string) {
		ap := &InputParameters.AssemblyParameters{Title: "goiga assembly"}
		if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				fmt.Printf("unable to read input file: %v\n", err)
				os.Exit(1)
			}
			if err = ap.Parse(data); err != nil {
				fmt.Printf("unable to parse input file: %v\n", err)
				os.Exit(1)
			}
		} else {
			ap.Dimension, _ = cmd.Flags().GetInt("dim")
			ap.PolynomialDegree, _ = cmd.Flags().GetInt("degree")
			ap.NumSpans, _ = cmd.Flags().GetInt("spans")
			ap.Form, _ = cmd.Flags().GetString("form")
			ap.Geometry, _ = cmd.Flags().GetString("geometry")
			ap.ProcLimit, _ = cmd.Flags().GetInt("procs")
			ap.Symmetric, _ = cmd.Flags().GetBool("symmetric")
		}
		if err := ap.Validate(); err != nil {
			fmt.Printf("invalid parameters: %v\n", err)
			os.Exit(1)
		}
		perfEnabled, _ = cmd.Flags().GetBool("perf")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		RunAssemble(ap)
	},
}

func init() {
	rootCmd.AddCommand(AssembleCmd)
	AssembleCmd.Flags().IntP("dim", "d", 2, "spatial dimension, 2 or 3")
	AssembleCmd.Flags().IntP("degree", "n", 2, "polynomial degree of the spline space")
	AssembleCmd.Flags().IntP("spans", "k", 16, "number of mesh spans per axis")
	AssembleCmd.Flags().StringP("form", "f", "stiffness", "bilinear form to assemble: mass or stiffness")
	AssembleCmd.Flags().StringP("geometry", "g", "identity", "geometry map: identity, stretch, annulus or twisted")
	AssembleCmd.Flags().Int("procs", 0, "limit the number of worker threads, 0 = all cores")
	AssembleCmd.Flags().Bool("symmetric", true, "use symmetric pruning with mirror writes")
	AssembleCmd.Flags().String("input", "", "YAML parameter file, overrides the other flags")
	AssembleCmd.Flags().Bool("profile", false, "write a CPU profile of the assembly")
	AssembleCmd.Flags().Bool("perf", false, "print hardware instruction/cycle counters (linux only)")
}

func RunAssemble(ap *InputParameters.AssemblyParameters) {
	ap.Print()
	geo, err := geometryByName(ap.Geometry, ap.Dimension)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	kvs := make([]bspline.KnotVector, ap.Dimension)
	for k := range kvs {
		kvs[k] = bspline.UniformKnots(ap.PolynomialDegree, ap.NumSpans)
	}
	opt := assemble.Options{ProcLimit: ap.ProcLimit, Symmetric: ap.Symmetric}
	var (
		A     *sparse.CSR
		start = time.Now()
	)
	stopPerf := startPerfCounters()
	switch ap.Form {
	case "mass":
		A, err = assemble.Mass(kvs, geo, opt)
	default:
		A, err = assemble.Stiffness(kvs, geo, opt)
	}
	if err != nil {
		fmt.Printf("assembly failed: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	stopPerf()
	nr, nc := A.Dims()
	fmt.Printf("assembled %s matrix: %d x %d, nnz = %d, elapsed = %v\n",
		ap.Form, nr, nc, A.NNZ(), elapsed)
	fmt.Printf("%s\n", utils.GetMemUsage())
}

func geometryByName(name string, dim int) (geometry.Map, error) {
	switch name {
	case "identity", "":
		if dim == 2 {
			return geometry.UnitSquare{}, nil
		}
		return geometry.UnitCube{}, nil
	case "stretch":
		if dim == 2 {
			return geometry.NewStretch(2, 3), nil
		}
		return geometry.NewStretch(2, 3, 4), nil
	case "annulus":
		if dim != 2 {
			return nil, fmt.Errorf("annulus geometry is 2D only")
		}
		return geometry.QuarterAnnulus2D{Rin: 1, Rout: 2}, nil
	case "twisted":
		if dim != 3 {
			return nil, fmt.Errorf("twisted geometry is 3D only")
		}
		return geometry.TwistedBox3D{Amount: 0.5}, nil
	}
	return nil, fmt.Errorf("unknown geometry %q", name)
}
