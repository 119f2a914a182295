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

	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/naming"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"
)

// RectangularCmd generates a rectangular grid
var RectangularCmd = &cobra.Command{
	Use:   "rectangular",
	Short: "Generate a rectangular grid from column widths and layer thicknesses",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			dx, _     = cmd.Flags().GetFloat64Slice("dx")
			dy, _     = cmd.Flags().GetFloat64Slice("dy")
			dz, _     = cmd.Flags().GetFloat64Slice("dz")
			origin, _ = cmd.Flags().GetFloat64Slice("origin")
			upper, _  = cmd.Flags().GetBool("upper")
			opts      = mesh.DefaultRectangularOptions()
			g         *mesh.Grid
		)
		if opts.Convention, opts.Atmosphere, err = newGridOptions(); err != nil {
			return
		}
		if len(origin) != 3 {
			return fmt.Errorf("origin needs 3 coordinates, got %d", len(origin))
		}
		opts.Origin = r3.Vec{X: origin[0], Y: origin[1], Z: origin[2]}
		if upper {
			opts.Case = naming.Upper
		}
		if g, err = mesh.NewRectangular(dx, dy, dz, opts); err != nil {
			return
		}
		g.Out = cmd.OutOrStdout()
		if viper.GetBool("verbose") {
			fmt.Fprintln(cmd.OutOrStdout(), g)
		}
		return writeGrid(cmd, g)
	},
}

func init() {
	rootCmd.AddCommand(RectangularCmd)
	RectangularCmd.Flags().StringP("outputFile", "o", "", "geometry file to write")
	RectangularCmd.Flags().Float64Slice("dx", nil, "column widths in x")
	RectangularCmd.Flags().Float64Slice("dy", nil, "column widths in y")
	RectangularCmd.Flags().Float64Slice("dz", nil, "layer thicknesses, from the top down")
	RectangularCmd.Flags().Float64Slice("origin", []float64{0, 0, 0}, "x, y of the grid corner and z of the surface")
	RectangularCmd.Flags().Bool("upper", false, "upper case column letters")
}
