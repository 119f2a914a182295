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
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// LocateCmd finds the column, layer and block containing a point
var LocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the column, layer and block containing a point",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd)
		if err != nil {
			return err
		}
		var (
			x, _     = cmd.Flags().GetFloat64("x")
			y, _     = cmd.Flags().GetFloat64("y")
			index, _ = cmd.Flags().GetString("index")
			out      = cmd.OutOrStdout()
			ps       = &mesh.PointSearch{Boundary: g.BoundaryPolygon()}
		)
		switch index {
		case "quadtree":
			ps.Index = g.NewQuadTree()
		case "rtree":
			ps.Index = g.NewRTree()
		case "none":
		default:
			return fmt.Errorf("unknown index %q, use quadtree, rtree or none", index)
		}
		col, ok := g.ColumnContainingPoint(r2.Vec{X: x, Y: y}, ps)
		if !ok {
			return fmt.Errorf("point (%g, %g) is outside the grid", x, y)
		}
		fmt.Fprintf(out, "Column: %q\n", col.Name)
		if !cmd.Flags().Changed("z") {
			return nil
		}
		z, _ := cmd.Flags().GetFloat64("z")
		if lay, ok := g.LayerContainingElevation(z); ok {
			fmt.Fprintf(out, "Layer: %q\n", lay.Name)
		}
		if blk, ok := g.BlockNameContainingPoint(r3.Vec{X: x, Y: y, Z: z}); ok {
			fmt.Fprintf(out, "Block: %q\n", blk)
		} else {
			fmt.Fprintf(out, "No block at elevation %g\n", z)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(LocateCmd)
	addGridFlags(LocateCmd, false)
	LocateCmd.Flags().Float64("x", 0, "x coordinate")
	LocateCmd.Flags().Float64("y", 0, "y coordinate")
	LocateCmd.Flags().Float64("z", 0, "elevation, to find the layer and block as well")
	LocateCmd.Flags().String("index", "quadtree", "column search index: quadtree, rtree or none")
}
