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
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// InfoCmd summarises a grid and its mesh quality
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print a summary of a grid and its mesh quality",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, g)
		fmt.Fprintf(out, "Area: %g\n", g.Area())
		bb := g.Bounds()
		fmt.Fprintf(out, "Bounds: [%g, %g] - [%g, %g]\n", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
		if c, ok := g.Centre(); ok {
			fmt.Fprintf(out, "Centre: [%g, %g]\n", c.X, c.Y)
		}
		fmt.Fprintf(out, "Atmosphere blocks: %d, underground blocks: %d\n", g.NumAtmosphereBlocks(), g.NumUndergroundBlocks())
		printStats(out, "Column angle ratio", g.ColumnAngleRatios())
		printStats(out, "Column side ratio", g.ColumnSideRatios())
		printStats(out, "Connection angle cosine", g.ConnectionAngleCosines())
		return nil
	},
}

func printStats(out io.Writer, label string, values []float64) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(out, "%-24s min %8.4f  mean %8.4f  max %8.4f\n", label+":",
		floats.Min(values), stat.Mean(values, nil), floats.Max(values))
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	addGridFlags(InfoCmd, false)
}
