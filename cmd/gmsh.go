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

	"github.com/notargets/mulgrid/readfiles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GmshCmd converts a two dimensional gmsh mesh into a layered grid
var GmshCmd = &cobra.Command{
	Use:   "gmsh",
	Short: "Build a layered grid from a 2D gmsh (version 2 ASCII) mesh",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			meshFile, _ = cmd.Flags().GetString("meshFile")
			opts        readfiles.GmshOptions
		)
		if opts.Convention, opts.Atmosphere, err = newGridOptions(); err != nil {
			return
		}
		opts.Layers, _ = cmd.Flags().GetFloat64Slice("dz")
		opts.Top, _ = cmd.Flags().GetFloat64("top")
		if meshFile, err = expandPath(meshFile); err != nil {
			return fmt.Errorf("must supply a mesh file (-m, --meshFile): %w", err)
		}
		g, err := readfiles.ReadGmshFile(meshFile, opts)
		if err != nil {
			return
		}
		if viper.GetBool("verbose") {
			fmt.Fprintln(cmd.OutOrStdout(), g)
		}
		return writeGrid(cmd, g)
	},
}

func init() {
	rootCmd.AddCommand(GmshCmd)
	GmshCmd.Flags().StringP("meshFile", "m", "", "gmsh .msh file to read")
	GmshCmd.Flags().StringP("outputFile", "o", "", "geometry file to write")
	GmshCmd.Flags().Float64Slice("dz", nil, "layer thicknesses, from the top down")
	GmshCmd.Flags().Float64("top", 0, "elevation of the top of the grid")
}
