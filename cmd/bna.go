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
	"path/filepath"
	"strings"

	"github.com/notargets/mulgrid/readfiles"
	"github.com/spf13/cobra"
)

// BNACmd exports the column outlines of a grid
var BNACmd = &cobra.Command{
	Use:   "bna",
	Short: "Export grid column outlines to an Atlas BNA file",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		g, err := readGrid(cmd)
		if err != nil {
			return
		}
		name, _ := cmd.Flags().GetString("outputFile")
		if name == "" {
			gridFile, _ := cmd.Flags().GetString("gridFile")
			name = strings.TrimSuffix(gridFile, filepath.Ext(gridFile)) + ".bna"
		}
		if name, err = expandPath(name); err != nil {
			return
		}
		if err = readfiles.WriteBNAFile(name, g); err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
		return
	},
}

func init() {
	rootCmd.AddCommand(BNACmd)
	BNACmd.Flags().StringP("gridFile", "g", "", "geometry file to read")
	BNACmd.Flags().StringP("outputFile", "o", "", "BNA file to write, defaults to the grid file name with a .bna extension")
}
