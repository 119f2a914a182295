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

	"github.com/notargets/mulgrid/InputParameters"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exampleRefineFile = `
########################################
Title: "Refine the well field"
Columns: ["  a", "  b"]
Polygon: [[0, 0], [500, 0], [500, 500], [0, 500]] # columns with centres inside
Check: true
########################################
`

// RefineCmd refines selected columns of a grid
var RefineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Refine grid columns, adding transition columns around them",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd)
		if err != nil {
			return err
		}
		var (
			data []byte
			rp   InputParameters.RefineParameters
		)
		if data, err = readJobFile(cmd); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Example File:%s\n", exampleRefineFile)
			return err
		}
		if err = rp.Parse(data); err != nil {
			return err
		}
		if viper.GetBool("verbose") {
			rp.Print()
		}
		names := rp.ColumnNames(g)
		if err = g.Refine(names...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Refined %d columns: %d columns, %d nodes\n", len(names), g.NumColumns(), g.NumNodes())
		if rp.Check {
			if ok, _ := g.Check(false, false); !ok {
				return fmt.Errorf("refined grid failed its check")
			}
		}
		return writeGrid(cmd, g)
	},
}

func init() {
	rootCmd.AddCommand(RefineCmd)
	addGridFlags(RefineCmd, true)
	RefineCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file naming the columns to refine")
}
