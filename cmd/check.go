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

	"github.com/spf13/cobra"
)

// CheckCmd runs the grid consistency checker
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a grid for missing or extra connections, orphaned nodes and bad columns or layers",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd)
		if err != nil {
			return err
		}
		fix, _ := cmd.Flags().GetBool("fix")
		silent, _ := cmd.Flags().GetBool("silent")
		ok, report := g.Check(fix, silent)
		if err = report.FixError(); err != nil {
			return fmt.Errorf("grid check fix failed: %w", err)
		}
		if fix && !ok {
			g.SetupBlockNameIndex()
			return writeGrid(cmd, g)
		}
		if !ok && !fix {
			return fmt.Errorf("grid check failed: %d missing connections, %d extra connections, "+
				"%d orphaned nodes, %d bad columns, %d bad layers",
				len(report.MissingConnections), len(report.ExtraConnections),
				len(report.Orphans), len(report.BadColumns), len(report.BadLayers))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	addGridFlags(CheckCmd, true)
	CheckCmd.Flags().Bool("fix", false, "repair the problems found and write the grid")
	CheckCmd.Flags().Bool("silent", false, "do not report the problems found")
}
