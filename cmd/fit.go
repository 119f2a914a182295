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

	"github.com/notargets/mulgrid/InputParameters"
	"github.com/notargets/mulgrid/readfiles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exampleFitFile = `
########################################
Title: "Topography"
DataFile: topo.xyz # x y z per line
Alpha: 0.1
Beta: 0.1
Columns: [] # all columns
MinColumns: []
GridBoundary: true
########################################
`

// FitCmd fits column surface elevations to scattered data
var FitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit column surface elevations to x, y, z data",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(cmd)
		if err != nil {
			return err
		}
		var (
			data []byte
			fp   InputParameters.FitParameters
		)
		if data, err = readJobFile(cmd); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Example File:%s\n", exampleFitFile)
			return err
		}
		if err = fp.Parse(data); err != nil {
			return err
		}
		overrideWeights(viper.GetViper(), &fp, cmd.Flags().Changed("alpha"), cmd.Flags().Changed("beta"))
		if viper.GetBool("verbose") {
			fp.Print()
		}
		dataFile := fp.DataFile
		if dataFile, err = expandPath(dataFile); err != nil {
			return err
		}
		if !filepath.IsAbs(dataFile) {
			jobFile, _ := cmd.Flags().GetString("inputParametersFile")
			dataFile = filepath.Join(filepath.Dir(jobFile), dataFile)
		}
		points, err := readfiles.ReadXYZFile(dataFile)
		if err != nil {
			return err
		}
		if err = g.FitSurface(points, fp.FitOptions()); err != nil {
			return err
		}
		return writeGrid(cmd, g)
	},
}

// overrideWeights replaces each job file smoothing weight that is set by its
// flag or by its own key in the fit section of the config file
func overrideWeights(v *viper.Viper, fp *InputParameters.FitParameters, alphaFlag, betaFlag bool) {
	fit := v.Sub("fit")
	inConfig := func(key string) bool { return fit != nil && fit.IsSet(key) }
	if alphaFlag || inConfig("alpha") {
		fp.Alpha = v.GetFloat64("fit.alpha")
	}
	if betaFlag || inConfig("beta") {
		fp.Beta = v.GetFloat64("fit.beta")
	}
}

func init() {
	rootCmd.AddCommand(FitCmd)
	addGridFlags(FitCmd, true)
	FitCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file describing the fit")
	FitCmd.Flags().Float64("alpha", 0.1, "smoothing weight on the surface gradient")
	FitCmd.Flags().Float64("beta", 0.1, "smoothing weight on the quadrilateral twist")
	_ = viper.BindPFlag("fit.alpha", FitCmd.Flags().Lookup("alpha"))
	_ = viper.BindPFlag("fit.beta", FitCmd.Flags().Lookup("beta"))
}
