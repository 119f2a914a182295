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

	"github.com/mitchellh/go-homedir"
	"github.com/notargets/mulgrid/mesh"
	"github.com/notargets/mulgrid/naming"
	"github.com/notargets/mulgrid/readfiles"
	"github.com/notargets/mulgrid/types"
	"github.com/notargets/mulgrid/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "mulgrid",
	Short: "Layered reservoir grid tools",
	Long: `
Reads, checks, refines and writes 2.5-D layered grids: a horizontal mesh of
columns extruded through a stack of layers, as used by TOUGH2 style
reservoir simulators.

mulgrid rectangular --dx 100,100 --dy 50 --dz 10,20 -o grid.dat
mulgrid info -g grid.dat`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch p, _ := cmd.Flags().GetString("profile"); p {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", p)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			fmt.Fprintln(cmd.OutOrStdout(), utils.GetMemUsage())
		}
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mulgrid.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print progress while reading and processing grids")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the current directory")
	rootCmd.PersistentFlags().Int("convention", int(naming.ColumnLetters), "naming convention for new grids: 0, 1 or 2")
	rootCmd.PersistentFlags().String("atmosphere", types.AtmosphereNone.String(), "atmosphere type for new grids: single, columns or none")
	for _, name := range []string{"verbose", "convention", "atmosphere"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in the config file and MULGRID_ environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".mulgrid")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("MULGRID")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// newGridOptions returns the naming convention and atmosphere type
// configured for generated grids
func newGridOptions() (c naming.Convention, at types.AtmosphereType, err error) {
	if c, err = naming.NewConvention(viper.GetInt("convention")); err != nil {
		return
	}
	at, err = types.ParseAtmosphereType(viper.GetString("atmosphere"))
	return
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no file name given")
	}
	return homedir.Expand(path)
}

func readGrid(cmd *cobra.Command) (g *mesh.Grid, err error) {
	var name string
	if name, err = cmd.Flags().GetString("gridFile"); err != nil {
		return
	}
	if name, err = expandPath(name); err != nil {
		return nil, fmt.Errorf("must supply a grid file (-g, --gridFile): %w", err)
	}
	if g, err = readfiles.ReadGeometryFile(name, viper.GetBool("verbose")); err != nil {
		return
	}
	g.Out = cmd.OutOrStdout()
	return
}

// writeGrid writes to the output file, or back over the input grid file
func writeGrid(cmd *cobra.Command, g *mesh.Grid) (err error) {
	var name string
	if name, _ = cmd.Flags().GetString("outputFile"); name == "" {
		name, _ = cmd.Flags().GetString("gridFile")
	}
	if name, err = expandPath(name); err != nil {
		return fmt.Errorf("must supply an output file (-o, --outputFile): %w", err)
	}
	if err = readfiles.WriteGeometryFile(name, g); err != nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
	return
}

func readJobFile(cmd *cobra.Command) (data []byte, err error) {
	var name string
	if name, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if name, err = expandPath(name); err != nil {
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile): %w", err)
	}
	return os.ReadFile(name)
}

func addGridFlags(cmd *cobra.Command, output bool) {
	cmd.Flags().StringP("gridFile", "g", "", "geometry file to read")
	if output {
		cmd.Flags().StringP("outputFile", "o", "", "geometry file to write, defaults to the input grid file")
	}
}
