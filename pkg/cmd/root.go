// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "go-cohort",
	Short: "A toolbox for clinical registry cohort analysis.",
	Long: `A toolbox for exploring clinical registry extracts (adult and
	pediatric surgical): filtering cohorts, deriving composite
	outcomes, building summary tables, and exporting subsets.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("go-cohort ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	//
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.go-cohort.yaml)")
	rootCmd.PersistentFlags().String("variant", "", "registry variant override (adult or pediatric)")
	// The variant override may also come from the config file or environment.
	if err := viper.BindPFlag("variant", rootCmd.PersistentFlags().Lookup("variant")); err != nil {
		panic(err)
	}
	//
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	}
}

// Read the optional config file.  A missing default config file is fine; an
// unreadable explicit one is not.
func initConfig() {
	explicit := ""
	if f := rootCmd.PersistentFlags().Lookup("config"); f != nil {
		explicit = f.Value.String()
	}
	//
	if explicit != "" {
		viper.SetConfigFile(explicit)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".go-cohort")
	}
	//
	viper.SetEnvPrefix("cohort")
	viper.AutomaticEnv()
	//
	if err := viper.ReadInConfig(); err != nil && explicit != "" {
		fmt.Println(err)
		os.Exit(2)
	} else if err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}
