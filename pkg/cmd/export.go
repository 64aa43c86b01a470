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
	"path"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brantlab/go-cohort/pkg/export"
	"github.com/brantlab/go-cohort/pkg/frame"
)

// exportCmd represents the export command for writing analysis files.
var exportCmd = &cobra.Command{
	Use:   "export [flags] dataset_file output_file",
	Short: "Export a cohort for downstream analysis.",
	Long: `Export a (optionally filtered) cohort to a file for
	downstream statistical analysis.  The output format follows
	the output file extension unless --format is given.
	Categorical outcome columns gain 0/1 companions on the way
	out.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, dest := exportPaths(args)
		if input == "" || dest == "" {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var ds frame.Dataset = readDataset(input)
		variant := resolveVariant(ds)
		//
		ds = applyCohortFlags(cmd, ds, variant)
		//
		name := GetString(cmd, "format")
		if name == "" {
			name = extFormat(dest)
		}
		//
		format, err := export.ParseFormat(name)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		var include []string
		if cols := GetStringArray(cmd, "include"); len(cols) > 0 {
			include = cols
		}
		//
		err = export.Write(ds.Collect(), dest, export.Options{
			Format:  format,
			Include: include,
		})
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Resolve the input and destination paths.  A single argument is the
// destination, with the extract taken from the config; two arguments are
// explicit; none falls back to the config for both.
func exportPaths(args []string) (string, string) {
	switch len(args) {
	case 2:
		return args[0], args[1]
	case 1:
		return viper.GetString("data"), args[0]
	case 0:
		return viper.GetString("data"), viper.GetString("out")
	}
	//
	return "", ""
}

// Infer a format name from a file extension.
func extFormat(filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		return ""
	}
	// Strip leading dot
	return ext[1:]
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addCohortFlags(exportCmd)
	exportCmd.Flags().String("format", "", "Output format (csv, ctf or stata); defaults to the output extension")
	exportCmd.Flags().StringArray("include", nil, "Only export the given columns (repeatable)")
}
