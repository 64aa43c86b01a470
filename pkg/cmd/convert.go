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

	"github.com/spf13/cobra"

	"github.com/brantlab/go-cohort/pkg/frame/ctf"
)

// convertCmd represents the convert command for rewriting datasets.
var convertCmd = &cobra.Command{
	Use:   "convert [flags] input_file output_file",
	Short: "Convert a dataset into the columnar table format.",
	Long: `Convert a dataset (sas7bdat, dta, csv, or a directory of
	ctf shards) into a single ctf file.  Reading a ctf file back
	is much faster than re-parsing the original extract, so this
	is the recommended first step for any repeated analysis.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		tbl := readDataset(args[0])
		//
		f, err := os.Create(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		defer f.Close()
		//
		if err := ctf.WriteBytes(tbl, f); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		fmt.Printf("Converted %d rows, %d columns to %s\n", tbl.Height(), tbl.Width(), args[1])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
