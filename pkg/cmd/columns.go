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
	"strings"

	"github.com/spf13/cobra"
)

// columnsCmd represents the columns command for inspecting datasets.
var columnsCmd = &cobra.Command{
	Use:   "columns [flags] dataset_file",
	Short: "List the columns of a dataset.",
	Long: `List the columns of a dataset along with their kinds,
	the detected registry variant and the dataset dimensions.
	Useful as a first look at an unfamiliar extract.`,
	Run: func(cmd *cobra.Command, args []string) {
		input := argOr(args, 0, "data")
		if len(args) > 1 || input == "" {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		tbl := readDataset(input)
		variant := resolveVariant(tbl)
		//
		fmt.Printf("Dataset has %d rows, %d columns (%s registry)\n", tbl.Height(), tbl.Width(), variant)
		//
		filter := GetString(cmd, "match")
		//
		for i := 0; i < tbl.Width(); i++ {
			col := tbl.ColumnAt(i)
			//
			if filter != "" && !strings.Contains(strings.ToLower(col.Name()), strings.ToLower(filter)) {
				continue
			}
			//
			fmt.Printf("  %s (%s)\n", col.Name(), col.Kind())
		}
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().String("match", "", "Only list columns whose name contains the given text")
}
