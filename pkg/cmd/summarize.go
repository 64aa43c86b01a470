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
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/registry"
	"github.com/brantlab/go-cohort/pkg/registry/summary"
)

// summarizeCmd represents the summarize command for building outcome tables.
var summarizeCmd = &cobra.Command{
	Use:   "summarize [flags] dataset_file",
	Short: "Build an outcome summary table for a cohort.",
	Long: `Build an outcome summary table (events, totals and rates)
	for a cohort, optionally filtered and stratified.  Composite
	outcomes are derived before counting, so the table always
	includes any-SSI and serious morbidity when their source
	columns are available.`,
	Run: func(cmd *cobra.Command, args []string) {
		input := argOr(args, 0, "data")
		if len(args) > 1 || input == "" {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var ds frame.Dataset = readDataset(input)
		variant := resolveVariant(ds)
		//
		ds = applyCohortFlags(cmd, ds, variant)
		ds = deriveComposites(ds, variant)
		//
		groupBy := GetString(cmd, "by")
		// Binning ages implies stratifying by the resulting groups
		if GetFlag(cmd, "age-groups") || cmd.Flags().Changed("bins") {
			ds = binAges(cmd, ds, variant)
			//
			if groupBy == "" {
				groupBy = registry.AgeGroupColumn
			}
		}
		//
		table, err := summary.Build(ds.Collect(), summary.Options{
			Variant: variant,
			GroupBy: groupBy,
		})
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		writeSummary(cmd, table)
	},
}

// Derive every known composite outcome, skipping those whose source columns
// are entirely absent from the dataset.
func deriveComposites(ds frame.Dataset, variant registry.Variant) frame.Dataset {
	for _, composite := range registry.Composites() {
		derived, err := composite.Derive(ds, variant)
		//
		var missing *registry.NoSourceColumnsError
		if errors.As(err, &missing) {
			log.Warnf("skipping %s: %s", composite.Name, err)
			continue
		} else if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		ds = derived
	}
	//
	return ds
}

// Attach an age group column, using either the variant's standard bin edges
// or an explicit --bins list.
func binAges(cmd *cobra.Command, ds frame.Dataset, variant registry.Variant) frame.Dataset {
	scheme := registry.StandardBins(variant)
	//
	if cmd.Flags().Changed("bins") {
		edges, err := cmd.Flags().GetFloat64Slice("bins")
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if scheme, err = registry.CustomBins(variant, edges); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	binned, err := registry.BinAges(ds, variant, scheme)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return binned
}

// Write a summary table to stdout or to --output, as text or csv.
func writeSummary(cmd *cobra.Command, table *summary.Table) {
	var (
		out  = os.Stdout
		err  error
		csvs = GetString(cmd, "format") == "csv"
	)
	//
	if path := GetString(cmd, "output"); path != "" {
		if out, err = os.Create(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		defer out.Close()
	}
	//
	if csvs {
		err = table.WriteCSV(out)
	} else {
		err = table.Render(out, maxCellWidth())
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// Determine a sensible cap on rendered cell widths from the terminal, or zero
// (unbounded) when stdout is not a terminal.
func maxCellWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0
	}
	//
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	// Five rendered columns at most
	return max(width/5, 16)
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	addCohortFlags(summarizeCmd)
	summarizeCmd.Flags().String("by", "", "Stratify the summary by the given column")
	summarizeCmd.Flags().Bool("age-groups", false, "Stratify by standard age groups")
	summarizeCmd.Flags().Float64Slice("bins", nil, "Custom age bin edges in years (ascending)")
	summarizeCmd.Flags().String("format", "table", "Output format (table or csv)")
	summarizeCmd.Flags().StringP("output", "o", "", "Write the summary to a file instead of stdout")
}
