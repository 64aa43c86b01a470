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
	"github.com/spf13/viper"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/frame/statio"
	"github.com/brantlab/go-cohort/pkg/registry"
)

// Get an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected float, or panic if an error arises.
func GetFloat64(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected int, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Resolve a positional argument, falling back to a config key so that
// frequently used paths (the extract, the output directory) can live in the
// config file.
func argOr(args []string, index int, key string) string {
	if index < len(args) {
		return args[index]
	}
	//
	return viper.GetString(key)
}

// Read a dataset from a file or directory, exiting on failure.
func readDataset(path string) *frame.Table {
	tbl, err := statio.Load(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return tbl
}

// Determine the registry variant for a dataset, honouring any override given
// via flag, environment or config file.
func resolveVariant(ds frame.Dataset) registry.Variant {
	override, err := registry.ParseVariant(viper.GetString("variant"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	variant, err := registry.ResolveVariant(ds, override)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return variant
}

// Register the cohort selection flags shared by commands operating on a
// filtered subset of a dataset.
func addCohortFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-age", 0, "Minimum age in years (inclusive)")
	cmd.Flags().Float64("max-age", 0, "Maximum age in years (inclusive)")
	cmd.Flags().Bool("elective", false, "Keep elective (non-emergent) cases only")
	cmd.Flags().StringArray("cpt", nil, "Keep only the given CPT codes (repeatable)")
	cmd.Flags().StringArray("composite", nil, "Composite outcomes to derive (repeatable)")
}

// Apply the cohort selection flags to a dataset.  Bounds apply only when
// their flag was given, since zero is a legitimate minimum age.
func applyCohortFlags(cmd *cobra.Command, ds frame.Dataset, variant registry.Variant) frame.Dataset {
	var (
		minAge, maxAge *float64
		err            error
	)
	//
	if cmd.Flags().Changed("min-age") {
		v := GetFloat64(cmd, "min-age")
		minAge = &v
	}
	//
	if cmd.Flags().Changed("max-age") {
		v := GetFloat64(cmd, "max-age")
		maxAge = &v
	}
	// Only filter when a bound was actually requested: FilterAge drops
	// null-age rows, which must not happen behind the caller's back.
	if minAge != nil || maxAge != nil {
		if ds, err = registry.FilterAge(ds, variant, minAge, maxAge); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if GetFlag(cmd, "elective") {
		if ds, err = registry.FilterElective(ds, variant); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if codes := GetStringArray(cmd, "cpt"); len(codes) > 0 {
		if ds, err = registry.FilterCPT(ds, variant, codes...); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	for _, name := range GetStringArray(cmd, "composite") {
		composite, err := registry.LookupComposite(name)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if ds, err = composite.Derive(ds, variant); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	return ds
}
