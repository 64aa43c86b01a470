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

// Package registry implements schema-aware operations over clinical registry
// extracts.  Adult and pediatric surgical extracts share most of their
// vocabulary but differ in age granularity (years vs days) and in the naming
// and encoding of several complication fields.  The variant is detected once,
// and every operation dispatches on it through small declarative tables
// rather than re-branching on column names throughout.
package registry

import (
	"fmt"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// Variant identifies which registry schema an extract follows.
type Variant uint8

const (
	// UNKNOWN_VARIANT is the zero variant, used as "no override given".
	UNKNOWN_VARIANT Variant = iota
	// ADULT identifies adult surgical extracts (year-granularity age).
	ADULT
	// PEDIATRIC identifies pediatric surgical extracts (day-granularity age).
	PEDIATRIC
)

// DaysPerYear is the conversion factor between the pediatric day-granularity
// age column and bounds expressed in years.
const DaysPerYear = 365.25

func (v Variant) String() string {
	switch v {
	case ADULT:
		return "adult"
	case PEDIATRIC:
		return "pediatric"
	}
	//
	return "unknown"
}

// ParseVariant parses a variant name as given on the command line.  The empty
// string parses to UNKNOWN_VARIANT, meaning "detect from the data".
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "":
		return UNKNOWN_VARIANT, nil
	case "adult":
		return ADULT, nil
	case "pediatric":
		return PEDIATRIC, nil
	}
	//
	return UNKNOWN_VARIANT, fmt.Errorf("unknown registry variant %q (expected adult or pediatric)", name)
}

// Variant-specific column naming and encoding conventions.  Consulted by
// every schema-aware operation; never branched on elsewhere.
type profile struct {
	// Age columns in order of preference.  The first is also the detection
	// marker for this variant.
	ageColumns []string
	// Whether the age column is day-granularity.
	ageInDays bool
	// Name of the reoperation column (the registries disagree here).
	reopColumn string
}

var profiles = map[Variant]profile{
	ADULT: {
		ageColumns: []string{"AGE_AS_INT", "AGE"},
		ageInDays:  false,
		reopColumn: "REOPERATION1",
	},
	PEDIATRIC: {
		ageColumns: []string{"AGE_DAYS"},
		ageInDays:  true,
		reopColumn: "REOPERATION",
	},
}

// Markers returns the marker columns probed during detection, in probe order.
func Markers() []string {
	return []string{"AGE_DAYS", "AGE_AS_INT", "AGE"}
}

// DetectVariant determines the registry variant of a dataset from its marker
// columns.  A day-granularity age column implies pediatric; a
// year-granularity one implies adult; first match wins.  When no marker is
// present an UndeterminedVariantError is returned, never a silent default.
func DetectVariant(ds frame.Dataset) (Variant, error) {
	if ds.HasColumn("AGE_DAYS") {
		return PEDIATRIC, nil
	}
	//
	if ds.HasColumn("AGE_AS_INT") || ds.HasColumn("AGE") {
		return ADULT, nil
	}
	//
	return UNKNOWN_VARIANT, &UndeterminedVariantError{Markers: Markers()}
}

// ResolveVariant resolves the active variant for a dataset, honouring an
// explicit override.  An override is returned unchanged without validation
// against the columns, since explicit caller intent wins.
func ResolveVariant(ds frame.Dataset, override Variant) (Variant, error) {
	if override != UNKNOWN_VARIANT {
		return override, nil
	}
	//
	return DetectVariant(ds)
}

// AgeColumn returns the name of the age column to use for a given dataset
// under the active variant, or an error if none is present.
func AgeColumn(ds frame.Dataset, v Variant) (string, error) {
	for _, name := range profiles[v].ageColumns {
		if ds.HasColumn(name) {
			return name, nil
		}
	}
	//
	return "", &MissingColumnError{Column: profiles[v].ageColumns[0], Variant: v}
}

// AgeInYears converts a raw age cell value to years under the active variant.
func AgeInYears(v Variant, raw float64) float64 {
	if profiles[v].ageInDays {
		return raw / DaysPerYear
	}
	//
	return raw
}
