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
package registry

import (
	"fmt"
	"strings"
)

// UndeterminedVariantError signals that a dataset carries none of the marker
// columns which distinguish adult from pediatric extracts, and no explicit
// variant was supplied.  Guessing here is never acceptable: age unit
// conversion depends on the variant, and a wrong guess silently corrupts
// every age-based computation downstream.
type UndeterminedVariantError struct {
	// Markers holds the marker columns probed for, in probe order.
	Markers []string
}

func (e *UndeterminedVariantError) Error() string {
	return fmt.Sprintf(
		"cannot determine registry variant (adult vs pediatric): no marker column found (looked for %s); "+
			"specify the variant explicitly", strings.Join(e.Markers, ", "))
}

// MissingColumnError signals that a column explicitly required by an
// operation is absent from the dataset.  Unlike composite derivation, which
// tolerates absent sources, a filter whose defining column is missing must
// not silently pass all rows through.
type MissingColumnError struct {
	// Column which was required.
	Column string
	// Variant active when the requirement was checked.
	Variant Variant
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %s not found (%s variant)", e.Column, e.Variant)
}

// NoSourceColumnsError signals that none of a composite outcome's source
// columns are present.  A composite over zero inputs is not a zero outcome,
// it is an undefined one.
type NoSourceColumnsError struct {
	// Composite which could not be derived.
	Composite string
	// Expected source columns for the active variant.
	Expected []string
	// Variant active during derivation.
	Variant Variant
}

func (e *NoSourceColumnsError) Error() string {
	return fmt.Sprintf("no source columns for composite %s (%s variant); expected any of: %s",
		e.Composite, e.Variant, strings.Join(e.Expected, ", "))
}

// BinSpecError signals an invalid binning specification (too few edges, or
// edges not strictly increasing).
type BinSpecError struct {
	// Edges as supplied by the caller, in years.
	Edges []float64
	// Reason the edges were rejected.
	Reason string
}

func (e *BinSpecError) Error() string {
	return fmt.Sprintf("invalid bin edges %v: %s", e.Edges, e.Reason)
}
