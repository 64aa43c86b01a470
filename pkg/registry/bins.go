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
	"math"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// AgeGroupColumn is the categorical column added by age binning.
const AgeGroupColumn = "AGE_GROUP"

// BinScheme is an ordered set of half-open intervals with associated labels.
// Edges are always expressed in years; conversion to the native unit of the
// active variant happens at binning time.  The first bin is open below and
// the last open above, so a scheme always tiles the whole domain exhaustively
// and disjointly; interior bins are [lo, hi).
type BinScheme struct {
	// Edges in strictly increasing order, in years.
	edges []float64
	// One label per bin; exactly len(edges)-1 entries.
	labels []string
}

// Edges returns the bin edges of this scheme, in years.
func (s BinScheme) Edges() []float64 {
	return s.edges
}

// Labels returns the bin labels of this scheme.
func (s BinScheme) Labels() []string {
	return s.labels
}

// Label returns the bin label for a given age in years.
func (s BinScheme) Label(years float64) string {
	return s.labels[binIndex(s.edges, years)]
}

// StandardBins returns the standard age-group scheme for a given variant.
// Adult groups follow the usual publication breaks; pediatric groups follow
// the neonate/infant/child breaks with day- and month-level bins under one
// year.
func StandardBins(v Variant) BinScheme {
	if v == PEDIATRIC {
		return BinScheme{
			edges:  []float64{0, 1 / DaysPerYear, 30 / DaysPerYear, 1, 2, 5, 12, 18, 100},
			labels: []string{"<1d", "1-30d", "1mo-1y", "1-2y", "2-5y", "5-12y", "12-18y", "18+y"},
		}
	}
	//
	return BinScheme{
		edges:  []float64{0, 18, 40, 65, 80, 150},
		labels: []string{"<18", "18-39", "40-64", "65-79", "80+"},
	}
}

// CustomBins constructs a scheme from caller-supplied edges (in years),
// generating labels appropriate to the variant.  Pediatric labels render in
// the most legible unit for each span (days below a month, months below a
// year, years above); this is a presentation rule only, binning is always
// numeric.  Fails with BinSpecError when fewer than two edges are given or
// the edges are not strictly increasing.
func CustomBins(v Variant, edges []float64) (BinScheme, error) {
	if len(edges) < 2 {
		return BinScheme{}, &BinSpecError{Edges: edges, Reason: "at least two edges required"}
	}
	//
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return BinScheme{}, &BinSpecError{Edges: edges, Reason: "edges must be strictly increasing"}
		}
	}
	//
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = binLabel(v, edges, i)
	}
	//
	return BinScheme{edges: edges, labels: labels}, nil
}

// BinAges extends a dataset with the AGE_GROUP categorical column, binning
// the variant's age column under the given scheme.  Rows with a null age get
// a null group.
func BinAges(ds frame.Dataset, v Variant, scheme BinScheme) (frame.Dataset, error) {
	ageCol, err := AgeColumn(ds, v)
	if err != nil {
		return nil, err
	}
	// Convert edges to the native unit of the age column
	edges := make([]float64, len(scheme.edges))
	for i, e := range scheme.edges {
		if v == PEDIATRIC {
			edges[i] = e * DaysPerYear
		} else {
			edges[i] = e
		}
	}
	//
	return binColumn(ds, ageCol, AgeGroupColumn, edges, scheme.labels), nil
}

// BinNumeric extends a dataset with a categorical column binning an arbitrary
// numeric column (e.g. WEIGHT) under caller-supplied edges in the column's
// own units.  Labels follow the adult convention.  Fails with
// MissingColumnError if the column is absent, or BinSpecError for bad edges.
func BinNumeric(ds frame.Dataset, v Variant, column, result string, edges []float64) (frame.Dataset, error) {
	if !ds.HasColumn(column) {
		return nil, &MissingColumnError{Column: column, Variant: v}
	}
	//
	if len(edges) < 2 {
		return nil, &BinSpecError{Edges: edges, Reason: "at least two edges required"}
	}
	//
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, &BinSpecError{Edges: edges, Reason: "edges must be strictly increasing"}
		}
	}
	//
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = binLabel(ADULT, edges, i)
	}
	//
	return binColumn(ds, column, result, edges, labels), nil
}

// Attach a binning derivation over the given (native unit) edges.
func binColumn(ds frame.Dataset, column, result string, edges []float64, labels []string) frame.Dataset {
	return ds.Apply(frame.Derivation{
		Name: result,
		Fn: func(tbl *frame.Table) *frame.Column {
			var (
				src   = tbl.Column(column)
				data  = make([]string, tbl.Height())
				valid = make([]bool, tbl.Height())
			)
			//
			for row := 0; row < tbl.Height(); row++ {
				if v, ok := src.Number(row); ok {
					data[row] = labels[binIndex(edges, v)]
					valid[row] = true
				}
			}
			//
			return frame.NewStringColumn(result, data, valid)
		},
	})
}

// Assign a value to a bin.  Interior edges partition the domain; values below
// the second edge fall in the first bin and values at or above the
// second-to-last edge fall in the last.  A value sitting exactly on an edge
// belongs to the bin it opens, per the closed-open rule.
func binIndex(edges []float64, v float64) int {
	for i := 1; i < len(edges)-1; i++ {
		if v < edges[i] {
			return i - 1
		}
	}
	//
	return len(edges) - 2
}

// Generate the label for the ith bin under the given variant's presentation
// rules.
func binLabel(v Variant, edges []float64, i int) string {
	var (
		last = len(edges) - 2
		lo   = edges[i]
		hi   = edges[i+1]
	)
	// Degenerate scheme: a single all-encompassing bin
	if last == 0 {
		return "all"
	}
	//
	if v == PEDIATRIC {
		return pediatricLabel(lo, hi, i == 0, i == last)
	}
	//
	switch i {
	case 0:
		return fmt.Sprintf("<%d", int(hi))
	case last:
		return fmt.Sprintf("%d+", int(lo))
	default:
		return fmt.Sprintf("%d-%d", int(lo), int(hi)-1)
	}
}

// Pediatric label spans render in days below a month, months below a year
// and years above, since "183-365d" reads better than "0.5-1y" on a summary
// table.
func pediatricLabel(lo, hi float64, first, last bool) string {
	const monthInYears = 30 / DaysPerYear
	//
	days := func(y float64) int { return int(math.Round(y * DaysPerYear)) }
	months := func(y float64) int { return int(math.Round(y * 12)) }
	//
	switch {
	case first && hi <= monthInYears:
		return fmt.Sprintf("<%dd", days(hi))
	case first && hi < 1:
		return fmt.Sprintf("<%dmo", months(hi))
	case first:
		return fmt.Sprintf("<%dy", int(hi))
	case last && lo < monthInYears:
		return fmt.Sprintf("%d+d", days(lo))
	case last && lo < 1:
		return fmt.Sprintf("%d+mo", months(lo))
	case last:
		return fmt.Sprintf("%d+y", int(lo))
	case hi <= monthInYears:
		return fmt.Sprintf("%d-%dd", days(lo), days(hi))
	case lo < 1:
		return fmt.Sprintf("%d-%dmo", months(lo), months(hi))
	default:
		return fmt.Sprintf("%d-%dy", int(lo), int(hi)-1)
	}
}
