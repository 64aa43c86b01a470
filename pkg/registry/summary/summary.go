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

// Package summary builds outcome summary tables (event counts, totals and
// rates, optionally stratified) from materialised registry datasets.  Row
// order is deterministic because these tables end up in publications: strata
// ascend, outcomes keep the order their specs were given in.
package summary

import (
	"math"
	"sort"
	"strconv"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/registry"
)

// NotMaterializedError signals that a summary was requested over a lazy
// dataset.  Per-stratum totals require the full row set, so the caller must
// collect first; doing it implicitly here would hide an arbitrarily expensive
// materialisation inside an innocent-looking call.
type NotMaterializedError struct{}

func (e *NotMaterializedError) Error() string {
	return "outcome summary requires a materialised dataset; collect the query first"
}

// Spec names one outcome to summarise: the column to inspect, the cell text
// which counts as an event, and the name to display.
type Spec struct {
	// Column holding the outcome.
	Column string
	// Positive is the rendered cell value counting as an event ("1" for
	// numeric indicator columns).
	Positive string
	// Display name used in the summary table.
	Display string
}

// DefaultSpecs returns the standard outcome list for a given registry
// variant: the SSI trio, pneumonia, UTI, 30-day mortality, readmission and
// reoperation (under the variant's own column name), plus the two derived
// composites when present.
func DefaultSpecs(v registry.Variant) []Spec {
	specs := []Spec{
		{"SUPINFEC", "Superficial Incisional SSI", "Superficial SSI"},
		{"WNDINFD", "Deep Incisional SSI", "Deep SSI"},
		{"ORGSPCSSI", "Organ/Space SSI", "Organ Space SSI"},
		{"OUPNEUMO", "Pneumonia", "Pneumonia"},
		{"URNINFEC", "Urinary Tract Infection", "UTI"},
		{"DEATH30", "1", "30-Day Mortality"},
		{"READMISSION1", "Yes", "Readmission"},
	}
	//
	if v == registry.PEDIATRIC {
		specs = append(specs, Spec{"REOPERATION", "Yes", "Reoperation"})
	} else {
		specs = append(specs, Spec{"REOPERATION1", "Yes", "Reoperation"})
	}
	//
	return append(specs,
		Spec{"ANY_SSI", "1", "Any SSI"},
		Spec{"SERIOUS_MORBIDITY", "1", "Serious Morbidity"},
	)
}

// Row is one (stratum, outcome) cell of a summary table.
type Row struct {
	// Stratum value this row belongs to; empty for unstratified tables.
	Stratum string
	// Outcome display name.
	Outcome string
	// Events is the number of rows matching the positive value.
	Events int
	// Total is the number of rows in the stratum.
	Total int
	// Rate is Events/Total as a percentage, rounded to 2 decimal places.
	// Exactly 0 for an empty stratum.
	Rate float64
}

// Table is a terminal summary of outcomes, ready for rendering or export.
type Table struct {
	// GroupBy names the stratification column, or "" for overall tables.
	GroupBy string
	// Rows in publication order.
	Rows []Row
}

// Options configures summary construction.
type Options struct {
	// Variant active for the dataset; used for default specs and error
	// context.
	Variant registry.Variant
	// Specs to summarise; defaults to DefaultSpecs(Variant) when empty.
	Specs []Spec
	// GroupBy optionally names a stratification column.
	GroupBy string
	// Strata optionally fixes the strata to report.  Strata absent from the
	// data are reported with Total 0 and Rate 0; when empty, strata are
	// discovered from the data and sorted ascending.
	Strata []string
}

// Build constructs a summary table over a materialised dataset.  Outcome
// specs whose column is absent are skipped.  Rates derive strictly from the
// counts in this table; an empty stratum yields rate 0 rather than an error,
// since an empty subgroup is a valid, reportable state.
func Build(ds frame.Dataset, opts Options) (*Table, error) {
	tbl, ok := ds.(*frame.Table)
	if !ok {
		return nil, &NotMaterializedError{}
	}
	//
	specs := opts.Specs
	if len(specs) == 0 {
		specs = DefaultSpecs(opts.Variant)
	}
	// Keep only specs whose column is present
	present := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if tbl.HasColumn(s.Column) {
			present = append(present, s)
		}
	}
	//
	if opts.GroupBy == "" {
		return &Table{Rows: summarise(tbl, present, "", allRows(tbl))}, nil
	}
	//
	if !tbl.HasColumn(opts.GroupBy) {
		return nil, &registry.MissingColumnError{Column: opts.GroupBy, Variant: opts.Variant}
	}
	// Partition rows by stratum
	groups := partition(tbl, opts.GroupBy)
	//
	strata := opts.Strata
	if len(strata) == 0 {
		strata = sortedStrata(tbl.Column(opts.GroupBy), groups)
	}
	//
	out := &Table{GroupBy: opts.GroupBy}
	for _, stratum := range strata {
		out.Rows = append(out.Rows, summarise(tbl, present, stratum, groups[stratum])...)
	}
	//
	return out, nil
}

// Summarise one stratum: for each outcome, count events among the given rows
// and derive the rate from the counts.
func summarise(tbl *frame.Table, specs []Spec, stratum string, rows []int) []Row {
	out := make([]Row, 0, len(specs))
	//
	for _, s := range specs {
		var (
			col    = tbl.Column(s.Column)
			events = 0
			rate   float64
		)
		//
		for _, row := range rows {
			if !col.IsNull(row) && col.Text(row) == s.Positive {
				events++
			}
		}
		//
		if len(rows) > 0 {
			rate = math.Round(float64(events)/float64(len(rows))*100*100) / 100
		}
		//
		out = append(out, Row{
			Stratum: stratum,
			Outcome: s.Display,
			Events:  events,
			Total:   len(rows),
			Rate:    rate,
		})
	}
	//
	return out
}

func allRows(tbl *frame.Table) []int {
	rows := make([]int, tbl.Height())
	for i := range rows {
		rows[i] = i
	}
	//
	return rows
}

// Partition table rows by the rendered value of the grouping column.  Null
// cells group under the empty string.
func partition(tbl *frame.Table, groupBy string) map[string][]int {
	var (
		col    = tbl.Column(groupBy)
		groups = make(map[string][]int)
	)
	//
	for row := 0; row < tbl.Height(); row++ {
		key := col.Text(row)
		groups[key] = append(groups[key], row)
	}
	//
	return groups
}

// Order strata ascending: numerically when every key parses as a number,
// lexically otherwise.  Determinism here matters for reproducible tables.
func sortedStrata(col *frame.Column, groups map[string][]int) []string {
	strata := make([]string, 0, len(groups))
	for k := range groups {
		strata = append(strata, k)
	}
	//
	numeric := col.Kind() != frame.STRING
	//
	sort.Slice(strata, func(i, j int) bool {
		if numeric {
			a, aerr := strconv.ParseFloat(strata[i], 64)
			b, berr := strconv.ParseFloat(strata[j], 64)
			// Null strata (empty keys) sort first
			switch {
			case aerr != nil && berr != nil:
				return strata[i] < strata[j]
			case aerr != nil:
				return true
			case berr != nil:
				return false
			default:
				return a < b
			}
		}
		//
		return strata[i] < strata[j]
	})
	//
	return strata
}
