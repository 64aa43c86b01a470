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
	"github.com/brantlab/go-cohort/pkg/frame"
)

// FilterAge restricts a dataset to cases whose age falls within [min, max]
// years, bounds inclusive.  A nil bound is unbounded on that side.  The
// comparison is variant-aware: pediatric bounds are converted to days to
// match the day-granularity age column.  Rows with a null age never match.
func FilterAge(ds frame.Dataset, v Variant, min, max *float64) (frame.Dataset, error) {
	ageCol, err := AgeColumn(ds, v)
	if err != nil {
		return nil, err
	}
	// Convert bounds into the native unit of the age column
	lo, hi := min, max
	if v == PEDIATRIC {
		lo = scaleBound(min, DaysPerYear)
		hi = scaleBound(max, DaysPerYear)
	}
	//
	return ds.Where(func(tbl *frame.Table, row int) bool {
		age, ok := tbl.Column(ageCol).Number(row)
		if !ok {
			return false
		}
		//
		if lo != nil && age < *lo {
			return false
		}
		//
		return hi == nil || age <= *hi
	}), nil
}

// FilterElective restricts a dataset to elective (non-emergency) cases.  The
// EMERGENT column must exist: silently passing every row through when it is
// absent would misrepresent the entire downstream cohort, so its absence is a
// hard error.
func FilterElective(ds frame.Dataset, v Variant) (frame.Dataset, error) {
	const emergent = "EMERGENT"
	//
	if !ds.HasColumn(emergent) {
		return nil, &MissingColumnError{Column: emergent, Variant: v}
	}
	//
	return ds.Where(func(tbl *frame.Table, row int) bool {
		// Text tolerates mis-typed columns; anything but "No" drops the row
		return tbl.Column(emergent).Text(row) == "No"
	}), nil
}

// FilterCPT restricts a dataset to cases whose primary procedure code is one
// of the given CPT codes.
func FilterCPT(ds frame.Dataset, v Variant, codes ...string) (frame.Dataset, error) {
	const cpt = "CPT"
	//
	if !ds.HasColumn(cpt) {
		return nil, &MissingColumnError{Column: cpt, Variant: v}
	}
	//
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}
	//
	return ds.Where(func(tbl *frame.Table, row int) bool {
		return wanted[tbl.Column(cpt).Text(row)]
	}), nil
}

// FilterYears restricts a dataset to cases within an inclusive range of
// operation years, using whichever year column the extract carries.
func FilterYears(ds frame.Dataset, v Variant, lo, hi int) (frame.Dataset, error) {
	yearCol, err := yearColumn(ds, v)
	if err != nil {
		return nil, err
	}
	//
	return ds.Where(func(tbl *frame.Table, row int) bool {
		y, ok := tbl.Column(yearCol).Number(row)
		return ok && int(y) >= lo && int(y) <= hi
	}), nil
}

// FilterValue restricts a dataset to rows whose column renders to exactly the
// given text.  This is the generic escape hatch for one-off cohort
// definitions on categorical columns.
func FilterValue(ds frame.Dataset, v Variant, column, value string) (frame.Dataset, error) {
	if !ds.HasColumn(column) {
		return nil, &MissingColumnError{Column: column, Variant: v}
	}
	//
	return ds.Where(func(tbl *frame.Table, row int) bool {
		return tbl.Column(column).Text(row) == value
	}), nil
}

// Year columns in order of preference; surgical extracts carry OPERYR,
// cancer-style extracts carry ADMYR.
func yearColumn(ds frame.Dataset, v Variant) (string, error) {
	for _, name := range []string{"OPERYR", "ADMYR"} {
		if ds.HasColumn(name) {
			return name, nil
		}
	}
	//
	return "", &MissingColumnError{Column: "OPERYR", Variant: v}
}

func scaleBound(b *float64, factor float64) *float64 {
	if b == nil {
		return nil
	}
	//
	scaled := *b * factor
	//
	return &scaled
}
