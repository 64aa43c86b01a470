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
	"strings"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// SimplifyASA extends a dataset with ASA_SIMPLE, reducing the free-text ASA
// physical status classification to its bare 1-5 digit.  The extracts record
// formats like "2-Mild Disturb" and "ASA 2 - Mild Disturb"; the first digit
// in the text is the class.
func SimplifyASA(ds frame.Dataset, v Variant) (frame.Dataset, error) {
	const asa = "ASACLAS"
	//
	if !ds.HasColumn(asa) {
		return nil, &MissingColumnError{Column: asa, Variant: v}
	}
	//
	return ds.Apply(frame.Derivation{
		Name: "ASA_SIMPLE",
		Fn: func(tbl *frame.Table) *frame.Column {
			var (
				src   = tbl.Column(asa)
				data  = make([]string, tbl.Height())
				valid = make([]bool, tbl.Height())
			)
			//
			for row := 0; row < tbl.Height(); row++ {
				if d := firstDigit(src.Text(row)); d != "" {
					data[row] = d
					valid[row] = true
				}
			}
			//
			return frame.NewStringColumn("ASA_SIMPLE", data, valid)
		},
	}), nil
}

// DeriveBMI extends a dataset with a BMI column computed from height and
// weight, which the surgical extracts store in inches and pounds.  Datasets
// which already carry BMI, or lack the inputs, are returned unchanged.
func DeriveBMI(ds frame.Dataset) frame.Dataset {
	if ds.HasColumn("BMI") || !ds.HasColumn("HEIGHT") || !ds.HasColumn("WEIGHT") {
		return ds
	}
	//
	return ds.Apply(frame.Derivation{
		Name: "BMI",
		Fn: func(tbl *frame.Table) *frame.Column {
			var (
				height = tbl.Column("HEIGHT")
				weight = tbl.Column("WEIGHT")
				data   = make([]float64, tbl.Height())
				valid  = make([]bool, tbl.Height())
			)
			//
			for row := 0; row < tbl.Height(); row++ {
				h, hok := height.Number(row)
				w, wok := weight.Number(row)
				//
				if hok && wok && h > 0 {
					// lbs -> kg, inches -> metres
					kg := w * 0.453592
					m := h * 0.0254
					data[row] = kg / (m * m)
					valid[row] = true
				}
			}
			//
			return frame.NewFloatColumn("BMI", data, valid)
		},
	})
}

// StandardizeSex extends a dataset with SEX_STANDARD, reducing the
// differently capitalised sex codings of the two variants to a single
// uppercase letter.  Datasets without a SEX column are returned unchanged.
func StandardizeSex(ds frame.Dataset) frame.Dataset {
	if !ds.HasColumn("SEX") {
		return ds
	}
	//
	return ds.Apply(frame.Derivation{
		Name: "SEX_STANDARD",
		Fn: func(tbl *frame.Table) *frame.Column {
			var (
				src   = tbl.Column("SEX")
				data  = make([]string, tbl.Height())
				valid = make([]bool, tbl.Height())
			)
			//
			for row := 0; row < tbl.Height(); row++ {
				if s := src.Text(row); s != "" {
					data[row] = strings.ToUpper(s[:1])
					valid[row] = true
				}
			}
			//
			return frame.NewStringColumn("SEX_STANDARD", data, valid)
		},
	})
}

// SurgeryYearColumn is the derived integer year column.
const SurgeryYearColumn = "SURGERY_YEAR"

// DeriveSurgeryYear extends a dataset with SURGERY_YEAR, an integer copy of
// whichever year column the extract carries.  Datasets without a year column
// are returned unchanged.
func DeriveSurgeryYear(ds frame.Dataset) frame.Dataset {
	yearCol, err := yearColumn(ds, UNKNOWN_VARIANT)
	if err != nil {
		return ds
	}
	//
	return ds.Apply(frame.Derivation{
		Name: SurgeryYearColumn,
		Fn: func(tbl *frame.Table) *frame.Column {
			var (
				src   = tbl.Column(yearCol)
				data  = make([]int64, tbl.Height())
				valid = make([]bool, tbl.Height())
			)
			//
			for row := 0; row < tbl.Height(); row++ {
				if y, ok := src.Number(row); ok {
					data[row] = int64(y)
					valid[row] = true
				}
			}
			//
			return frame.NewIntColumn(SurgeryYearColumn, data, valid)
		},
	})
}

// Extract the first decimal digit in a string, or "" if there is none.
func firstDigit(s string) string {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return string(r)
		}
	}
	//
	return ""
}
