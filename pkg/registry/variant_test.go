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
	"errors"
	"testing"

	"github.com/brantlab/go-cohort/pkg/frame"
)

func Test_Variant_01(t *testing.T) {
	v, err := DetectVariant(pediatricTable())
	if err != nil || v != PEDIATRIC {
		t.Fatalf("expected pediatric, got %s (%v)", v, err)
	}
}

func Test_Variant_02(t *testing.T) {
	v, err := DetectVariant(adultTable())
	if err != nil || v != ADULT {
		t.Fatalf("expected adult, got %s (%v)", v, err)
	}
	// Plain AGE also marks an adult extract
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE", []int64{40}, nil))
	//
	if v, err = DetectVariant(tbl); err != nil || v != ADULT {
		t.Errorf("expected adult via AGE, got %s (%v)", v, err)
	}
}

func Test_Variant_03(t *testing.T) {
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewStringColumn("SEX", []string{"M"}, nil))
	//
	_, err := DetectVariant(tbl)
	//
	var undetermined *UndeterminedVariantError
	if !errors.As(err, &undetermined) {
		t.Fatalf("expected UndeterminedVariantError, got %v", err)
	}
	// Error must name the markers probed
	if len(undetermined.Markers) != 3 {
		t.Errorf("expected 3 markers, got %v", undetermined.Markers)
	}
}

func Test_Variant_04(t *testing.T) {
	// An override wins even when the data carries no markers at all
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewStringColumn("SEX", []string{"M"}, nil))
	//
	v, err := ResolveVariant(tbl, PEDIATRIC)
	if err != nil || v != PEDIATRIC {
		t.Fatalf("override ignored: got %s (%v)", v, err)
	}
	// Without an override, resolution falls back to detection
	if _, err := ResolveVariant(tbl, UNKNOWN_VARIANT); err == nil {
		t.Errorf("expected detection failure")
	}
}

func Test_Variant_05(t *testing.T) {
	for _, name := range []string{"adult", "pediatric", ""} {
		if _, err := ParseVariant(name); err != nil {
			t.Errorf("failed parsing %q: %v", name, err)
		}
	}
	//
	if _, err := ParseVariant("neonatal"); err == nil {
		t.Errorf("expected parse failure")
	}
}

func Test_Variant_06(t *testing.T) {
	if y := AgeInYears(PEDIATRIC, 365.25); y != 1 {
		t.Errorf("expected 1 year, got %f", y)
	}
	//
	if y := AgeInYears(ADULT, 42); y != 42 {
		t.Errorf("adult ages are already in years, got %f", y)
	}
}

func Test_Variant_07(t *testing.T) {
	// AGE_AS_INT is preferred over AGE when both exist
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE", []int64{40}, nil))
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{40}, nil))
	//
	name, err := AgeColumn(tbl, ADULT)
	if err != nil || name != "AGE_AS_INT" {
		t.Errorf("expected AGE_AS_INT, got %s (%v)", name, err)
	}
}

// Construct a small adult-style extract used across these tests.
func adultTable() *frame.Table {
	const noc = "No Complication"
	//
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{17, 42, 65, 90, 30, 55}, nil))
	tbl.AddColumn(frame.NewStringColumn("SEX", []string{"male", "female", "male", "female", "male", "female"}, nil))
	tbl.AddColumn(frame.NewStringColumn("EMERGENT", []string{"No", "Yes", "No", "Yes", "No", "No"}, nil))
	tbl.AddColumn(frame.NewStringColumn("CPT", []string{"44950", "44950", "47562", "44950", "47562", "44950"}, nil))
	tbl.AddColumn(frame.NewStringColumn("SUPINFEC",
		[]string{"Superficial Incisional SSI", noc, noc, noc, noc, ""},
		[]bool{true, true, true, true, true, false}))
	tbl.AddColumn(frame.NewStringColumn("WNDINFD",
		[]string{noc, noc, "Deep Incisional SSI", noc, noc, noc}, nil))
	tbl.AddColumn(frame.NewStringColumn("ORGSPCSSI",
		[]string{noc, noc, noc, noc, noc, noc}, nil))
	tbl.AddColumn(frame.NewIntColumn("DEATH30", []int64{0, 1, 0, 0, 0, 0}, nil))
	tbl.AddColumn(frame.NewStringColumn("READMISSION1", []string{"No", "No", "Yes", "No", "No", "No"}, nil))
	tbl.AddColumn(frame.NewStringColumn("REOPERATION1", []string{"No", "No", "No", "No", "No", "No"}, nil))
	tbl.AddColumn(frame.NewIntColumn("CDARREST", []int64{0, 0, 0, 1, 0, 0}, nil))
	//
	return tbl
}

// Construct a small pediatric-style extract.  Ages are in days.
func pediatricTable() *frame.Table {
	const noc = "No Complication"
	//
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewFloatColumn("AGE_DAYS", []float64{10, 200, 1826.25, 5479}, nil))
	tbl.AddColumn(frame.NewStringColumn("EMERGENT", []string{"No", "No", "Yes", "No"}, nil))
	tbl.AddColumn(frame.NewStringColumn("SUPINFEC",
		[]string{noc, "Superficial Incisional SSI", noc, noc}, nil))
	tbl.AddColumn(frame.NewStringColumn("WNDINFD", []string{noc, noc, noc, noc}, nil))
	tbl.AddColumn(frame.NewStringColumn("ORGSPCSSI", []string{noc, noc, noc, noc}, nil))
	tbl.AddColumn(frame.NewStringColumn("REOPERATION", []string{"Yes", "No", "No", "No"}, nil))
	tbl.AddColumn(frame.NewIntColumn("STROKE", []int64{0, 0, 1, 0}, nil))
	//
	return tbl
}
