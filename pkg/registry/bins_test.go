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

func Test_Bins_01(t *testing.T) {
	// Custom edges: first bin open below, last open above, interior [lo, hi)
	scheme, err := CustomBins(ADULT, []float64{0, 18, 65, 150})
	if err != nil {
		t.Fatal(err)
	}
	//
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{17, 18, 64, 65, 90}, nil))
	//
	ds, err := BinAges(tbl, ADULT, scheme)
	if err != nil {
		t.Fatal(err)
	}
	//
	checkGroups(t, ds.Collect(), []string{"<18", "18-64", "18-64", "65+", "65+"})
}

func Test_Bins_02(t *testing.T) {
	ds, err := BinAges(adultTable(), ADULT, StandardBins(ADULT))
	if err != nil {
		t.Fatal(err)
	}
	//
	checkGroups(t, ds.Collect(), []string{"<18", "40-64", "65-79", "80+", "18-39", "40-64"})
}

func Test_Bins_03(t *testing.T) {
	// Standard pediatric bins work in days; 1826.25d sits exactly on the
	// five-year edge and belongs to the bin it opens
	ds, err := BinAges(pediatricTable(), PEDIATRIC, StandardBins(PEDIATRIC))
	if err != nil {
		t.Fatal(err)
	}
	//
	checkGroups(t, ds.Collect(), []string{"1-30d", "1mo-1y", "5-12y", "12-18y"})
}

func Test_Bins_04(t *testing.T) {
	var specErr *BinSpecError
	// Too few edges
	if _, err := CustomBins(ADULT, []float64{18}); !errors.As(err, &specErr) {
		t.Errorf("expected BinSpecError, got %v", err)
	}
	// Not strictly increasing
	if _, err := CustomBins(ADULT, []float64{0, 18, 18, 65}); !errors.As(err, &specErr) {
		t.Errorf("expected BinSpecError, got %v", err)
	}
}

func Test_Bins_05(t *testing.T) {
	// Null ages bin to a null group
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{40, 0}, []bool{true, false}))
	//
	ds, err := BinAges(tbl, ADULT, StandardBins(ADULT))
	if err != nil {
		t.Fatal(err)
	}
	//
	col := ds.Collect().Column(AgeGroupColumn)
	if col.IsNull(0) || !col.IsNull(1) {
		t.Errorf("null age should yield null group")
	}
}

func Test_Bins_06(t *testing.T) {
	// Pediatric custom labels pick legible units per span
	scheme, err := CustomBins(PEDIATRIC, []float64{0, 30 / DaysPerYear, 1, 5, 100})
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := []string{"<30d", "1-12mo", "1-4y", "5+y"}
	for i, label := range scheme.Labels() {
		if label != expected[i] {
			t.Errorf("bin %d: expected %q, got %q", i, expected[i], label)
		}
	}
}

func Test_Bins_07(t *testing.T) {
	// A two-edge scheme is a single all-encompassing bin
	scheme, err := CustomBins(ADULT, []float64{0, 150})
	if err != nil {
		t.Fatal(err)
	}
	//
	if labels := scheme.Labels(); len(labels) != 1 || labels[0] != "all" {
		t.Errorf("unexpected labels %v", labels)
	}
}

func Test_Bins_08(t *testing.T) {
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewFloatColumn("WEIGHT", []float64{2.1, 45, 120}, nil))
	//
	ds, err := BinNumeric(tbl, ADULT, "WEIGHT", "WEIGHT_GROUP", []float64{0, 10, 100, 500})
	if err != nil {
		t.Fatal(err)
	}
	//
	col := ds.Collect().Column("WEIGHT_GROUP")
	for row, want := range []string{"<10", "10-99", "100+"} {
		if got := col.Text(row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
	// Absent source column fails loudly
	var missing *MissingColumnError
	if _, err := BinNumeric(tbl, ADULT, "HEIGHT", "X", []float64{0, 10}); !errors.As(err, &missing) {
		t.Errorf("expected MissingColumnError, got %v", err)
	}
}

// Check the derived age group column against expected labels.
func checkGroups(t *testing.T, tbl *frame.Table, expected []string) {
	t.Helper()
	//
	col := tbl.Column(AgeGroupColumn)
	if col == nil {
		t.Fatalf("column %s missing", AgeGroupColumn)
	}
	//
	for row, want := range expected {
		if got := col.Text(row); got != want {
			t.Errorf("row %d: expected %q, got %q", row, want, got)
		}
	}
}
