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
package frame

import (
	"testing"
)

func Test_Table_01(t *testing.T) {
	tbl := smallTable()
	//
	if tbl.Width() != 3 || tbl.Height() != 4 {
		t.Fatalf("expected 3x4 table, got %dx%d", tbl.Width(), tbl.Height())
	}
	//
	if !tbl.HasColumn("AGE_AS_INT") || tbl.HasColumn("AGE_DAYS") {
		t.Errorf("column lookup failed")
	}
}

func Test_Table_02(t *testing.T) {
	tbl := smallTable()
	// Restrict to elective rows
	filtered := tbl.Where(func(tbl *Table, row int) bool {
		v, ok := tbl.Column("EMERGENT").String(row)
		return ok && v == "No"
	}).Collect()
	//
	if filtered.Height() != 2 {
		t.Fatalf("expected 2 rows, got %d", filtered.Height())
	}
	// Input must be untouched
	if tbl.Height() != 4 {
		t.Errorf("source table was mutated")
	}
}

func Test_Table_03(t *testing.T) {
	tbl := smallTable()
	sub := tbl.Select([]string{"SEX", "NO_SUCH_COLUMN", "AGE_AS_INT"})
	// Unknown names are skipped, order follows the request
	if sub.Width() != 2 {
		t.Fatalf("expected 2 columns, got %d", sub.Width())
	}
	//
	if sub.ColumnAt(0).Name() != "SEX" || sub.ColumnAt(1).Name() != "AGE_AS_INT" {
		t.Errorf("unexpected column order: %v", sub.ColumnNames())
	}
}

func Test_Table_04(t *testing.T) {
	tbl := smallTable()
	//
	ones := make([]int64, tbl.Height())
	for i := range ones {
		ones[i] = 1
	}
	// Replacing a column keeps its position and width
	ntbl := tbl.WithColumn(NewIntColumn("AGE_AS_INT", ones, nil))
	//
	if ntbl.Width() != tbl.Width() {
		t.Fatalf("replacement changed width to %d", ntbl.Width())
	}
	//
	if v, _ := ntbl.Column("AGE_AS_INT").Int(0); v != 1 {
		t.Errorf("replacement not visible")
	}
	// Original still has old values
	if v, _ := tbl.Column("AGE_AS_INT").Int(0); v != 17 {
		t.Errorf("replacement mutated original")
	}
}

func Test_Table_05(t *testing.T) {
	col := NewFloatColumn("WEIGHT", []float64{1.5, 0, 80}, []bool{true, false, true})
	//
	if col.IsNull(0) || !col.IsNull(1) {
		t.Errorf("validity mask not respected")
	}
	//
	if col.Text(1) != "" {
		t.Errorf("null cell should render empty, got %q", col.Text(1))
	}
	//
	if v, ok := col.Number(2); !ok || v != 80 {
		t.Errorf("numeric access failed")
	}
}

func Test_Query_01(t *testing.T) {
	q := NewQuery(smallTable())
	// Derivation names are visible before materialisation
	d := q.Apply(Derivation{Name: "FLAG", Fn: func(tbl *Table) *Column {
		return NewIntColumn("FLAG", make([]int64, tbl.Height()), nil)
	}})
	//
	if !d.HasColumn("FLAG") {
		t.Errorf("pending derivation not visible")
	}
	// Sibling queries must not alias
	if q.HasColumn("FLAG") {
		t.Errorf("plan leaked into parent query")
	}
}

func Test_Query_02(t *testing.T) {
	q := NewQuery(smallTable())
	//
	d := q.Where(func(tbl *Table, row int) bool {
		v, _ := tbl.Column("AGE_AS_INT").Int(row)
		return v >= 18
	}).Apply(Derivation{Name: "ZERO", Fn: func(tbl *Table) *Column {
		return NewIntColumn("ZERO", make([]int64, tbl.Height()), nil)
	}})
	//
	tbl := d.Collect()
	if tbl.Height() != 3 {
		t.Fatalf("expected 3 rows after filter, got %d", tbl.Height())
	}
	// Derivation ran after the filter
	if tbl.Column("ZERO").Len() != 3 {
		t.Errorf("derived column has wrong height")
	}
}

// Construct a small adult-style table used across these tests.
func smallTable() *Table {
	tbl := NewTable()
	tbl.AddColumn(NewIntColumn("AGE_AS_INT", []int64{17, 42, 65, 90}, nil))
	tbl.AddColumn(NewStringColumn("SEX", []string{"male", "Female", "M", "F"}, nil))
	tbl.AddColumn(NewStringColumn("EMERGENT", []string{"No", "Yes", "No", "Yes"}, nil))
	//
	return tbl
}
