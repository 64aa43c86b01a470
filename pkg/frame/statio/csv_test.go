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
package statio

import (
	"strings"
	"testing"

	"github.com/brantlab/go-cohort/pkg/frame"
)

func Test_Csv_01(t *testing.T) {
	input := "AGE_AS_INT,WEIGHT,SEX\n17,150.5,male\n42,,female\n"
	//
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	//
	if tbl.Width() != 3 || tbl.Height() != 2 {
		t.Fatalf("expected 3x2 table, got %dx%d", tbl.Width(), tbl.Height())
	}
	// Kinds are inferred per column
	checkKind(t, tbl, "AGE_AS_INT", frame.INT)
	checkKind(t, tbl, "WEIGHT", frame.FLOAT)
	checkKind(t, tbl, "SEX", frame.STRING)
	// Empty cells load as nulls
	if !tbl.Column("WEIGHT").IsNull(1) {
		t.Errorf("empty cell should be null")
	}
}

func Test_Csv_02(t *testing.T) {
	// A single non-numeric cell demotes the column to text
	input := "AGE\n17\nunknown\n"
	//
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	//
	checkKind(t, tbl, "AGE", frame.STRING)
}

func Test_Csv_03(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Errorf("expected failure on missing header")
	}
}

func Test_Csv_04(t *testing.T) {
	// A header-only file is an empty, well-formed table
	tbl, err := ReadCSV(strings.NewReader("AGE_AS_INT,SEX\n"))
	if err != nil {
		t.Fatal(err)
	}
	//
	if tbl.Width() != 2 || tbl.Height() != 0 {
		t.Errorf("expected empty 2-column table, got %dx%d", tbl.Width(), tbl.Height())
	}
}

func checkKind(t *testing.T, tbl *frame.Table, name string, kind frame.Kind) {
	t.Helper()
	//
	if k := tbl.Column(name).Kind(); k != kind {
		t.Errorf("column %s: expected kind %s, got %s", name, kind, k)
	}
}
