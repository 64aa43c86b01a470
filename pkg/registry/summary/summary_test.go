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
package summary

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/registry"
)

func Test_Summary_01(t *testing.T) {
	table, err := Build(outcomeTable(), Options{Variant: registry.ADULT})
	if err != nil {
		t.Fatal(err)
	}
	// Absent spec columns are skipped, so only five outcomes survive
	if len(table.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(table.Rows))
	}
	//
	checkRow(t, table, "", "Superficial SSI", 1, 6, 16.67)
	checkRow(t, table, "", "30-Day Mortality", 1, 6, 16.67)
	checkRow(t, table, "", "Any SSI", 2, 6, 33.33)
}

func Test_Summary_02(t *testing.T) {
	table, err := Build(outcomeTable(), Options{Variant: registry.ADULT, GroupBy: "SEX"})
	if err != nil {
		t.Fatal(err)
	}
	// Strata ascend: F before M
	if table.Rows[0].Stratum != "F" {
		t.Errorf("expected F first, got %q", table.Rows[0].Stratum)
	}
	//
	checkRow(t, table, "M", "Any SSI", 2, 3, 66.67)
	checkRow(t, table, "F", "Any SSI", 0, 3, 0)
}

func Test_Summary_03(t *testing.T) {
	// Explicitly requested strata are reported even when empty
	table, err := Build(outcomeTable(), Options{
		Variant: registry.ADULT,
		GroupBy: "SEX",
		Strata:  []string{"M", "F", "X"},
	})
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	checkRow(t, table, "X", "Any SSI", 0, 0, 0)
}

func Test_Summary_04(t *testing.T) {
	// Numeric strata sort numerically, not lexically
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("OPERYR", []int64{2020, 2018, 2019, 102}, nil))
	tbl.AddColumn(frame.NewIntColumn("ANY_SSI", []int64{1, 0, 0, 1}, nil))
	//
	table, err := Build(tbl, Options{
		Variant: registry.ADULT,
		Specs:   []Spec{{"ANY_SSI", "1", "Any SSI"}},
		GroupBy: "OPERYR",
	})
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := []string{"102", "2018", "2019", "2020"}
	for i, r := range table.Rows {
		if r.Stratum != expected[i] {
			t.Errorf("row %d: expected stratum %q, got %q", i, expected[i], r.Stratum)
		}
	}
}

func Test_Summary_05(t *testing.T) {
	// Summaries refuse lazy handles
	_, err := Build(frame.NewQuery(outcomeTable()), Options{Variant: registry.ADULT})
	//
	var lazy *NotMaterializedError
	if !errors.As(err, &lazy) {
		t.Fatalf("expected NotMaterializedError, got %v", err)
	}
}

func Test_Summary_06(t *testing.T) {
	_, err := Build(outcomeTable(), Options{Variant: registry.ADULT, GroupBy: "NO_SUCH"})
	//
	var missing *registry.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
}

func Test_Summary_07(t *testing.T) {
	table, err := Build(outcomeTable(), Options{Variant: registry.ADULT, GroupBy: "SEX"})
	if err != nil {
		t.Fatal(err)
	}
	//
	var buf bytes.Buffer
	if err := table.Render(&buf, 0); err != nil {
		t.Fatal(err)
	}
	// Stratified tables lead with the grouping column
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.Contains(first, "SEX") || !strings.Contains(first, "Rate (%)") {
		t.Errorf("unexpected header: %q", first)
	}
	//
	buf.Reset()
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	// Header plus one record per (stratum, outcome) pair
	records := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if records != len(table.Rows)+1 {
		t.Errorf("expected %d csv records, got %d", len(table.Rows)+1, records)
	}
}

// Check a single (stratum, outcome) row of a summary table.
func checkRow(t *testing.T, table *Table, stratum, outcome string, events, total int, rate float64) {
	t.Helper()
	//
	for _, r := range table.Rows {
		if r.Stratum != stratum || r.Outcome != outcome {
			continue
		}
		//
		if r.Events != events || r.Total != total || r.Rate != rate {
			t.Errorf("%s/%s: expected %d/%d (%.2f%%), got %d/%d (%.2f%%)",
				stratum, outcome, events, total, rate, r.Events, r.Total, r.Rate)
		}
		//
		return
	}
	//
	t.Errorf("row %s/%s missing", stratum, outcome)
}

// Construct a small materialised cohort with pre-derived outcome columns.
func outcomeTable() *frame.Table {
	const noc = "No Complication"
	//
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewStringColumn("SEX", []string{"M", "F", "M", "F", "M", "F"}, nil))
	tbl.AddColumn(frame.NewStringColumn("SUPINFEC",
		[]string{"Superficial Incisional SSI", noc, noc, noc, noc, noc}, nil))
	tbl.AddColumn(frame.NewIntColumn("DEATH30", []int64{0, 1, 0, 0, 0, 0}, nil))
	tbl.AddColumn(frame.NewStringColumn("READMISSION1", []string{"No", "No", "Yes", "No", "No", "No"}, nil))
	tbl.AddColumn(frame.NewStringColumn("REOPERATION1", []string{"No", "No", "No", "No", "No", "No"}, nil))
	tbl.AddColumn(frame.NewIntColumn("ANY_SSI", []int64{1, 0, 1, 0, 0, 0}, nil))
	//
	return tbl
}
