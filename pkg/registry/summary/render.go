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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Render writes this summary as an aligned text table.  Cell contents are
// truncated to maxCellWidth when positive (e.g. to fit the terminal); zero
// means unbounded.
func (t *Table) Render(w io.Writer, maxCellWidth int) error {
	var (
		header = t.header()
		cells  = make([][]string, 1, len(t.Rows)+1)
		widths = make([]int, len(header))
	)
	//
	cells[0] = header
	for _, r := range t.Rows {
		cells = append(cells, t.cells(r))
	}
	// Determine column widths
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	// Cap cells
	if maxCellWidth > 2 {
		for i := range widths {
			widths[i] = min(widths[i], maxCellWidth)
		}
	}
	// Print rows
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				cell = cell[0:widths[i]-2] + ".."
			}
			//
			if _, err := fmt.Fprintf(w, " %*s |", widths[i], cell); err != nil {
				return err
			}
		}
		//
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	// Done
	return nil
}

// WriteCSV writes this summary as delimited text, one record per (stratum,
// outcome) row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	//
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	//
	for _, r := range t.Rows {
		if err := cw.Write(t.cells(r)); err != nil {
			return err
		}
	}
	//
	cw.Flush()
	//
	return cw.Error()
}

func (t *Table) header() []string {
	if t.GroupBy != "" {
		return []string{t.GroupBy, "Outcome", "Events", "Total", "Rate (%)"}
	}
	//
	return []string{"Outcome", "Events", "Total", "Rate (%)"}
}

func (t *Table) cells(r Row) []string {
	cells := []string{
		r.Outcome,
		strconv.Itoa(r.Events),
		strconv.Itoa(r.Total),
		strconv.FormatFloat(r.Rate, 'f', 2, 64),
	}
	//
	if t.GroupBy != "" {
		cells = append([]string{r.Stratum}, cells...)
	}
	//
	return cells
}
