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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/brantlab/go-cohort/pkg/frame"
)

func loadCsv(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//
	defer f.Close()
	//
	return ReadCSV(f)
}

// ReadCSV reads delimited text with a header row into a table, inferring the
// kind of each column: all-integer columns load as ints, otherwise numeric
// columns load as floats, otherwise text.  Empty cells are null.
func ReadCSV(r io.Reader) (*frame.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	//
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	//
	var (
		header = records[0]
		body   = records[1:]
		tbl    = frame.NewTable()
	)
	//
	for i, name := range header {
		cells := make([]string, len(body))
		for j, record := range body {
			cells[j] = record[i]
		}
		//
		tbl.AddColumn(inferColumn(name, cells))
	}
	//
	return tbl, nil
}

// Infer the kind of a column from its raw cells and construct it.  The
// inference is deliberately conservative: a single non-numeric cell demotes
// the whole column to text.
func inferColumn(name string, cells []string) *frame.Column {
	var (
		valid    = make([]bool, len(cells))
		allInt   = true
		allFloat = true
	)
	//
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		//
		valid[i] = true
		//
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		//
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
		}
	}
	//
	switch {
	case allInt:
		data := make([]int64, len(cells))
		for i, cell := range cells {
			if valid[i] {
				data[i], _ = strconv.ParseInt(cell, 10, 64)
			}
		}
		//
		return frame.NewIntColumn(name, data, valid)
	case allFloat:
		data := make([]float64, len(cells))
		for i, cell := range cells {
			if valid[i] {
				data[i], _ = strconv.ParseFloat(cell, 64)
			}
		}
		//
		return frame.NewFloatColumn(name, data, valid)
	default:
		return frame.NewStringColumn(name, cells, valid)
	}
}
