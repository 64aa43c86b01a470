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
	"fmt"
)

// Concat vertically concatenates tables sharing an identical column layout
// (same names, kinds and order), as arises when an extract is split across
// part files.  The inputs are left untouched.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable(), nil
	}
	//
	first := tables[0]
	// Sanity check layouts agree
	for _, t := range tables[1:] {
		if err := checkLayout(first, t); err != nil {
			return nil, err
		}
	}
	//
	ntbl := NewTable()
	//
	for i := 0; i < first.Width(); i++ {
		col, err := concatColumns(tables, i)
		if err != nil {
			return nil, err
		}
		//
		ntbl.AddColumn(col)
	}
	//
	return ntbl, nil
}

func checkLayout(a, b *Table) error {
	if a.Width() != b.Width() {
		return fmt.Errorf("cannot concatenate tables of width %d and %d", a.Width(), b.Width())
	}
	//
	for i := 0; i < a.Width(); i++ {
		ac, bc := a.ColumnAt(i), b.ColumnAt(i)
		//
		if ac.Name() != bc.Name() {
			return fmt.Errorf("column mismatch at position %d: %s vs %s", i, ac.Name(), bc.Name())
		} else if ac.Kind() != bc.Kind() {
			return fmt.Errorf("column %s has mixed kinds: %s vs %s", ac.Name(), ac.Kind(), bc.Kind())
		}
	}
	//
	return nil
}

func concatColumns(tables []*Table, index int) (*Column, error) {
	var (
		proto = tables[0].ColumnAt(index)
		valid []bool
	)
	//
	for _, t := range tables {
		col := t.ColumnAt(index)
		for row := 0; row < col.Len(); row++ {
			valid = append(valid, !col.IsNull(row))
		}
	}
	//
	switch proto.Kind() {
	case STRING:
		var data []string
		//
		for _, t := range tables {
			col := t.ColumnAt(index)
			for row := 0; row < col.Len(); row++ {
				s, _ := col.String(row)
				data = append(data, s)
			}
		}
		//
		return NewStringColumn(proto.Name(), data, valid), nil
	case INT:
		var data []int64
		//
		for _, t := range tables {
			col := t.ColumnAt(index)
			for row := 0; row < col.Len(); row++ {
				v, _ := col.Int(row)
				data = append(data, v)
			}
		}
		//
		return NewIntColumn(proto.Name(), data, valid), nil
	default:
		var data []float64
		//
		for _, t := range tables {
			col := t.ColumnAt(index)
			for row := 0; row < col.Len(); row++ {
				v, _ := col.Float(row)
				data = append(data, v)
			}
		}
		//
		return NewFloatColumn(proto.Name(), data, valid), nil
	}
}
