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

// Table provides a materialised implementation of Dataset which stores
// columns as arrays.  All columns have the same height.
type Table struct {
	// Holds the columns of this table, in order of addition.
	columns []*Column
	// Holds the common height of all columns.
	height int
}

// NewTable constructs an empty table into which columns can be added.
func NewTable() *Table {
	return &Table{columns: make([]*Column, 0), height: 0}
}

// Width returns the number of columns in this table.
func (t *Table) Width() int {
	return len(t.columns)
}

// Height returns the number of rows in this table.
func (t *Table) Height() int {
	return t.height
}

// ColumnNames returns the names of all columns in this table, in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	//
	return names
}

// HasColumn checks whether the table has a given column or not.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// Column looks up a column based on its name.  If the column doesn't exist,
// then nil is returned.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	//
	return nil
}

// ColumnAt looks up a column based on its index.
func (t *Table) ColumnAt(index int) *Column {
	return t.columns[index]
}

// AddColumn adds a new column of data to this table.  The column must match
// the height of any columns already present, and its name must be fresh;
// violating either indicates a bug in the caller, hence the panic.
func (t *Table) AddColumn(col *Column) {
	if t.HasColumn(col.name) {
		panic(fmt.Sprintf("column %s already exists", col.name))
	} else if len(t.columns) > 0 && col.Len() != t.height {
		panic(fmt.Sprintf("column %s has height %d, expected %d", col.name, col.Len(), t.height))
	}
	// Append it
	t.columns = append(t.columns, col)
	t.height = col.Len()
}

// WithColumn constructs a new table extended with the given column.  An
// existing column of the same name is replaced in place (retaining its
// position), which is what makes repeated derivations idempotent.
func (t *Table) WithColumn(col *Column) *Table {
	if len(t.columns) > 0 && col.Len() != t.height {
		panic(fmt.Sprintf("column %s has height %d, expected %d", col.name, col.Len(), t.height))
	}
	//
	ntbl := &Table{columns: make([]*Column, len(t.columns)), height: col.Len()}
	copy(ntbl.columns, t.columns)
	//
	for i, c := range ntbl.columns {
		if c.name == col.name {
			ntbl.columns[i] = col
			return ntbl
		}
	}
	// Fresh column
	ntbl.columns = append(ntbl.columns, col)
	//
	return ntbl
}

// Select constructs a new table containing only the named columns, in the
// order given.  Names not present in this table are silently skipped, since
// callers routinely pass include lists spanning both registry variants.
func (t *Table) Select(names []string) *Table {
	ntbl := NewTable()
	for _, n := range names {
		if c := t.Column(n); c != nil {
			ntbl.AddColumn(c)
		}
	}
	//
	return ntbl
}

// Where restricts this table to rows satisfying the predicate, returning a
// new table.
func (t *Table) Where(pred Predicate) Dataset {
	rows := make([]int, 0, t.height)
	for i := 0; i < t.height; i++ {
		if pred(t, i) {
			rows = append(rows, i)
		}
	}
	//
	return t.Take(rows)
}

// Take constructs a new table containing exactly the given rows, in the given
// order.
func (t *Table) Take(rows []int) *Table {
	ntbl := &Table{columns: make([]*Column, len(t.columns)), height: len(rows)}
	for i, c := range t.columns {
		ntbl.columns[i] = c.Slice(rows)
	}
	//
	return ntbl
}

// Apply extends this table with a derived column, replacing any existing
// column of the same name.
func (t *Table) Apply(d Derivation) Dataset {
	return t.WithColumn(d.Fn(t))
}

// Collect implements Dataset; a table is already materialised.
func (t *Table) Collect() *Table {
	return t
}
