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
	"strconv"
)

// Kind identifies the element type of a column.  Registry extracts only ever
// contain free text, integer codes and continuous measurements, so three kinds
// suffice.
type Kind uint8

const (
	// STRING is the kind of columns holding free text or categorical labels.
	STRING Kind = iota
	// INT is the kind of columns holding integer codes and counts.
	INT
	// FLOAT is the kind of columns holding continuous measurements.
	FLOAT
)

func (k Kind) String() string {
	switch k {
	case STRING:
		return "string"
	case INT:
		return "int"
	case FLOAT:
		return "float"
	}
	//
	return "unknown"
}

// Column is a named, immutable sequence of cells of a single kind.  Any cell
// may be null, as registry extracts are full of unanswered fields.  Columns
// are never modified after construction; operations which appear to change a
// column construct a fresh one.
type Column struct {
	name string
	kind Kind
	// Exactly one of the following backing slices is populated, as determined
	// by the kind.
	strs   []string
	ints   []int64
	floats []float64
	// Validity mask, where false marks a null cell.  Always the same length
	// as the backing slice.
	valid []bool
}

// NewStringColumn constructs a column of categorical or free-text cells.  A
// nil validity mask means every cell is valid.
func NewStringColumn(name string, data []string, valid []bool) *Column {
	return &Column{name: name, kind: STRING, strs: data, valid: initValid(len(data), valid)}
}

// NewIntColumn constructs a column of integer cells.  A nil validity mask
// means every cell is valid.
func NewIntColumn(name string, data []int64, valid []bool) *Column {
	return &Column{name: name, kind: INT, ints: data, valid: initValid(len(data), valid)}
}

// NewFloatColumn constructs a column of continuous cells.  A nil validity
// mask means every cell is valid.
func NewFloatColumn(name string, data []float64, valid []bool) *Column {
	return &Column{name: name, kind: FLOAT, floats: data, valid: initValid(len(data), valid)}
}

// Name returns the name of this column.
func (c *Column) Name() string {
	return c.name
}

// Kind returns the element kind of this column.
func (c *Column) Kind() Kind {
	return c.kind
}

// Len returns the number of cells in this column.
func (c *Column) Len() int {
	return len(c.valid)
}

// IsNull checks whether the cell at a given row is null.
func (c *Column) IsNull(row int) bool {
	return !c.valid[row]
}

// String returns the cell at a given row of a STRING column, with false
// indicating a null cell.  Calling this on a non-string column panics, since
// that always indicates a schema bug in the caller.
func (c *Column) String(row int) (string, bool) {
	if c.kind != STRING {
		panic(fmt.Sprintf("column %s is %s, not string", c.name, c.kind))
	}
	//
	return c.strs[row], c.valid[row]
}

// Int returns the cell at a given row of an INT column, with false indicating
// a null cell.
func (c *Column) Int(row int) (int64, bool) {
	if c.kind != INT {
		panic(fmt.Sprintf("column %s is %s, not int", c.name, c.kind))
	}
	//
	return c.ints[row], c.valid[row]
}

// Float returns the cell at a given row of a FLOAT column, with false
// indicating a null cell.
func (c *Column) Float(row int) (float64, bool) {
	if c.kind != FLOAT {
		panic(fmt.Sprintf("column %s is %s, not float", c.name, c.kind))
	}
	//
	return c.floats[row], c.valid[row]
}

// Number returns the cell at a given row of any numeric column as a float64,
// with false indicating either a null cell or a non-numeric column.  This is
// the accessor used by variant-agnostic logic (e.g. age comparisons) which
// must not care whether an extract stored ages as ints or floats.
func (c *Column) Number(row int) (float64, bool) {
	if !c.valid[row] {
		return 0, false
	}
	//
	switch c.kind {
	case INT:
		return float64(c.ints[row]), true
	case FLOAT:
		return c.floats[row], true
	}
	//
	return 0, false
}

// Text renders the cell at a given row as display text, with null cells
// rendered as the empty string.  Integer cells never show a decimal point.
func (c *Column) Text(row int) string {
	if !c.valid[row] {
		return ""
	}
	//
	switch c.kind {
	case STRING:
		return c.strs[row]
	case INT:
		return strconv.FormatInt(c.ints[row], 10)
	default:
		return strconv.FormatFloat(c.floats[row], 'g', -1, 64)
	}
}

// Slice constructs a new column containing exactly the given rows (in the
// given order).  Row indices must be in bounds.
func (c *Column) Slice(rows []int) *Column {
	ncol := &Column{name: c.name, kind: c.kind, valid: make([]bool, len(rows))}
	//
	switch c.kind {
	case STRING:
		ncol.strs = make([]string, len(rows))
		for i, r := range rows {
			ncol.strs[i] = c.strs[r]
		}
	case INT:
		ncol.ints = make([]int64, len(rows))
		for i, r := range rows {
			ncol.ints[i] = c.ints[r]
		}
	case FLOAT:
		ncol.floats = make([]float64, len(rows))
		for i, r := range rows {
			ncol.floats[i] = c.floats[r]
		}
	}
	//
	for i, r := range rows {
		ncol.valid[i] = c.valid[r]
	}
	//
	return ncol
}

// Renamed constructs an identical column under a different name.
func (c *Column) Renamed(name string) *Column {
	ncol := *c
	ncol.name = name
	//
	return &ncol
}

// Equals checks whether two columns hold identical cells (name, kind, values
// and nulls all agree).
func (c *Column) Equals(o *Column) bool {
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	//
	for i := 0; i < c.Len(); i++ {
		if c.valid[i] != o.valid[i] {
			return false
		} else if c.valid[i] && c.Text(i) != o.Text(i) {
			return false
		}
	}
	//
	return true
}

func initValid(n int, valid []bool) []bool {
	if valid != nil {
		if len(valid) != n {
			panic("validity mask length mismatch")
		}
		//
		return valid
	}
	// All cells valid
	valid = make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	//
	return valid
}
