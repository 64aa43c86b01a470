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

// Predicate decides whether a given row of a materialised table is kept by a
// filter.
type Predicate func(tbl *Table, row int) bool

// Derivation describes a new column computed from a materialised table.  The
// name is declared up front so that lazy datasets can answer column-presence
// questions without materialising, which in turn lets operations validate
// their inputs eagerly.  Consequently the function itself must not fail.
type Derivation struct {
	// Name of the derived column.
	Name string
	// Fn computes the derived column from a materialised table.  The result
	// must have exactly the height of its input.
	Fn func(tbl *Table) *Column
}

// Dataset is a read-only view over named columns of clinical cases.  A
// dataset is either a materialised Table or a lazy Query; every operation
// returns a new logical view and never mutates its receiver.
type Dataset interface {
	// ColumnNames returns the names of all columns (including any pending
	// derivations for lazy datasets), in order.
	ColumnNames() []string
	// HasColumn checks whether the dataset has a given column.
	HasColumn(name string) bool
	// Where restricts the dataset to rows satisfying the predicate.
	Where(pred Predicate) Dataset
	// Apply extends the dataset with a derived column, replacing any existing
	// column of the same name.
	Apply(d Derivation) Dataset
	// Collect materialises the dataset into a table.  Collecting an already
	// materialised dataset is free.
	Collect() *Table
}
