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

// Query provides a lazy implementation of Dataset: a source table plus an
// ordered list of pending filters and derivations.  Operations append to the
// plan without touching any data; Collect replays the plan.  Queries share
// their source table, which is safe because tables are never mutated.
type Query struct {
	// Source data over which this query operates.
	source *Table
	// Pending operations, applied in order.
	plan []queryOp
}

// Exactly one of pred / derive is set.
type queryOp struct {
	pred   Predicate
	derive *Derivation
}

// NewQuery constructs a lazy query over a given source table.
func NewQuery(source *Table) *Query {
	return &Query{source: source}
}

// ColumnNames returns the source column names followed by any pending derived
// columns not already present.
func (q *Query) ColumnNames() []string {
	names := q.source.ColumnNames()
	//
	for _, op := range q.plan {
		if op.derive != nil && !contains(names, op.derive.Name) {
			names = append(names, op.derive.Name)
		}
	}
	//
	return names
}

// HasColumn checks whether the query will produce a given column.
func (q *Query) HasColumn(name string) bool {
	return contains(q.ColumnNames(), name)
}

// Where appends a row filter to the plan.
func (q *Query) Where(pred Predicate) Dataset {
	return q.extend(queryOp{pred: pred})
}

// Apply appends a column derivation to the plan.
func (q *Query) Apply(d Derivation) Dataset {
	return q.extend(queryOp{derive: &d})
}

// Collect materialises this query by replaying the plan over the source
// table.
func (q *Query) Collect() *Table {
	tbl := q.source
	//
	for _, op := range q.plan {
		if op.pred != nil {
			tbl = tbl.Where(op.pred).(*Table)
		} else {
			tbl = tbl.WithColumn(op.derive.Fn(tbl))
		}
	}
	//
	return tbl
}

func (q *Query) extend(op queryOp) *Query {
	// Copy the plan so siblings derived from the same query never alias.
	plan := make([]queryOp, len(q.plan), len(q.plan)+1)
	copy(plan, q.plan)
	//
	return &Query{source: q.source, plan: append(plan, op)}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	//
	return false
}
