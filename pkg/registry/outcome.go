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
package registry

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// PredicateKind identifies how a rule decides whether a raw complication cell
// counts as positive.  The registries use three encodings: free-text category
// labels where anything other than a sentinel means an event occurred,
// Yes/No text flags, and numeric 0/1 indicators.
type PredicateKind uint8

const (
	// TEXT_NOT_EQUALS marks cells positive when their text differs from the
	// sentinel (e.g. != "No Complication").
	TEXT_NOT_EQUALS PredicateKind = iota
	// TEXT_EQUALS marks cells positive when their text equals the sentinel
	// (e.g. == "Pneumonia", == "Yes").
	TEXT_EQUALS
	// FLAG_SET marks cells positive when their numeric value equals 1.
	FLAG_SET
)

// VariantMask restricts a rule to one or both registry variants.
type VariantMask uint8

const (
	// ADULT_ONLY rules apply to adult extracts.
	ADULT_ONLY VariantMask = 1 << iota
	// PEDIATRIC_ONLY rules apply to pediatric extracts.
	PEDIATRIC_ONLY
	// BOTH rules apply regardless of variant.
	BOTH = ADULT_ONLY | PEDIATRIC_ONLY
)

// Applies checks whether a mask covers a given variant.
func (m VariantMask) Applies(v Variant) bool {
	switch v {
	case ADULT:
		return m&ADULT_ONLY != 0
	case PEDIATRIC:
		return m&PEDIATRIC_ONLY != 0
	}
	//
	return false
}

// Rule maps one raw column plus a positivity predicate to a contribution
// towards a composite outcome.  Rules are declarative so that column-presence
// handling lives in one place and the tables can be tested independently of
// the reduction.
type Rule struct {
	// Column holding the raw value.
	Column string
	// Kind of positivity predicate.
	Kind PredicateKind
	// Sentinel text for the text predicates; unused for FLAG_SET.
	Text string
	// Variants this rule applies to.
	Variants VariantMask
}

// Holds on a table row exactly when the raw cell counts as a positive event.
// Null cells are never positive (absence of evidence is treated as negative;
// a documented simplification, not a medical claim).
func (r Rule) holds(tbl *frame.Table, row int) bool {
	col := tbl.Column(r.Column)
	//
	switch r.Kind {
	case TEXT_NOT_EQUALS, TEXT_EQUALS:
		if col.Kind() != frame.STRING || col.IsNull(row) {
			return false
		}
		//
		s, _ := col.String(row)
		if r.Kind == TEXT_EQUALS {
			return s == r.Text
		}
		//
		return s != r.Text
	default:
		v, ok := col.Number(row)
		return ok && v == 1
	}
}

// Composite is a named logical OR over a set of outcome rules, producing a
// single 0/1 indicator column.
type Composite struct {
	// Name of the composite, as requested by callers.
	Name string
	// Column added to the dataset.
	Column string
	// Rules contributing to the OR-reduction.
	Rules []Rule
}

// The "No Complication" sentinel used by the SSI category columns.
const noComplication = "No Complication"

// AnySSI is the composite surgical-site-infection outcome: positive when any
// of the three SSI category columns records anything other than the
// "No Complication" sentinel.  The source columns are named identically in
// both registry variants.
var AnySSI = Composite{
	Name:   "ssi",
	Column: "ANY_SSI",
	Rules: []Rule{
		{Column: "SUPINFEC", Kind: TEXT_NOT_EQUALS, Text: noComplication, Variants: BOTH},
		{Column: "WNDINFD", Kind: TEXT_NOT_EQUALS, Text: noComplication, Variants: BOTH},
		{Column: "ORGSPCSSI", Kind: TEXT_NOT_EQUALS, Text: noComplication, Variants: BOTH},
	},
}

// SeriousMorbidity is the composite serious-complication outcome.  The
// variant-specific rows reflect the registries' own data dictionaries: the
// adult and pediatric extracts genuinely name several functionally similar
// complication fields differently (e.g. CNSCVA vs STROKE), so the asymmetry
// is encoded here rather than papered over.
var SeriousMorbidity = Composite{
	Name:   "serious-morbidity",
	Column: "SERIOUS_MORBIDITY",
	Rules: []Rule{
		// Category-text complications, shared by both variants
		{Column: "WNDINFD", Kind: TEXT_EQUALS, Text: "Deep Incisional SSI", Variants: BOTH},
		{Column: "ORGSPCSSI", Kind: TEXT_EQUALS, Text: "Organ/Space SSI", Variants: BOTH},
		{Column: "OUPNEUMO", Kind: TEXT_EQUALS, Text: "Pneumonia", Variants: BOTH},
		{Column: "URNINFEC", Kind: TEXT_EQUALS, Text: "Urinary Tract Infection", Variants: BOTH},
		// Yes/No flags
		{Column: "REOPERATION1", Kind: TEXT_EQUALS, Text: "Yes", Variants: ADULT_ONLY},
		{Column: "REOPERATION", Kind: TEXT_EQUALS, Text: "Yes", Variants: PEDIATRIC_ONLY},
		{Column: "READMISSION1", Kind: TEXT_EQUALS, Text: "Yes", Variants: BOTH},
		// Numeric 0/1 indicators
		{Column: "CDARREST", Kind: FLAG_SET, Variants: BOTH},
		{Column: "CDMI", Kind: FLAG_SET, Variants: ADULT_ONLY},
		{Column: "CNSCVA", Kind: FLAG_SET, Variants: ADULT_ONLY},
		{Column: "RENAINSF", Kind: FLAG_SET, Variants: ADULT_ONLY},
		{Column: "OPRENAFL", Kind: FLAG_SET, Variants: ADULT_ONLY},
		{Column: "STROKE", Kind: FLAG_SET, Variants: PEDIATRIC_ONLY},
		{Column: "SEIZURE", Kind: FLAG_SET, Variants: PEDIATRIC_ONLY},
		{Column: "RENALFAIL", Kind: FLAG_SET, Variants: PEDIATRIC_ONLY},
	},
}

// Composites returns all built-in composite outcomes.
func Composites() []Composite {
	return []Composite{AnySSI, SeriousMorbidity}
}

// LookupComposite finds a built-in composite by name (or by its result column
// name, case-insensitively).
func LookupComposite(name string) (Composite, error) {
	for _, c := range Composites() {
		if strings.EqualFold(name, c.Name) || strings.EqualFold(name, c.Column) {
			return c, nil
		}
	}
	//
	return Composite{}, fmt.Errorf("unknown composite outcome %q", name)
}

// SourceColumns returns the source columns applicable under a given variant,
// in rule order.
func (c Composite) SourceColumns(v Variant) []string {
	cols := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		if r.Variants.Applies(v) {
			cols = append(cols, r.Column)
		}
	}
	//
	return cols
}

// Derive extends a dataset with this composite's 0/1 indicator column, the
// elementwise OR of all applicable rules whose source column is present.
// Absent source columns are silently excluded; a composite over zero present
// columns fails with NoSourceColumnsError.  Null cells coerce to 0, so the
// derived column is never null.  Re-deriving replaces the column with
// identical values.
func (c Composite) Derive(ds frame.Dataset, v Variant) (frame.Dataset, error) {
	var present, absent []Rule
	//
	for _, r := range c.Rules {
		if !r.Variants.Applies(v) {
			continue
		} else if ds.HasColumn(r.Column) {
			present = append(present, r)
		} else {
			absent = append(absent, r)
		}
	}
	//
	if len(present) == 0 {
		return nil, &NoSourceColumnsError{Composite: c.Name, Expected: c.SourceColumns(v), Variant: v}
	}
	//
	for _, r := range absent {
		log.Debugf("composite %s: source column %s absent, skipping", c.Name, r.Column)
	}
	// Capture rule set for the derivation
	rules := present
	//
	return ds.Apply(frame.Derivation{
		Name: c.Column,
		Fn: func(tbl *frame.Table) *frame.Column {
			data := make([]int64, tbl.Height())
			//
			for row := 0; row < tbl.Height(); row++ {
				for _, r := range rules {
					if r.holds(tbl, row) {
						data[row] = 1
						break
					}
				}
			}
			//
			return frame.NewIntColumn(c.Column, data, nil)
		},
	}), nil
}
