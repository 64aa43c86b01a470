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
package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/registry"
)

func Test_CohortFlags_01(t *testing.T) {
	// Without any flags the cohort passes through untouched; in particular
	// null-age rows must not be dropped by an unrequested age filter.
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{17, 42, 0}, []bool{true, true, false}))
	//
	ds := applyCohortFlags(cohortCommand(), tbl, registry.ADULT)
	//
	if n := ds.Collect().Height(); n != 3 {
		t.Errorf("cohort shrank from 3 to %d rows with no filters requested", n)
	}
}

func Test_CohortFlags_02(t *testing.T) {
	// A dataset without an age column is fine as long as no age bound is given
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewStringColumn("SEX", []string{"M", "F"}, nil))
	//
	ds := applyCohortFlags(cohortCommand(), tbl, registry.ADULT)
	//
	if n := ds.Collect().Height(); n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func Test_CohortFlags_03(t *testing.T) {
	tbl := frame.NewTable()
	tbl.AddColumn(frame.NewIntColumn("AGE_AS_INT", []int64{17, 42, 65}, nil))
	//
	cmd := cohortCommand()
	if err := cmd.Flags().Set("min-age", "18"); err != nil {
		t.Fatal(err)
	}
	//
	ds := applyCohortFlags(cmd, tbl, registry.ADULT)
	//
	if n := ds.Collect().Height(); n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

// Construct a bare command carrying the shared cohort flags.
func cohortCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addCohortFlags(cmd)
	//
	return cmd
}
