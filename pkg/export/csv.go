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
package export

import (
	"encoding/csv"
	"io"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// Write a table as delimited text with a header row.  Null cells write as
// empty fields.
func writeCsv(tbl *frame.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	//
	if err := cw.Write(tbl.ColumnNames()); err != nil {
		return err
	}
	//
	record := make([]string, tbl.Width())
	//
	for row := 0; row < tbl.Height(); row++ {
		for i := 0; i < tbl.Width(); i++ {
			record[i] = tbl.ColumnAt(i).Text(row)
		}
		//
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	//
	cw.Flush()
	//
	return cw.Error()
}
