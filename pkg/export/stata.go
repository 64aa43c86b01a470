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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// Best-effort writer for the Stata dta format, version 115 (Stata 12), which
// every Stata release and most statistics packages since can read.  Numeric
// columns write as doubles and text columns as fixed-width str fields, which
// covers everything a registry export contains.  Text wider than the format's
// 244-byte straw limit is truncated.
//
// Layout reference: the dta-115 documentation as summarised by the
// kshedden/datareader package (our reader for the same format).

const (
	dtaFormat115    = 115
	dtaLittleEndian = 2
	dtaTypeDouble   = 255
	dtaMaxStr       = 244
	dtaNameLen      = 33
	dtaFmtLen       = 12
	dtaLabelLen     = 81
	dtaStampLen     = 18
)

// Stata encodes a missing double as 2^1023.
var dtaMissingDouble = math.Float64frombits(0x7FE0000000000000)

func writeStata(tbl *frame.Table, w io.Writer) error {
	if tbl.Width() > math.MaxInt16 {
		return fmt.Errorf("too many columns for dta export (%d)", tbl.Width())
	}
	// Determine per-column storage types
	types := make([]byte, tbl.Width())
	widths := make([]int, tbl.Width())
	//
	for i := 0; i < tbl.Width(); i++ {
		col := tbl.ColumnAt(i)
		//
		if col.Kind() == frame.STRING {
			widths[i] = strWidth(col)
			types[i] = byte(widths[i])
		} else {
			types[i] = dtaTypeDouble
		}
	}
	//
	if err := writeStataHeader(tbl, w); err != nil {
		return err
	}
	// typlist
	if _, err := w.Write(types); err != nil {
		return err
	}
	// varlist
	for i := 0; i < tbl.Width(); i++ {
		if err := writePadded(w, stataName(tbl.ColumnAt(i).Name()), dtaNameLen); err != nil {
			return err
		}
	}
	// srtlist (unsorted)
	if err := writeZeros(w, 2*(tbl.Width()+1)); err != nil {
		return err
	}
	// fmtlist
	for i := 0; i < tbl.Width(); i++ {
		fmtStr := "%9.0g"
		if tbl.ColumnAt(i).Kind() == frame.STRING {
			fmtStr = fmt.Sprintf("%%%ds", widths[i])
		}
		//
		if err := writePadded(w, fmtStr, dtaFmtLen); err != nil {
			return err
		}
	}
	// lbllist (no value labels)
	if err := writeZeros(w, dtaNameLen*tbl.Width()); err != nil {
		return err
	}
	// variable labels (none)
	if err := writeZeros(w, dtaLabelLen*tbl.Width()); err != nil {
		return err
	}
	// expansion fields terminator
	if err := writeZeros(w, 5); err != nil {
		return err
	}
	// data, row major
	for row := 0; row < tbl.Height(); row++ {
		for i := 0; i < tbl.Width(); i++ {
			if err := writeStataCell(tbl.ColumnAt(i), row, widths[i], w); err != nil {
				return err
			}
		}
	}
	// Done (no value label section)
	return nil
}

func writeStataHeader(tbl *frame.Table, w io.Writer) error {
	// ds_format, byteorder, filetype, unused
	if _, err := w.Write([]byte{dtaFormat115, dtaLittleEndian, 1, 0}); err != nil {
		return err
	}
	//
	if err := binary.Write(w, binary.LittleEndian, int16(tbl.Width())); err != nil {
		return err
	}
	//
	if err := binary.Write(w, binary.LittleEndian, int32(tbl.Height())); err != nil {
		return err
	}
	// data label
	if err := writePadded(w, "exported by go-cohort", dtaLabelLen); err != nil {
		return err
	}
	// timestamp, fixed "dd Mon yyyy hh:mm" layout
	return writePadded(w, time.Now().Format("02 Jan 2006 15:04"), dtaStampLen)
}

func writeStataCell(col *frame.Column, row, width int, w io.Writer) error {
	if col.Kind() == frame.STRING {
		s, ok := col.String(row)
		if !ok {
			s = ""
		}
		// Data cells fill the whole field; only metadata needs a terminator.
		return writeFixed(w, truncate(s, width), width)
	}
	//
	v, ok := col.Number(row)
	if !ok {
		v = dtaMissingDouble
	}
	//
	return binary.Write(w, binary.LittleEndian, math.Float64bits(v))
}

// Width of the fixed str field needed for a text column, in [1, 244].
func strWidth(col *frame.Column) int {
	width := 1
	//
	for row := 0; row < col.Len(); row++ {
		if s, ok := col.String(row); ok {
			width = max(width, len(s))
		}
	}
	//
	return min(width, dtaMaxStr)
}

// Sanitise a column name into a valid Stata variable name: letters, digits
// and underscores only, not starting with a digit, at most 32 bytes.
func stataName(name string) string {
	out := []byte(name)
	//
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				out[i] = '_'
			}
		default:
			out[i] = '_'
		}
	}
	//
	return truncate(string(out), dtaNameLen-1)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	//
	return s
}

// Write a string into a fixed-width null-padded metadata field, keeping at
// least one null terminator.
func writePadded(w io.Writer, s string, width int) error {
	if len(s) >= width {
		s = s[:width-1]
	}
	//
	return writeFixed(w, s, width)
}

// Write a string into a fixed-width field, zero padding any remainder.
func writeFixed(w io.Writer, s string, width int) error {
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	//
	return writeZeros(w, width-len(s))
}

func writeZeros(w io.Writer, n int) error {
	_, err := w.Write(make([]byte, n))
	//
	return err
}
