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
package ctf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/brantlab/go-cohort/pkg/frame"
)

// ToBytes writes a given table as an array of bytes.
func ToBytes(tbl *frame.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBytes(tbl, &buf); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// WriteBytes writes a given table to an io.Writer.
func WriteBytes(tbl *frame.Table, buf io.Writer) error {
	// Write magic
	if _, err := buf.Write(COHORTTB[:]); err != nil {
		return err
	}
	// Write version
	if err := binary.Write(buf, binary.BigEndian, CTF_MAJOR_VERSION); err != nil {
		return err
	}
	//
	if err := binary.Write(buf, binary.BigEndian, CTF_MINOR_VERSION); err != nil {
		return err
	}
	// Write column count
	if err := binary.Write(buf, binary.BigEndian, uint32(tbl.Width())); err != nil {
		return err
	}
	// Write header information
	for i := 0; i < tbl.Width(); i++ {
		if err := writeColumnHeader(tbl.ColumnAt(i), buf); err != nil {
			return err
		}
	}
	// Write column data information
	for i := 0; i < tbl.Width(); i++ {
		if err := writeColumnData(tbl.ColumnAt(i), buf); err != nil {
			return err
		}
	}
	// Done
	return nil
}

func writeColumnHeader(col *frame.Column, buf io.Writer) error {
	nameBytes := []byte(col.Name())
	//
	if len(nameBytes) > math.MaxUint16 {
		return fmt.Errorf("column name %q too long", col.Name())
	}
	// Write name length
	if err := binary.Write(buf, binary.BigEndian, uint16(len(nameBytes))); err != nil {
		return err
	}
	// Write name bytes
	if _, err := buf.Write(nameBytes); err != nil {
		return err
	}
	// Write element kind
	if err := binary.Write(buf, binary.BigEndian, uint8(col.Kind())); err != nil {
		return err
	}
	// Write row count
	return binary.Write(buf, binary.BigEndian, uint32(col.Len()))
}

func writeColumnData(col *frame.Column, buf io.Writer) error {
	// Write validity bitmap
	if err := writeBitmap(col, buf); err != nil {
		return err
	}
	// Write cells
	for i := 0; i < col.Len(); i++ {
		if err := writeCell(col, i, buf); err != nil {
			return err
		}
	}
	// Done
	return nil
}

// Write the validity mask of a column as a bitmap, where a set bit marks a
// valid (non-null) cell.
func writeBitmap(col *frame.Column, buf io.Writer) error {
	bitmap := make([]byte, (col.Len()+7)/8)
	//
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			bitmap[i/8] |= 1 << (i % 8)
		}
	}
	//
	_, err := buf.Write(bitmap)
	//
	return err
}

// Write a single cell.  Null cells are written as zero values so that the
// payload remains fixed-shape; the bitmap is authoritative.
func writeCell(col *frame.Column, row int, buf io.Writer) error {
	switch col.Kind() {
	case frame.STRING:
		s, _ := col.String(row)
		if col.IsNull(row) {
			s = ""
		}
		// Length-prefixed string
		if err := binary.Write(buf, binary.BigEndian, uint32(len(s))); err != nil {
			return err
		}
		//
		_, err := buf.Write([]byte(s))
		//
		return err
	case frame.INT:
		v, _ := col.Int(row)
		if col.IsNull(row) {
			v = 0
		}
		//
		return binary.Write(buf, binary.BigEndian, uint64(v))
	default:
		v, _ := col.Float(row)
		if col.IsNull(row) {
			v = 0
		}
		//
		return binary.Write(buf, binary.BigEndian, math.Float64bits(v))
	}
}
