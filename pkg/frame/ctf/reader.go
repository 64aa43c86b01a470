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

// FromBytes parses a byte array representing a cohort table file, or produces
// an error if the original file was malformed in some way.
func FromBytes(data []byte) (*frame.Table, error) {
	buf := bytes.NewReader(data)
	// Read and check magic
	var magic [8]byte
	if _, err := io.ReadFull(buf, magic[:]); err != nil {
		return nil, err
	} else if magic != COHORTTB {
		return nil, fmt.Errorf("not a cohort table file (bad identifier)")
	}
	// Read and check version
	var major, minor uint16
	if err := binary.Read(buf, binary.BigEndian, &major); err != nil {
		return nil, err
	}
	//
	if err := binary.Read(buf, binary.BigEndian, &minor); err != nil {
		return nil, err
	}
	//
	if err := checkVersion(major, minor); err != nil {
		return nil, err
	}
	// Read column count
	var ncols uint32
	if err := binary.Read(buf, binary.BigEndian, &ncols); err != nil {
		return nil, err
	}
	// Read column headers
	headers := make([]columnHeader, ncols)
	for i := uint32(0); i < ncols; i++ {
		header, err := readColumnHeader(buf)
		// Read column
		if err != nil {
			return nil, err
		}
		// Assign header
		headers[i] = header
	}
	// Read column data
	tbl := frame.NewTable()
	for _, header := range headers {
		col, err := readColumnData(header, buf)
		if err != nil {
			return nil, err
		}
		//
		tbl.AddColumn(col)
	}
	// Done
	return tbl, nil
}

type columnHeader struct {
	name   string
	kind   frame.Kind
	length uint
}

// Read the meta-data for a specific column in this table file.
func readColumnHeader(buf *bytes.Reader) (columnHeader, error) {
	var header columnHeader
	// Read column name length
	var nameLen uint16
	if err := binary.Read(buf, binary.BigEndian, &nameLen); err != nil {
		return header, err
	}
	// Read column name bytes
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(buf, name); err != nil {
		return header, err
	}
	// Read element kind
	var kind uint8
	if err := binary.Read(buf, binary.BigEndian, &kind); err != nil {
		return header, err
	}
	//
	if kind > uint8(frame.FLOAT) {
		return header, fmt.Errorf("column %q has unknown element kind %d", name, kind)
	}
	// Read row count
	var length uint32
	if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
		return header, err
	}
	//
	header.name = string(name)
	header.kind = frame.Kind(kind)
	header.length = uint(length)
	//
	return header, nil
}

func readColumnData(header columnHeader, buf *bytes.Reader) (*frame.Column, error) {
	n := int(header.length)
	// Read validity bitmap
	bitmap := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(buf, bitmap); err != nil {
		return nil, err
	}
	//
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		valid[i] = bitmap[i/8]&(1<<(i%8)) != 0
	}
	// Read cells
	switch header.kind {
	case frame.STRING:
		data := make([]string, n)
		//
		for i := 0; i < n; i++ {
			var slen uint32
			if err := binary.Read(buf, binary.BigEndian, &slen); err != nil {
				return nil, err
			}
			//
			sbytes := make([]byte, slen)
			if _, err := io.ReadFull(buf, sbytes); err != nil {
				return nil, err
			}
			//
			data[i] = string(sbytes)
		}
		//
		return frame.NewStringColumn(header.name, data, valid), nil
	case frame.INT:
		data := make([]int64, n)
		//
		for i := 0; i < n; i++ {
			var v uint64
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			//
			data[i] = int64(v)
		}
		//
		return frame.NewIntColumn(header.name, data, valid), nil
	default:
		data := make([]float64, n)
		//
		for i := 0; i < n; i++ {
			var v uint64
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			//
			data[i] = math.Float64frombits(v)
		}
		//
		return frame.NewFloatColumn(header.name, data, valid), nil
	}
}
