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

// Package statio loads registry extracts into tables.  Extracts arrive in
// whatever their registry happened to ship: SAS transport files, Stata files,
// delimited text, or this toolchain's own cohort table format.  A whole
// extract directory of ctf part files can be loaded as one table.
package statio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kshedden/datareader"
	log "github.com/sirupsen/logrus"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/frame/ctf"
)

// Load reads an extract at a given path into a materialised table.  A
// directory loads as the concatenation of its ctf part files; a file loads
// according to its extension (.ctf, .sas7bdat, .dta, .csv, .txt).
func Load(path string) (*frame.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading extract %s: %w", path, err)
	}
	//
	if info.IsDir() {
		return LoadDir(path)
	}
	//
	return LoadFile(path)
}

// LoadFile reads a single extract file into a materialised table, dispatching
// on the file extension.
func LoadFile(path string) (*frame.Table, error) {
	var (
		tbl *frame.Table
		err error
	)
	//
	switch ext := filepath.Ext(path); ext {
	case ".ctf":
		tbl, err = loadCtf(path)
	case ".sas7bdat", ".dta":
		tbl, err = loadStat(path)
	case ".csv", ".txt":
		tbl, err = loadCsv(path)
	default:
		return nil, fmt.Errorf("unknown extract file format: %s", ext)
	}
	//
	if err != nil {
		return nil, fmt.Errorf("loading extract %s: %w", path, err)
	}
	//
	log.Debugf("loaded %s (%d rows, %d columns)", path, tbl.Height(), tbl.Width())
	//
	return tbl, nil
}

// LoadDir reads every ctf part file in a directory (sorted by name, so part
// order is stable) and concatenates them into one table.
func LoadDir(dir string) (*frame.Table, error) {
	parts, err := filepath.Glob(filepath.Join(dir, "*.ctf"))
	if err != nil {
		return nil, err
	}
	//
	if len(parts) == 0 {
		return nil, fmt.Errorf("no ctf part files found in %s", dir)
	}
	//
	sort.Strings(parts)
	//
	tables := make([]*frame.Table, len(parts))
	for i, part := range parts {
		if tables[i], err = LoadFile(part); err != nil {
			return nil, err
		}
	}
	//
	return frame.Concat(tables...)
}

func loadCtf(path string) (*frame.Table, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return ctf.FromBytes(bytes)
}

// Readers for the binary statistical formats share this surface.
type statReader interface {
	ColumnNames() []string
	Read(int) ([]*datareader.Series, error)
}

func loadStat(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//
	defer f.Close()
	//
	var rdr statReader
	//
	if filepath.Ext(path) == ".dta" {
		rdr, err = datareader.NewStataReader(f)
	} else {
		rdr, err = datareader.NewSAS7BDATReader(f)
	}
	//
	if err != nil {
		return nil, err
	}
	// Read the whole file
	series, err := rdr.Read(-1)
	if err != nil {
		return nil, err
	}
	//
	names := rdr.ColumnNames()
	tbl := frame.NewTable()
	//
	for i, s := range series {
		col, err := seriesColumn(names[i], s)
		if err != nil {
			return nil, err
		}
		//
		tbl.AddColumn(col)
	}
	//
	return tbl, nil
}

// Convert a datareader series into a column.  The statistical formats carry
// a wider set of storage widths than we distinguish, so narrow integer types
// widen to int64 and float32 widens to float64.
func seriesColumn(name string, s *datareader.Series) (*frame.Column, error) {
	valid := validMask(s.Missing(), s.Length())
	//
	switch data := s.Data().(type) {
	case []string:
		return frame.NewStringColumn(name, data, valid), nil
	case []float64:
		return frame.NewFloatColumn(name, data, valid), nil
	case []float32:
		widened := make([]float64, len(data))
		for i, v := range data {
			widened[i] = float64(v)
		}
		//
		return frame.NewFloatColumn(name, widened, valid), nil
	case []int64:
		return frame.NewIntColumn(name, data, valid), nil
	case []int32:
		return frame.NewIntColumn(name, widenInts(data), valid), nil
	case []int16:
		return frame.NewIntColumn(name, widenInts(data), valid), nil
	case []int8:
		return frame.NewIntColumn(name, widenInts(data), valid), nil
	case []uint8:
		return frame.NewIntColumn(name, widenInts(data), valid), nil
	case []time.Time:
		// Dates render as ISO days; registries only carry day precision.
		rendered := make([]string, len(data))
		for i, v := range data {
			rendered[i] = v.Format("2006-01-02")
		}
		//
		return frame.NewStringColumn(name, rendered, valid), nil
	default:
		return nil, fmt.Errorf("column %s has unsupported element type %T", name, data)
	}
}

func widenInts[T int8 | int16 | int32 | uint8](data []T) []int64 {
	widened := make([]int64, len(data))
	for i, v := range data {
		widened[i] = int64(v)
	}
	//
	return widened
}

// Invert a missingness mask into a validity mask.  A nil mask means nothing
// is missing.
func validMask(missing []bool, n int) []bool {
	if missing == nil {
		return nil
	}
	//
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = !missing[i]
	}
	//
	return valid
}
