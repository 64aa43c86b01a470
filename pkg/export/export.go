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

// Package export writes materialised datasets out for downstream statistical
// analysis.  Categorical outcome columns gain 0/1 numeric companions on the
// way out, so the files are directly usable by tooling that has never heard
// of the registry's text encodings.
//
// Export performs no PHI scrubbing beyond the caller's include list; passing
// only safe columns is the caller's contractual responsibility.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/brantlab/go-cohort/pkg/frame"
	"github.com/brantlab/go-cohort/pkg/frame/ctf"
)

// Format identifies a supported export format.
type Format string

const (
	// CSV is delimited text for generic statistics packages.
	CSV Format = "csv"
	// CTF is the toolchain's own columnar binary, for re-ingestion.
	CTF Format = "ctf"
	// STATA is a best-effort Stata dta file.
	STATA Format = "stata"
)

// FormatError signals an unrecognised destination format.
type FormatError struct {
	// Format as requested by the caller.
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q (expected csv, ctf or stata)", e.Format)
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case CSV, CTF, STATA:
		return Format(name), nil
	case "dta":
		return STATA, nil
	}
	//
	return "", &FormatError{Format: name}
}

// Options configures an export.
type Options struct {
	// Format of the destination file.
	Format Format
	// Include optionally restricts the export to the named columns (in the
	// given order); names absent from the dataset are skipped.  A nil list
	// exports every column.
	Include []string
}

// A fixed mapping from categorical outcome columns to the 0/1 companion
// columns added before writing.
var binaryConversions = []struct {
	column   string
	positive string
	result   string
}{
	{"SUPINFEC", "Superficial Incisional SSI", "SUPINFEC_BINARY"},
	{"WNDINFD", "Deep Incisional SSI", "WNDINFD_BINARY"},
	{"ORGSPCSSI", "Organ/Space SSI", "ORGSPCSSI_BINARY"},
	{"OUPNEUMO", "Pneumonia", "PNEUMO_BINARY"},
	{"URNINFEC", "Urinary Tract Infection", "UTI_BINARY"},
}

// Write exports a materialised dataset to a file, creating any missing
// destination directories first.  Filesystem failures are wrapped so the
// platform error remains reachable via errors.Is / errors.As.
func Write(tbl *frame.Table, path string, opts Options) error {
	// Reject unknown formats before touching the filesystem
	switch opts.Format {
	case CSV, CTF, STATA:
	default:
		return &FormatError{Format: string(opts.Format)}
	}
	//
	if opts.Include != nil {
		tbl = tbl.Select(opts.Include)
	}
	//
	tbl = withBinaryConversions(tbl)
	// Create destination directories proactively
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	//
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	//
	defer f.Close()
	//
	switch opts.Format {
	case CSV:
		err = writeCsv(tbl, f)
	case CTF:
		err = ctf.WriteBytes(tbl, f)
	default:
		err = writeStata(tbl, f)
	}
	//
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	//
	log.Infof("exported %d rows, %d columns to %s", tbl.Height(), tbl.Width(), path)
	//
	return nil
}

// Extend a table with 0/1 companions for each categorical outcome column
// present.  Null cells convert to 0.
func withBinaryConversions(tbl *frame.Table) *frame.Table {
	for _, conv := range binaryConversions {
		col := tbl.Column(conv.column)
		if col == nil {
			continue
		}
		//
		data := make([]int64, tbl.Height())
		for row := 0; row < tbl.Height(); row++ {
			if !col.IsNull(row) && col.Text(row) == conv.positive {
				data[row] = 1
			}
		}
		//
		tbl = tbl.WithColumn(frame.NewIntColumn(conv.result, data, nil))
	}
	//
	return tbl
}
