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

// Package ctf implements the Cohort Table Format, the binary columnar
// interchange format of this toolchain.  A file holds an identifying magic,
// a format version and a sequence of typed columns; each column carries a
// validity bitmap followed by its cell payload.  The format exists so that
// filtered extracts can be re-ingested without re-running type inference.
package ctf

import (
	"bytes"
	"fmt"
)

// CTF_MAJOR_VERSION gives the major version of the binary file format.  No
// matter what version, we should always have the COHORTTB identifier first.
// What follows after that, however, is determined by the major version.
const CTF_MAJOR_VERSION uint16 = 1

// CTF_MINOR_VERSION gives the minor version of the binary file format.  The
// expected interpretation is that older versions are compatible with newer
// ones, but not vice-versa.
const CTF_MINOR_VERSION uint16 = 0

// COHORTTB is used as the file identifier for cohort table files.  This just
// helps us identify actual table files from corrupted files.
var COHORTTB [8]byte = [8]byte{'c', 'o', 'h', 'o', 'r', 't', 't', 'b'}

// IsTableFile checks whether the given data begins with the expected
// "cohorttb" identifier.
func IsTableFile(data []byte) bool {
	var (
		magic  [8]byte
		buffer = bytes.NewBuffer(data)
	)
	//
	if _, err := buffer.Read(magic[:]); err != nil {
		return false
	}
	// Check whether header identified
	return magic == COHORTTB
}

// Checks a version read from a file header against the supported version.
func checkVersion(major, minor uint16) error {
	if major != CTF_MAJOR_VERSION || minor > CTF_MINOR_VERSION {
		return fmt.Errorf("incompatible cohort table file (was v%d.%d, but expected v%d.%d)",
			major, minor, CTF_MAJOR_VERSION, CTF_MINOR_VERSION)
	}
	//
	return nil
}
