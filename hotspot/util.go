//----------------------------------------------------------------------
// This file is part of emf-hotspot.
// Copyright (C) 2024-present the emf-hotspot authors
//
// emf-hotspot is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// emf-hotspot is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package hotspot

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

// IsNull returns true if a value is zero within tolerance.
func IsNull(f float64) bool {
	return math.Abs(f) < eps
}

// InRange returns true if v lies in [from, to] within tolerance.
func InRange(v, from, to float64) bool {
	return v-from > -eps && to-v > -eps
}

// Sqr returns the square of a value.
func Sqr(v float64) float64 {
	return v * v
}

// Randomizer returns a math/rand source seeded deterministically from an
// integer seed, so repeated test runs reproduce the same sample sequence.
func Randomizer(seed int64) *rand.Rand {
	hsh := sha256.New()
	hsh.Write([]byte(fmt.Sprintf("emf-hotspot seed %d", seed)))
	rdr := bytes.NewReader(hsh.Sum(nil))
	v, _ := binary.ReadVarint(rdr)
	return rand.New(rand.NewSource(v))
}
