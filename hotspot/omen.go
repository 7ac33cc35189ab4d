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

import "math"

// OmenValidationStatus is the verdict of comparing a computed OMEN
// field value against its declared expectation.
type OmenValidationStatus int

const (
	// OmenNotDeclared means the OMEN carries no expected value, so no
	// comparison was made.
	OmenNotDeclared OmenValidationStatus = iota
	OmenOK
	OmenDeviation
)

func (s OmenValidationStatus) String() string {
	switch s {
	case OmenOK:
		return "OK"
	case OmenDeviation:
		return "DEVIATION"
	default:
		return "NOT_DECLARED"
	}
}

// OmenValidationResult is the 4.H validator's output for one OMEN.
type OmenValidationResult struct {
	Nr             string
	ComputedVPerM  float64
	ExpectedVPerM  float64
	DeviationPct   float64
	Status         OmenValidationStatus
}

// ValidateOmen is the OMEN validator (4.H): it evaluates the field at
// the OMEN's declared position using its own declared building
// attenuation override (not the computed LOS figure — an OMEN speaks
// for itself), and compares against the declared expectation within
// cfg.OmenTolerancePct.
func ValidateOmen(omen OmenPoint, antennas []*Antenna, patterns func(*Antenna) PatternTable, cfg *Config) OmenValidationResult {
	result := AggregatePoint(omen.Position, "", antennas, patterns, omen.BuildingAttenDB, cfg)

	r := OmenValidationResult{Nr: omen.Nr, ComputedVPerM: result.ETotalVPerM}
	if omen.EFieldExpectedVPerM == nil {
		r.Status = OmenNotDeclared
		return r
	}
	r.ExpectedVPerM = *omen.EFieldExpectedVPerM
	if r.ExpectedVPerM <= 0 {
		r.Status = OmenNotDeclared
		return r
	}
	r.DeviationPct = math.Abs(r.ComputedVPerM-r.ExpectedVPerM) / r.ExpectedVPerM * 100
	if r.DeviationPct <= cfg.OmenTolerancePct {
		r.Status = OmenOK
	} else {
		r.Status = OmenDeviation
	}
	return r
}

// omenHeightMarginM is the tolerance added above/below a building's
// vertex height range when gating an OMEN by elevation (4.I step 2).
const omenHeightMarginM = 0.5

// AssignBuildingToOmen is the OMEN-to-building assignment (4.I): the
// first building whose convex-hull footprint contains the OMEN's (e,n)
// position and whose height range (+/- omenHeightMarginM) brackets its
// h, in input order. Returns ("", false) if none match.
func AssignBuildingToOmen(omen OmenPoint, buildings []*Building) (string, bool) {
	p := Point2D{X: omen.Position[0], Y: omen.Position[1]}
	for _, b := range buildings {
		minH, maxH, ok := b.HeightRange()
		if !ok {
			continue
		}
		if omen.Position[2] < minH-omenHeightMarginM || omen.Position[2] > maxH+omenHeightMarginM {
			continue
		}
		hull := ConvexHull2D(b.Footprint2D())
		if len(hull) < 3 {
			continue
		}
		if PointInPolygon(p, hull) {
			return b.ID, true
		}
	}
	return "", false
}
