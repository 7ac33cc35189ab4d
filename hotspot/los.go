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

// MastOffset resolves the antenna mast height offset used by the LOS
// segment builder (4.F step 1), following the three-level fallback
// chain from SPEC_FULL §3.5: the tallest antenna actually mounted on
// the mast, then the caller-configured fallback, then an absolute
// default.
func MastOffset(mastAntennas []*Antenna, basePositionH float64, configuredFallbackM float64) float64 {
	maxH := math.Inf(-1)
	for _, a := range mastAntennas {
		if a.Position[2] > maxH {
			maxH = a.Position[2]
		}
	}
	if !math.IsInf(maxH, -1) {
		if off := maxH - basePositionH; off > 0 {
			return off
		}
	}
	if configuredFallbackM > 0 {
		return configuredFallbackM
	}
	return DefaultMastOffsetFallbackM
}

// AnalyzeLOS is the LOS analyzer (4.F). It mutates result in place,
// saving the pre-LOS field as EFieldFreeVPerM, accumulating
// per-blocker attenuation from every candidate building other than
// ownBuildingID, and recomputing ETotalVPerM/ExceedsLimit/LOSStatus.
// Only called for points whose pre-LOS ExceedsLimit is true (the
// caller enforces that, matching cfg.LOSOnlyForExceeding).
func AnalyzeLOS(result *HotspotResult, antennaBasePos Vec3, mastOffsetM float64, ownBuildingID string, candidates []*Building, perBlockerDB, thresholdVPerM float64) {
	start := antennaBasePos
	start[2] += mastOffsetM
	end := result.Position

	blockers := 0
	for _, b := range candidates {
		if b.ID == ownBuildingID {
			continue
		}
		if buildingBlocks(start, end, b) {
			blockers++
		}
	}

	totalDB := float64(blockers) * perBlockerDB
	result.EFieldFreeVPerM = result.ETotalVPerM
	result.BuildingAttenDB = totalDB
	result.BlockersCount = blockers
	newE := result.ETotalVPerM * math.Pow(10, -totalDB/20)
	result.ETotalVPerM = newE
	if totalDB > 0 {
		result.LOSStatus = NLOS
	} else {
		result.LOSStatus = LOS
	}
	result.ExceedsLimit = newE >= thresholdVPerM
}

// buildingBlocks tests whether the segment start->end intersects any
// wall surface of b with >=3 vertices. A single hit is enough to mark
// the building as a blocker; remaining triangles of that building are
// skipped (4.F step 3).
func buildingBlocks(start, end Vec3, b *Building) bool {
	for _, w := range b.Walls {
		if len(w.Vertices) < 3 {
			continue
		}
		for _, tri := range w.Triangles() {
			if IntersectSegmentTriangle(start, end, tri) {
				return true
			}
		}
	}
	return false
}
