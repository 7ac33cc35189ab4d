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
	"math"
	"testing"
)

func blockerWallAt(y float64) *Building {
	return &Building{
		ID: "blocker",
		Walls: []Surface{{
			ID: "w1",
			Vertices: []Vec3{
				{-5, y, -5}, {5, y, -5}, {5, y, 5}, {-5, y, 5},
			},
		}},
	}
}

func TestAnalyzeLOSSingleBlocker(t *testing.T) {
	result := &HotspotResult{Position: Vec3{0, 100, 0}, ETotalVPerM: 10}
	candidates := []*Building{blockerWallAt(50)}

	AnalyzeLOS(result, Vec3{0, 0, 0}, 0, "own", candidates, DefaultPerBlockerDB, 5.0)

	want := 10 * math.Pow(10, -12.0/20)
	if math.Abs(result.ETotalVPerM-want) > 1e-6 {
		t.Errorf("E_total = %g, want %g", result.ETotalVPerM, want)
	}
	if result.LOSStatus != NLOS {
		t.Errorf("los_status = %v, want NLOS", result.LOSStatus)
	}
	if result.BlockersCount != 1 {
		t.Errorf("blockers_count = %d, want 1", result.BlockersCount)
	}
	if result.ExceedsLimit {
		t.Error("2.512 V/m should not exceed a 5 V/m threshold")
	}
	if !IsNull(result.EFieldFreeVPerM - 10) {
		t.Errorf("e_field_free = %g, want 10", result.EFieldFreeVPerM)
	}
}

func TestAnalyzeLOSExcludesOwnBuilding(t *testing.T) {
	result := &HotspotResult{Position: Vec3{0, 100, 0}, ETotalVPerM: 10}
	own := blockerWallAt(50)
	own.ID = "own"

	AnalyzeLOS(result, Vec3{0, 0, 0}, 0, "own", []*Building{own}, DefaultPerBlockerDB, 5.0)

	if result.BlockersCount != 0 {
		t.Errorf("blockers_count = %d, want 0 (own building excluded)", result.BlockersCount)
	}
	if result.LOSStatus != LOS {
		t.Errorf("los_status = %v, want LOS", result.LOSStatus)
	}
}

func TestAnalyzeLOSMonotonicity(t *testing.T) {
	clear := &HotspotResult{Position: Vec3{0, 100, 0}, ETotalVPerM: 10}
	AnalyzeLOS(clear, Vec3{0, 0, 0}, 0, "own", nil, DefaultPerBlockerDB, 5.0)

	blocked := &HotspotResult{Position: Vec3{0, 100, 0}, ETotalVPerM: 10}
	AnalyzeLOS(blocked, Vec3{0, 0, 0}, 0, "own", []*Building{blockerWallAt(50)}, DefaultPerBlockerDB, 5.0)

	if blocked.BuildingAttenDB < clear.BuildingAttenDB {
		t.Error("adding a blocker decreased building_attenuation_db")
	}
	if blocked.ETotalVPerM > clear.ETotalVPerM {
		t.Error("adding a blocker increased post-LOS E")
	}
}

func TestMastOffsetFallbackChain(t *testing.T) {
	tall := &Antenna{Position: Vec3{0, 0, 33}}
	if got := MastOffset([]*Antenna{tall}, 10, 0); !IsNull(got - 23) {
		t.Errorf("offset = %g, want 23 (tallest antenna on mast)", got)
	}
	if got := MastOffset(nil, 10, 4.5); !IsNull(got - 4.5) {
		t.Errorf("offset = %g, want 4.5 (configured fallback)", got)
	}
	if got := MastOffset(nil, 10, 0); !IsNull(got - DefaultMastOffsetFallbackM) {
		t.Errorf("offset = %g, want default %g", got, DefaultMastOffsetFallbackM)
	}
}
