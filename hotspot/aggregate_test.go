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

// threeVPerMAntennas returns n antennas, each alone producing exactly
// 3 V/m at the origin (E = sqrt(K*ERP)/d with K=1, d=1, ERP=9).
func threeVPerMAntennas(n int) []*Antenna {
	out := make([]*Antenna, n)
	for i := range out {
		out[i] = &Antenna{ID: string(rune('a' + i)), Position: Vec3{0, 0, 1}, ERPWatts: 9}
	}
	return out
}

func unitKConfig() *Config {
	cfg := DefaultConfig()
	cfg.KConstant = 1
	cfg.DMinM = 0.1
	cfg.ThresholdVPerM = 5
	return cfg
}

func flatPatterns(*Antenna) PatternTable { return flatPatternTable{} }

func TestAggregatePointPowerSummationTwoAntennas(t *testing.T) {
	cfg := unitKConfig()
	result := AggregatePoint(Vec3{0, 0, 0}, "b1", threeVPerMAntennas(2), flatPatterns, 0, cfg)
	want := math.Sqrt(18)
	if math.Abs(result.ETotalVPerM-want) > 1e-9 {
		t.Errorf("E_total = %g, want %g", result.ETotalVPerM, want)
	}
	if result.ExceedsLimit {
		t.Error("2x3V/m = 4.24V/m should not exceed a 5V/m threshold")
	}
}

func TestAggregatePointPowerSummationFourAntennas(t *testing.T) {
	cfg := unitKConfig()
	result := AggregatePoint(Vec3{0, 0, 0}, "b1", threeVPerMAntennas(4), flatPatterns, 0, cfg)
	if math.Abs(result.ETotalVPerM-6) > 1e-9 {
		t.Errorf("E_total = %g, want 6", result.ETotalVPerM)
	}
	if !result.ExceedsLimit {
		t.Error("4x3V/m = 6V/m should exceed a 5V/m threshold")
	}
}

func TestAggregatePointMonotonicity(t *testing.T) {
	cfg := unitKConfig()
	withFour := AggregatePoint(Vec3{0, 0, 0}, "b1", threeVPerMAntennas(4), flatPatterns, 0, cfg)
	withTwo := AggregatePoint(Vec3{0, 0, 0}, "b1", threeVPerMAntennas(2), flatPatterns, 0, cfg)
	if withTwo.ETotalVPerM > withFour.ETotalVPerM {
		t.Errorf("removing antennas increased E_total: %g > %g", withTwo.ETotalVPerM, withFour.ETotalVPerM)
	}
}

func TestAggregatePointContributionOrderMatchesAntennaOrder(t *testing.T) {
	cfg := unitKConfig()
	antennas := threeVPerMAntennas(3)
	result := AggregatePoint(Vec3{0, 0, 0}, "b1", antennas, flatPatterns, 0, cfg)
	if len(result.Contributions) != len(antennas) {
		t.Fatalf("got %d contributions, want %d", len(result.Contributions), len(antennas))
	}
	for i, a := range antennas {
		if result.Contributions[i].AntennaID != a.ID {
			t.Errorf("contribution %d is for %s, want %s", i, result.Contributions[i].AntennaID, a.ID)
		}
	}
}
