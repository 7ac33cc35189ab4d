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

// LOSStatus records whether a hotspot's post-LOS recomputation found a
// clear or blocked path. The zero value, LOS, is also the default for
// points that never went through the LOS pass (§3 "others keep
// defaults: treated as LOS, 0 blockers").
type LOSStatus int

const (
	LOS LOSStatus = iota
	NLOS
)

func (s LOSStatus) String() string {
	if s == NLOS {
		return "NLOS"
	}
	return "LOS"
}

// HotspotResult is one facade sample point's computed field, combining
// every antenna's contribution. Fields after Contributions are
// populated only by the LOS pass (4.F) for points whose initial E
// exceeded the threshold; otherwise they keep the defaults documented
// per-field below.
type HotspotResult struct {
	BuildingID     string
	Position       Vec3
	ETotalVPerM    float64
	ExceedsLimit   bool
	Contributions  []AntennaContribution

	// Populated by the LOS pass; zero-valued (LOS, 0 blockers, 0 dB,
	// EFieldFree==ETotalVPerM) until then.
	LOSStatus           LOSStatus
	BlockersCount       int
	BuildingAttenDB     float64
	EFieldFreeVPerM     float64
}

// AggregatePoint is the point aggregator (4.E): it runs the field
// kernel (4.D) across every active antenna, combines the
// contributions as a power sum, and reports whether the point exceeds
// the configured threshold.
//
//	E_total = sqrt(sum(E_i^2))
func AggregatePoint(point Vec3, buildingID string, antennas []*Antenna, patterns func(*Antenna) PatternTable, buildingAttenDB float64, cfg *Config) HotspotResult {
	contributions := make([]AntennaContribution, len(antennas))
	sumSq := 0.0
	for i, a := range antennas {
		c := EvaluateField(point, a, patterns(a), buildingAttenDB, cfg.FieldKernelParams())
		contributions[i] = c
		sumSq += Sqr(c.EVPerM)
	}
	eTotal := math.Sqrt(sumSq)
	return HotspotResult{
		BuildingID:      buildingID,
		Position:        point,
		ETotalVPerM:     eTotal,
		ExceedsLimit:    eTotal >= cfg.ThresholdVPerM,
		Contributions:   contributions,
		LOSStatus:       LOS,
		EFieldFreeVPerM: eTotal,
	}
}
