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
	"fmt"
	"math"
)

// PatternTable is an antenna's horizontal/vertical attenuation lookup.
// Implementations must be safe for concurrent reads: the table is
// read-only once constructed and is shared across all parallel
// workers evaluating the field kernel.
type PatternTable interface {
	// HAttenuation returns the non-negative horizontal attenuation (dB)
	// at a relative azimuth angle (any degree value; cyclic).
	HAttenuation(relAzDeg float64) float64
	// VAttenuation returns the non-negative vertical attenuation (dB)
	// at a relative elevation angle (any degree value; cyclic).
	VAttenuation(relElDeg float64) float64
}

// CombinedAttenuation sums the horizontal and vertical attenuation of a
// table at the given relative angles.
func CombinedAttenuation(p PatternTable, relAzDeg, relElDeg float64) float64 {
	return p.HAttenuation(relAzDeg) + p.VAttenuation(relElDeg)
}

//----------------------------------------------------------------------

// TabulatedPattern is a measured antenna pattern: two independently
// sampled curves, stored as gain (not attenuation) so the maximum
// entry is the beam peak. Arrays must be sorted by angle ascending.
type TabulatedPattern struct {
	HAngles []float64 // [0,360), horizontal sample angles
	HGains  []float64 // gain at HAngles (dB, arbitrary reference)
	VAngles []float64 // full 360° cycle, 0 = beam axis, vertical sample angles
	VGains  []float64 // gain at VAngles (dB)

	hMax float64
	vMax float64
}

// NewTabulatedPattern builds a pattern from sorted angle/gain arrays,
// validating array length and angle ordering.
func NewTabulatedPattern(hAngles, hGains, vAngles, vGains []float64) (*TabulatedPattern, error) {
	if len(hAngles) != len(hGains) || len(hAngles) < 2 {
		return nil, fmt.Errorf("horizontal pattern needs matching angle/gain arrays with >=2 samples")
	}
	if len(vAngles) != len(vGains) || len(vAngles) < 2 {
		return nil, fmt.Errorf("vertical pattern needs matching angle/gain arrays with >=2 samples")
	}
	if !sortedAscending(hAngles) || !sortedAscending(vAngles) {
		return nil, fmt.Errorf("pattern angle arrays must be sorted ascending")
	}
	p := &TabulatedPattern{HAngles: hAngles, HGains: hGains, VAngles: vAngles, VGains: vGains}
	p.hMax = maxOf(hGains)
	p.vMax = maxOf(vGains)
	return p, nil
}

func sortedAscending(a []float64) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}

func maxOf(a []float64) float64 {
	m := a[0]
	for _, v := range a[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// HAttenuation normalises relAzDeg mod 360, linearly interpolates
// between cyclic neighbours, and returns max(HGains) - interpolated.
func (p *TabulatedPattern) HAttenuation(relAzDeg float64) float64 {
	g := interpolateCyclic(p.HAngles, p.HGains, NormalizeAzimuth(relAzDeg), 360)
	return math.Max(0, p.hMax-g)
}

// VAttenuation normalises relElDeg to [0,360) (the vertical pattern is
// a full cycle with 0° the main beam axis), linearly interpolating
// when the angle falls within the sampled range and
// saturating to the nearest sampled edge value otherwise (the vertical
// array need not cover the full circle).
func (p *TabulatedPattern) VAttenuation(relElDeg float64) float64 {
	a := NormalizeAzimuth(relElDeg)
	g := interpolateSaturating(p.VAngles, p.VGains, a)
	return math.Max(0, p.vMax-g)
}

// interpolateCyclic linearly interpolates a cyclic table (period
// "period"), where a is already normalised into [0, period). Angles
// outside [angles[0], angles[n-1]] fall into the wrap segment that
// closes the cycle between the last and first samples.
func interpolateCyclic(angles, values []float64, a, period float64) float64 {
	n := len(angles)
	lerp := func(lo, hi, vlo, vhi float64) float64 {
		if hi == lo {
			return vlo
		}
		return vlo + (a-lo)/(hi-lo)*(vhi-vlo)
	}
	switch {
	case a <= angles[0]:
		return lerp(angles[n-1]-period, angles[0], values[n-1], values[0])
	case a >= angles[n-1]:
		return lerp(angles[n-1], angles[0]+period, values[n-1], values[0])
	}
	for i := 0; i < n-1; i++ {
		if a >= angles[i] && a <= angles[i+1] {
			return lerp(angles[i], angles[i+1], values[i], values[i+1])
		}
	}
	return nearest(angles, values, a)
}

// interpolateSaturating linearly interpolates within [angles[0],
// angles[n-1]] and clamps to the edge value outside that range (no
// extrapolation, no wraparound).
func interpolateSaturating(angles, values []float64, a float64) float64 {
	n := len(angles)
	if a <= angles[0] {
		return values[0]
	}
	if a >= angles[n-1] {
		return values[n-1]
	}
	for i := 0; i < n-1; i++ {
		if a >= angles[i] && a <= angles[i+1] {
			lo, hi := angles[i], angles[i+1]
			if hi == lo {
				return values[i]
			}
			frac := (a - lo) / (hi - lo)
			return values[i] + frac*(values[i+1]-values[i])
		}
	}
	return nearest(angles, values, a)
}

func nearest(angles, values []float64, a float64) float64 {
	best, bestD := values[0], math.Abs(angles[0]-a)
	for i := 1; i < len(angles); i++ {
		if d := math.Abs(angles[i] - a); d < bestD {
			best, bestD = values[i], d
		}
	}
	return best
}

//----------------------------------------------------------------------

// StandardPattern is the ITU-R F.1336/3GPP-style analytical sector
// pattern used when no manufacturer-specific diagram is available for
// an antenna (§6 external interface 2): A(phi) = -min(12*(phi/bw)^2, Am).
type StandardPattern struct {
	HBeamwidthDeg  float64 // 3dB beamwidth, horizontal
	HMaxAttenDB    float64 // Am, horizontal
	VBeamwidthDeg  float64 // 3dB beamwidth, vertical
	VMaxAttenDB    float64 // Am, vertical
	ElectricalTilt float64 // additional electrical downtilt folded into the vertical pattern, degrees
}

// StandardSector65_7 is the common 65°/7° LTE sector antenna.
func StandardSector65_7() StandardPattern {
	return StandardPattern{HBeamwidthDeg: 65, HMaxAttenDB: 25, VBeamwidthDeg: 7, VMaxAttenDB: 30}
}

// StandardSector33_5 is a narrow-beam 5G NR sector antenna.
func StandardSector33_5() StandardPattern {
	return StandardPattern{HBeamwidthDeg: 33, HMaxAttenDB: 25, VBeamwidthDeg: 5, VMaxAttenDB: 30}
}

// StandardOmni is a simplified omnidirectional fallback.
func StandardOmni() StandardPattern {
	return StandardPattern{HBeamwidthDeg: 360, HMaxAttenDB: 0, VBeamwidthDeg: 7, VMaxAttenDB: 30}
}

// HAttenuation implements PatternTable.
func (s StandardPattern) HAttenuation(relAzDeg float64) float64 {
	phi := NormalizeAzimuthCentered(relAzDeg)
	return math.Min(12*Sqr(phi/s.HBeamwidthDeg), s.HMaxAttenDB)
}

// VAttenuation implements PatternTable.
func (s StandardPattern) VAttenuation(relElDeg float64) float64 {
	theta := NormalizeAzimuthCentered(relElDeg - s.ElectricalTilt)
	return math.Min(12*Sqr(theta/s.VBeamwidthDeg), s.VMaxAttenDB)
}
