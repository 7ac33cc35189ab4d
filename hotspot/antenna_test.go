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

// flatPatternTable is a 0-dB-everywhere pattern, used to isolate the
// free-space formula from pattern shape.
type flatPatternTable struct{}

func (flatPatternTable) HAttenuation(float64) float64 { return 0 }
func (flatPatternTable) VAttenuation(float64) float64 { return 0 }

func TestEvaluateFieldIsotropicFreeSpace(t *testing.T) {
	a := &Antenna{ID: "a1", Position: Vec3{0, 0, 0}, AzimuthDeg: 0, ERPWatts: 100}
	point := Vec3{100, 0, 0}
	params := FieldKernelParams{K: KSwiss, DMinM: DefaultDMinM, TiltStepDeg: 1}

	c := EvaluateField(point, a, flatPatternTable{}, 0, params)
	want := math.Sqrt(49 * 100) / 100
	if math.Abs(c.EVPerM-want) > 1e-9 {
		t.Errorf("E = %g, want %g", c.EVPerM, want)
	}
}

func TestEvaluateFieldTiltSweepPicksMinimalAttenuation(t *testing.T) {
	a := &Antenna{
		ID: "a1", Position: Vec3{0, 0, 30}, AzimuthDeg: 0,
		TiltFrom: -10, TiltTo: -2, ERPWatts: 50,
	}
	pattern, err := NewTabulatedPattern(
		[]float64{0, 90, 180, 270}, []float64{0, 0, 0, 0},
		[]float64{0, 10, 180, 350}, []float64{0, -30, -30, -30},
	)
	if err != nil {
		t.Fatal(err)
	}
	params := FieldKernelParams{K: KSwiss, DMinM: DefaultDMinM, TiltStepDeg: 1}
	point := Vec3{0, 50, 0}

	c := EvaluateField(point, a, pattern, 0, params)

	steps := tiltSteps(a, 1)
	for _, tilt := range steps {
		_, _, relEl := RelativeAngles(a.Position, point, a.AzimuthDeg, tilt)
		vAtten := pattern.VAttenuation(relEl)
		if vAtten < c.VAttenDB-1e-9 {
			t.Errorf("tilt %g gives v_atten %g, lower than reported critical %g", tilt, vAtten, c.VAttenDB)
		}
	}
	if c.CriticalTiltDeg < a.TiltFrom || c.CriticalTiltDeg > a.TiltTo {
		t.Errorf("critical tilt %g outside sweep [%g,%g]", c.CriticalTiltDeg, a.TiltFrom, a.TiltTo)
	}
}

func TestAntennaExpandWithoutSubArraysReturnsSelf(t *testing.T) {
	a := &Antenna{ID: "a1", ERPWatts: 10}
	units := a.Expand()
	if len(units) != 1 || units[0] != a {
		t.Errorf("expected antenna without sub-arrays to expand to itself")
	}
}

func TestAntennaExpandWithSubArrays(t *testing.T) {
	a := &Antenna{
		ID: "a1", Position: Vec3{1, 2, 3}, AzimuthDeg: 90,
		SubArrays: []SubArray{
			{ID: "lte", ERPWatts: 20, TiltNominal: -2},
			{ID: "nr", ERPWatts: 30, TiltNominal: -4},
		},
	}
	units := a.Expand()
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	for _, u := range units {
		if u.Position != a.Position || u.AzimuthDeg != a.AzimuthDeg {
			t.Errorf("sub-array unit %s did not inherit mast position/azimuth", u.ID)
		}
	}
	if units[0].ERPWatts != 20 || units[1].ERPWatts != 30 {
		t.Error("sub-array units did not carry their own ERP")
	}
}

func TestAntennaActiveFiltersNonPositiveERP(t *testing.T) {
	if (&Antenna{ERPWatts: 0}).Active() {
		t.Error("zero ERP must not be active")
	}
	if (&Antenna{ERPWatts: -5}).Active() {
		t.Error("negative ERP must not be active")
	}
	if !(&Antenna{ERPWatts: 1}).Active() {
		t.Error("positive ERP must be active")
	}
}

func TestAntennaValidateTiltOrder(t *testing.T) {
	a := &Antenna{TiltFrom: 5, TiltTo: 1, AzimuthDeg: 0}
	if err := a.Validate(); err == nil {
		t.Error("expected error for tilt_from > tilt_to")
	}
}
