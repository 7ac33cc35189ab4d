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

import "testing"

func flatPattern(t *testing.T) *TabulatedPattern {
	t.Helper()
	p, err := NewTabulatedPattern(
		[]float64{0, 90, 180, 270}, []float64{0, 0, 0, 0},
		[]float64{0, 90, 180, 270}, []float64{0, 0, 0, 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTabulatedPatternFlatIsZeroEverywhere(t *testing.T) {
	p := flatPattern(t)
	for _, az := range []float64{0, 45, 90, 359, 720} {
		if got := p.HAttenuation(az); !IsNull(got) {
			t.Errorf("HAttenuation(%g) = %g, want 0", az, got)
		}
	}
}

func TestTabulatedPatternHCyclicity(t *testing.T) {
	p, err := NewTabulatedPattern(
		[]float64{0, 90, 180, 270}, []float64{0, -6, -12, -6},
		[]float64{0, 90, 180, 270}, []float64{0, 0, 0, 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, az := range []float64{10, 123.4, 359.9} {
		a := p.HAttenuation(az)
		b := p.HAttenuation(az + 360)
		if !IsNull(a - b) {
			t.Errorf("h_atten(%g)=%g != h_atten(%g+360)=%g", az, a, az, b)
		}
	}
}

func TestTabulatedPatternVSaturates(t *testing.T) {
	p, err := NewTabulatedPattern(
		[]float64{0, 90}, []float64{0, 0},
		[]float64{-10, 10}, []float64{-30, 0},
	)
	if err != nil {
		t.Fatal(err)
	}
	// outside [-10,10] (the lookup angle is normalised into [0,360))
	// must clamp to the nearest edge value, not wrap or extrapolate.
	edge := p.VAttenuation(10)
	mid := p.VAttenuation(180)
	if !IsNull(edge - mid) {
		t.Errorf("expected saturation to the edge value, got edge=%g mid=%g", edge, mid)
	}
}

func TestCombinedAttenuationSumsHAndV(t *testing.T) {
	p, err := NewTabulatedPattern(
		[]float64{0, 90, 180, 270}, []float64{0, -6, -12, -6},
		[]float64{0, 90, 180, 270}, []float64{0, -3, -9, -3},
	)
	if err != nil {
		t.Fatal(err)
	}
	az, el := 45.0, 45.0
	got := CombinedAttenuation(p, az, el)
	want := p.HAttenuation(az) + p.VAttenuation(el)
	if !IsNull(got - want) {
		t.Errorf("CombinedAttenuation = %g, want H+V = %g", got, want)
	}
}

func TestCombinedAttenuationCyclic(t *testing.T) {
	p, err := NewTabulatedPattern(
		[]float64{0, 90, 180, 270}, []float64{0, -6, -12, -6},
		[]float64{0, 90, 180, 270}, []float64{0, -3, -9, -3},
	)
	if err != nil {
		t.Fatal(err)
	}
	a := CombinedAttenuation(p, 123.4, 10)
	b := CombinedAttenuation(p, 123.4+360, 10+360)
	if !IsNull(a - b) {
		t.Errorf("combined_attenuation(123.4,10)=%g != combined_attenuation(483.4,370)=%g", a, b)
	}
}

func TestStandardPatternAzimuthPeakIsZero(t *testing.T) {
	s := StandardSector65_7()
	if got := s.HAttenuation(0); !IsNull(got) {
		t.Errorf("boresight attenuation = %g, want 0", got)
	}
	if got := s.HAttenuation(65); got <= 0 {
		t.Errorf("off-boresight attenuation should be positive, got %g", got)
	}
	if got := s.HAttenuation(180); !IsNull(got - s.HMaxAttenDB) {
		t.Errorf("back-lobe attenuation = %g, want clamp at %g", got, s.HMaxAttenDB)
	}
}
