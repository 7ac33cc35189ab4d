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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ch-ofcom/emf-hotspot/hotspot"
)

// jsonSite is the on-disk shape accepted by -in. It is intentionally
// flat JSON, not CityGML/ESRI-GDB/XLS (§6 interfaces 1/3): those
// formats are out of scope for the core and left to a real GIS
// pipeline upstream of this tool.
type jsonSite struct {
	Name         string          `json:"name"`
	BasePosition [3]float64      `json:"base_position"`
	Antennas     []jsonAntenna   `json:"antennas"`
	OmenPoints   []jsonOmen      `json:"omen_points"`
	Buildings    []jsonBuilding  `json:"buildings"`
}

type jsonAntenna struct {
	ID          string           `json:"id"`
	MastID      string           `json:"mast_id"`
	Position    [3]float64       `json:"position"`
	AzimuthDeg  float64          `json:"azimuth_deg"`
	TiltNominal float64          `json:"tilt_nominal"`
	TiltFrom    float64          `json:"tilt_from"`
	TiltTo      float64          `json:"tilt_to"`
	ERPWatts    float64          `json:"erp_watts"`
	FreqBandKey string           `json:"freq_band_key"`
	PatternKey  string           `json:"pattern_key"`
	IsAdaptive  bool             `json:"is_adaptive"`
	SubArrays   []jsonSubArray   `json:"sub_arrays"`
}

type jsonSubArray struct {
	ID          string  `json:"id"`
	ERPWatts    float64 `json:"erp_watts"`
	FreqBandKey string  `json:"freq_band_key"`
	PatternKey  string  `json:"pattern_key"`
	TiltNominal float64 `json:"tilt_nominal"`
	TiltFrom    float64 `json:"tilt_from"`
	TiltTo      float64 `json:"tilt_to"`
}

type jsonOmen struct {
	Nr                  string     `json:"nr"`
	Position            [3]float64 `json:"position"`
	BuildingAttenDB     float64    `json:"building_attenuation_db"`
	EFieldExpectedVPerM *float64   `json:"e_field_expected_v_per_m"`
}

type jsonBuilding struct {
	ID    string         `json:"id"`
	EGID  string         `json:"egid"`
	Walls []jsonSurface  `json:"walls"`
	Roofs []jsonSurface  `json:"roofs"`
}

type jsonSurface struct {
	ID       string       `json:"id"`
	Vertices [][3]float64 `json:"vertices"`
}

// jsonLoader implements hotspot.SiteLoader and hotspot.BuildingLoader
// from a single flat JSON document — enough to run the worked examples
// without depending on a real cadastral data source.
type jsonLoader struct {
	doc jsonSite
}

func loadJSON(path string) (*jsonLoader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site file %q: %w", path, err)
	}
	var doc jsonSite
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse site file %q: %w", path, err)
	}
	return &jsonLoader{doc: doc}, nil
}

func toVec3(a [3]float64) hotspot.Vec3 { return hotspot.Vec3{a[0], a[1], a[2]} }

func (l *jsonLoader) LoadSite() (*hotspot.Site, error) {
	site := &hotspot.Site{
		Name:         l.doc.Name,
		BasePosition: toVec3(l.doc.BasePosition),
	}
	for _, ja := range l.doc.Antennas {
		a := &hotspot.Antenna{
			ID:          ja.ID,
			MastID:      ja.MastID,
			Position:    toVec3(ja.Position),
			AzimuthDeg:  ja.AzimuthDeg,
			TiltNominal: ja.TiltNominal,
			TiltFrom:    ja.TiltFrom,
			TiltTo:      ja.TiltTo,
			ERPWatts:    ja.ERPWatts,
			FreqBandKey: ja.FreqBandKey,
			PatternKey:  ja.PatternKey,
			IsAdaptive:  ja.IsAdaptive,
		}
		for _, js := range ja.SubArrays {
			a.SubArrays = append(a.SubArrays, hotspot.SubArray{
				ID:          js.ID,
				ERPWatts:    js.ERPWatts,
				FreqBandKey: js.FreqBandKey,
				PatternKey:  js.PatternKey,
				TiltNominal: js.TiltNominal,
				TiltFrom:    js.TiltFrom,
				TiltTo:      js.TiltTo,
			})
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("site %q: %w", l.doc.Name, err)
		}
		site.Antennas = append(site.Antennas, a)
	}
	for _, jo := range l.doc.OmenPoints {
		site.OmenPoints = append(site.OmenPoints, hotspot.OmenPoint{
			Nr:                  jo.Nr,
			Position:            toVec3(jo.Position),
			BuildingAttenDB:     jo.BuildingAttenDB,
			EFieldExpectedVPerM: jo.EFieldExpectedVPerM,
		})
	}
	return site, nil
}

func toSurface(id string, js jsonSurface) hotspot.Surface {
	s := hotspot.Surface{ID: js.ID}
	for _, v := range js.Vertices {
		s.Vertices = append(s.Vertices, toVec3(v))
	}
	return s
}

func (l *jsonLoader) LoadBuildings() ([]*hotspot.Building, error) {
	var out []*hotspot.Building
	for _, jb := range l.doc.Buildings {
		b := &hotspot.Building{ID: jb.ID, EGID: jb.EGID}
		for _, jw := range jb.Walls {
			b.Walls = append(b.Walls, toSurface(jb.ID, jw))
		}
		for _, jr := range jb.Roofs {
			b.Roofs = append(b.Roofs, toSurface(jb.ID, jr))
		}
		out = append(out, b)
	}
	return out, nil
}
