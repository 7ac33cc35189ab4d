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

// OmenPoint is a designated sensitive observation point attached to a
// site declaration, with an optional expected field value used only
// by the validator (4.H).
type OmenPoint struct {
	Nr                  string
	Position            Vec3
	BuildingAttenDB     float64
	EFieldExpectedVPerM *float64 // nil if not declared
}

// Site is a base-station site: a reference position, its antennas and
// its OMEN points.
type Site struct {
	Name         string
	BasePosition Vec3
	Antennas     []*Antenna
	OmenPoints   []OmenPoint
}

// ActiveAntennas returns the antennas with ERP>0, expanded through any
// sub-arrays (§3 Antenna.sub_arrays, SPEC_FULL §3.2). Antennas
// filtered out are reported via the returned diagnostics so the
// caller can surface them without treating the filter as an error
// (§7 "Antenna with non-positive ERP").
func (s *Site) ActiveAntennas() (active []*Antenna, diag []Diagnostic) {
	for _, a := range s.Antennas {
		for _, unit := range a.Expand() {
			if !unit.Active() {
				diag = append(diag, Diagnostic{
					Severity: SeverityInfo,
					Message:  "antenna " + unit.ID + " filtered out: non-positive ERP",
				})
				continue
			}
			active = append(active, unit)
		}
	}
	return
}

//----------------------------------------------------------------------
// External interfaces (§6). The core depends on these by contract; it
// does not implement CityGML/ESRI-GDB/XLS parsing, CRS conversion, or
// wire/file export formats. Concrete implementations living outside
// this package (or a thin JSON-backed one in cmd/hotspot for the
// worked examples) satisfy these interfaces.

// SiteLoader delivers a Site with antennas and OMEN points, in a
// single projected CRS.
type SiteLoader interface {
	LoadSite() (*Site, error)
}

// PatternLoader delivers a pattern table for an (antenna type,
// frequency band) pair. A miss is not an error: callers fall back to
// a StandardPattern (§6 interface 2).
type PatternLoader interface {
	LoadPattern(antennaType, freqBandKey string) (PatternTable, bool, error)
}

// BuildingLoader delivers the buildings within (at least) the search
// radius of a site; surfaces need not be watertight.
type BuildingLoader interface {
	LoadBuildings() ([]*Building, error)
}

// ResultSink accepts the computed HotspotResults and ancillary
// analytics for downstream export; the core defines no wire or file
// format. See hotspot/sink for a concrete SQLite-backed sink.
type ResultSink interface {
	WriteResults(run RunMetadata, results []HotspotResult) error
}

// AddressResolver maps an opaque EGID to a human-readable string. It
// is purely decorative for the core (§6 interface 5).
type AddressResolver interface {
	ResolveAddress(egid string) (string, error)
}

// RunMetadata records provenance for one computed run (SPEC_FULL §3.6).
type RunMetadata struct {
	StartedAtUnix  int64
	FinishedAtUnix int64
	WorkerCount    int
	KConstant      float64
	VersionTag     string
}
