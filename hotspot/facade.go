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

// FacadePoint is one observation target on a building's exterior.
type FacadePoint struct {
	BuildingID string
	Position   Vec3
	Normal     Vec3 // unit length
}

// wallNormalZLimit is the |normal.z| threshold above which a wall
// surface is considered too horizontal (roof-like) to sample.
const wallNormalZLimit = 0.7

// SampleBuilding runs the facade sampler (4.C) over every wall and
// roof surface of a building, then applies the radius filter around
// basePosition. Degenerate surfaces (no valid normal, <3 vertices) are
// silently skipped and reported to diag (§7).
func SampleBuilding(b *Building, resolution, radiusM float64, basePosition Vec3, diag *DiagnosticSink) []FacadePoint {
	var out []FacadePoint
	for _, w := range b.Walls {
		out = append(out, sampleSurface(b.ID, &w, resolution, false, diag)...)
	}
	for _, r := range b.Roofs {
		out = append(out, sampleSurface(b.ID, &r, resolution, true, diag)...)
	}
	return filterByRadius(out, basePosition, radiusM)
}

// sampleSurface grid-samples a single surface (4.C steps 1-6).
// isRoof==true skips the wall verticality classification: roof
// surfaces are sampled unconditionally, even gable walls misclassed as
// roof (§4.C step 2).
func sampleSurface(buildingID string, s *Surface, resolution float64, isRoof bool, diag *DiagnosticSink) []FacadePoint {
	if len(s.Vertices) < 3 {
		if diag != nil {
			diag.Add(SeverityWarn, "surface "+s.ID+" skipped: fewer than 3 vertices")
		}
		return nil
	}
	normal, ok := s.Normal()
	if !ok {
		if diag != nil {
			diag.Add(SeverityWarn, "surface "+s.ID+" skipped: no non-collinear vertex triple")
		}
		return nil
	}
	if !isRoof && absF(normal[2]) > wallNormalZLimit {
		return nil
	}

	u, v := PlaneFrame(normal)
	origin := s.Vertices[0]
	local := make([]Point2D, len(s.Vertices))
	for i, vtx := range s.Vertices {
		d := vtx.Sub(origin)
		local[i] = Point2D{X: d.Dot(u), Y: d.Dot(v)}
	}

	bbox := NewBoundingBox()
	for _, p := range local {
		bbox.Include(Vec3{p.X, p.Y, 0})
	}
	minU, maxU := bbox.Min[0], bbox.Max[0]
	minV, maxV := bbox.Min[1], bbox.Max[1]

	var out []FacadePoint
	for du := minU + resolution/2; du < maxU; du += resolution {
		for dv := minV + resolution/2; dv < maxV; dv += resolution {
			p := Point2D{X: du, Y: dv}
			if !PointInPolygon(p, local) {
				continue
			}
			world := origin.Add(u.Mult(du)).Add(v.Mult(dv))
			out = append(out, FacadePoint{BuildingID: buildingID, Position: world, Normal: normal})
		}
	}
	return out
}

// filterByRadius drops points whose horizontal distance from base
// exceeds radiusM (4.C, final step).
func filterByRadius(points []FacadePoint, base Vec3, radiusM float64) []FacadePoint {
	out := points[:0]
	for _, p := range points {
		d := p.Position.Sub(base)
		if d.Length2D() <= radiusM {
			out = append(out, p)
		}
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
