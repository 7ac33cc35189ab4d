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

// Surface is a (approximately) planar polygon: a wall or a roof.
// Vertices define the polygon in order; Faces, when present, are
// explicit triangle indices (otherwise a fan from vertex 0 is used on
// demand). OutwardNormal may be nil, in which case it is computed from
// the first three non-collinear vertices.
type Surface struct {
	ID            string
	Vertices      []Vec3
	OutwardNormal *Vec3
	Faces         [][3]int
}

// Normal returns the surface's outward normal, using the stored value
// if present, otherwise computing it from the first non-collinear
// vertex triple, then from a least-squares fit over all vertices
// (zero vector, false if neither yields a plane — a degenerate surface).
func (s *Surface) Normal() (Vec3, bool) {
	if s.OutwardNormal != nil {
		return *s.OutwardNormal, true
	}
	if n, ok := planeNormal(s.Vertices); ok {
		return n, true
	}
	// Every fan triple (v0,vi,vi+1) was collinear (e.g. vertex 0 is
	// repeated in the ring); fall back to a least-squares fit over
	// every vertex.
	return FitPlaneNormal(s.Vertices)
}

// planeNormal finds the first non-collinear vertex triple (v0,vi,vi+1)
// and returns the normalized cross product of its edges.
func planeNormal(vertices []Vec3) (Vec3, bool) {
	if len(vertices) < 3 {
		return Vec3{}, false
	}
	v0 := vertices[0]
	for i := 1; i < len(vertices)-1; i++ {
		e1 := vertices[i].Sub(v0)
		e2 := vertices[i+1].Sub(v0)
		n := e1.Cross(e2)
		if !IsNull(n.Length()) {
			return n.Norm(), true
		}
	}
	return Vec3{}, false
}

// Triangles triangulates the surface, preferring explicit Faces when
// present, otherwise fanning from vertex 0. Degenerate triangles are
// silently skipped (§7 "degenerate surface").
func (s *Surface) Triangles() []Triangle {
	if len(s.Faces) > 0 {
		out := make([]Triangle, 0, len(s.Faces))
		for _, f := range s.Faces {
			if f[0] < 0 || f[1] < 0 || f[2] < 0 ||
				f[0] >= len(s.Vertices) || f[1] >= len(s.Vertices) || f[2] >= len(s.Vertices) {
				continue
			}
			tri := Triangle{s.Vertices[f[0]], s.Vertices[f[1]], s.Vertices[f[2]]}
			if tri.Area() < rayTriangleEps {
				continue
			}
			out = append(out, tri)
		}
		return out
	}
	return TriangulateFan(s.Vertices)
}

//----------------------------------------------------------------------

// Building is a set of topologically independent wall and roof
// surfaces; watertightness is not required.
type Building struct {
	ID    string
	EGID  string // opaque external identifier, may be empty
	Walls []Surface
	Roofs []Surface
}

// AllSurfaces returns walls followed by roofs, the iteration order
// used throughout facade sampling and LOS candidate selection.
func (b *Building) AllSurfaces() []Surface {
	out := make([]Surface, 0, len(b.Walls)+len(b.Roofs))
	out = append(out, b.Walls...)
	out = append(out, b.Roofs...)
	return out
}

// Footprint2D collects the (e,n) projection of every wall+roof vertex,
// used by the OMEN-to-building assignment (4.I) as the raw input to
// ConvexHull2D.
func (b *Building) Footprint2D() []Point2D {
	var pts []Point2D
	for _, s := range b.AllSurfaces() {
		for _, v := range s.Vertices {
			pts = append(pts, Point2D{X: v[0], Y: v[1]})
		}
	}
	return pts
}

// HeightRange returns the min/max height (h) over every wall+roof
// vertex, used by the OMEN-to-building height gate (4.I step 2).
func (b *Building) HeightRange() (minH, maxH float64, ok bool) {
	first := true
	for _, s := range b.AllSurfaces() {
		for _, v := range s.Vertices {
			if first {
				minH, maxH = v[2], v[2]
				first = false
				continue
			}
			if v[2] < minH {
				minH = v[2]
			}
			if v[2] > maxH {
				maxH = v[2]
			}
		}
	}
	return minH, maxH, !first
}
