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
	"sort"
)

// Vec3 is a 3D vector (or a projected coordinate (e, n, h); the two
// share a representation because every operation below is common to
// both).
type Vec3 [3]float64

// NewVec3 creates a new 3D vector.
func NewVec3(x, y, z float64) (v Vec3) {
	v[0], v[1], v[2] = x, y, z
	return
}

// String returns a human-readable vector.
func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v[0], v[1], v[2])
}

// Length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Length2D is the length of the vector's (x,y) projection.
func (v Vec3) Length2D() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Norm returns a unit-length copy of the vector. The zero vector is
// returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Length()
	if IsNull(l) {
		return v
	}
	return v.Mult(1 / l)
}

// Add two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub (subtract) two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Mult returns the vector scaled by k.
func (v Vec3) Mult(k float64) Vec3 {
	return Vec3{k * v[0], k * v[1], k * v[2]}
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Equals returns true if two vectors are equal within tolerance.
func (v Vec3) Equals(u Vec3) bool {
	return IsNull(v.Sub(u).Length())
}

//----------------------------------------------------------------------

// BoundingBox of a set of points, progressively widened by Include.
type BoundingBox struct {
	Min, Max Vec3
}

// NewBoundingBox returns an empty bounding box ready for Include calls.
func NewBoundingBox() *BoundingBox {
	limit := math.MaxFloat64
	return &BoundingBox{
		Min: Vec3{limit, limit, limit},
		Max: Vec3{-limit, -limit, -limit},
	}
}

// Include widens the bounding box to cover v.
func (b *BoundingBox) Include(v Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], v[i])
		b.Max[i] = math.Max(b.Max[i], v[i])
	}
}

//----------------------------------------------------------------------

// NormalizeAzimuth folds an angle (degrees) into [0, 360).
func NormalizeAzimuth(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// NormalizeAzimuthCentered folds an angle (degrees) into (-180, 180].
func NormalizeAzimuthCentered(deg float64) float64 {
	a := math.Mod(deg+180, 360)
	if a <= 0 {
		a += 360
	}
	return a - 180
}

// Azimuth returns the compass bearing (degrees, [0,360), 0=north,
// clockwise) of a horizontal displacement (dx=east, dy=north).
func Azimuth(dx, dy float64) float64 {
	return NormalizeAzimuth(math.Atan2(dx, dy) * 180 / math.Pi)
}

// Elevation returns the elevation angle (degrees, [-90,90]) of a target
// seen from a horizontal distance dhXY and a vertical offset dz.
func Elevation(dhXY, dz float64) float64 {
	if dhXY < 1e-3 {
		switch {
		case dz > 0:
			return 90
		case dz < 0:
			return -90
		default:
			return 0
		}
	}
	return math.Atan2(dz, dhXY) * 180 / math.Pi
}

// RelativeAngles returns the 3D distance, the azimuth of "point" as seen
// from "from" relative to azimuthDeg (normalised to (-180,180]), and the
// elevation of "point" as seen from "from" relative to tiltDeg.
func RelativeAngles(from, point Vec3, azimuthDeg, tiltDeg float64) (dist3D, relAz, relEl float64) {
	d := point.Sub(from)
	dhXY := d.Length2D()
	dist3D = d.Length()

	pointAz := Azimuth(d[0], d[1])
	relAz = NormalizeAzimuthCentered(pointAz - azimuthDeg)

	pointEl := Elevation(dhXY, d[2])
	relEl = pointEl - tiltDeg
	return
}

//----------------------------------------------------------------------

// Triangle is three vertices of a facet used for ray intersection and
// fan triangulation.
type Triangle struct {
	A, B, C Vec3
}

// Area returns the (unsigned) area of the triangle.
func (t Triangle) Area() float64 {
	return 0.5 * t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Length()
}

// rayTriangleEps is the Möller-Trumbore determinant tolerance.
const rayTriangleEps = 1e-6

// IntersectRayTriangle performs a Möller-Trumbore ray/triangle test.
// origin+dir is NOT assumed normalised; t is returned in units of
// |dir|, i.e. a hit at distance t*|dir| along dir. ok is false for a
// parallel ray/triangle (determinant below rayTriangleEps) or a miss
// outside the triangle. A crossing behind the origin is reported with
// ok true and a negative t; callers bound t themselves.
func IntersectRayTriangle(origin, dir Vec3, tri Triangle) (t float64, ok bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < rayTriangleEps {
		return 0, false
	}
	invDet := 1 / det
	tvec := origin.Sub(tri.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(qvec) * invDet
	return t, true
}

// IntersectSegmentTriangle tests a finite segment (from "start" to
// "end") against a triangle, requiring 0 < t <= segment length (in
// units of the segment's own, non-normalised direction vector).
func IntersectSegmentTriangle(start, end Vec3, tri Triangle) (hit bool) {
	dir := end.Sub(start)
	t, ok := IntersectRayTriangle(start, dir, tri)
	if !ok {
		return false
	}
	return t > 0 && t <= 1
}

// TriangulateFan fans a planar polygon (N>=3 vertices) from vertex 0
// into triangles (v0,v1,v2), (v0,v2,v3), .... Triangles whose area is
// below rayTriangleEps are skipped (degenerate).
func TriangulateFan(vertices []Vec3) (tris []Triangle) {
	if len(vertices) < 3 {
		return nil
	}
	for i := 1; i < len(vertices)-1; i++ {
		tri := Triangle{vertices[0], vertices[i], vertices[i+1]}
		if tri.Area() < rayTriangleEps {
			continue
		}
		tris = append(tris, tri)
	}
	return
}

//----------------------------------------------------------------------

// Point2D is a 2D point, used for the facade-local (u,v) frame and for
// footprint polygons projected to (e,n).
type Point2D struct {
	X, Y float64
}

// PointInPolygon reports whether p lies inside the polygon described by
// poly (in order, implicitly closed) using a horizontal ray cast. Edge
// membership is implementation-defined but stable for a fixed polygon.
func PointInPolygon(p Point2D, poly []Point2D) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xInt := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xInt {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PlaneFrame builds an orthonormal (u,v) basis for the plane with the
// given normal, following the sampler's convention: u is the
// normalized cross product of the world z-axis and the normal (falling
// back to the world x-axis when that cross product nearly vanishes),
// and v completes the right-handed frame.
func PlaneFrame(normal Vec3) (u, v Vec3) {
	z := Vec3{0, 0, 1}
	u = z.Cross(normal)
	if u.Length() < 0.01 {
		u = Vec3{1, 0, 0}
	} else {
		u = u.Norm()
	}
	v = normal.Cross(u).Norm()
	return
}

// ConvexHull2D computes the convex hull of a point set (Andrew's
// monotone chain), returned counter-clockwise without a repeated
// closing point. Collinear points on a hull edge are dropped. Returns
// the input sorted and deduplicated if fewer than 3 distinct points
// remain.
func ConvexHull2D(points []Point2D) []Point2D {
	pts := dedupSorted(points)
	if len(pts) < 3 {
		return pts
	}
	cross := func(o, a, b Point2D) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	n := len(pts)
	hull := make([]Point2D, 0, 2*n)
	// lower hull
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper hull
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// dedupSorted sorts points lexicographically and removes duplicates.
func dedupSorted(points []Point2D) []Point2D {
	pts := make([]Point2D, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}
