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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FitPlaneNormal returns the least-squares best-fit plane normal
// through a noisy, possibly non-planar vertex set (surveyed facades
// rarely satisfy exact coplanarity). It is the PCA normal: the
// eigenvector of the point covariance matrix with the smallest
// eigenvalue. Used as a fallback by Surface.Normal when no fan triple
// (v0,vi,vi+1) of the surface is non-collinear; ok is false for fewer
// than 3 points or a degenerate (rank <2) point set.
func FitPlaneNormal(points []Vec3) (n Vec3, ok bool) {
	if len(points) < 3 {
		return Vec3{}, false
	}
	var cx, cy, cz float64
	for _, p := range points {
		cx += p[0]
		cy += p[1]
		cz += p[2]
	}
	num := float64(len(points))
	cx, cy, cz = cx/num, cy/num, cz/num

	cov := mat.NewSymDense(3, nil)
	var xx, xy, xz, yy, yz, zz float64
	for _, p := range points {
		dx, dy, dz := p[0]-cx, p[1]-cy, p[2]-cz
		xx += dx * dx
		xy += dx * dy
		xz += dx * dz
		yy += dy * dy
		yz += dy * dz
		zz += dz * dz
	}
	cov.SetSym(0, 0, xx)
	cov.SetSym(0, 1, xy)
	cov.SetSym(0, 2, xz)
	cov.SetSym(1, 1, yy)
	cov.SetSym(1, 2, yz)
	cov.SetSym(2, 2, zz)

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Vec3{}, false
	}
	values := eig.Values(nil)
	minIdx, maxVal := 0, values[0]
	for i := 1; i < len(values); i++ {
		if values[i] < values[minIdx] {
			minIdx = i
		}
		if values[i] > maxVal {
			maxVal = values[i]
		}
	}
	// Collinear or coincident points leave at least two vanishing
	// eigenvalues and define no plane.
	vanishing := 0
	for _, ev := range values {
		if ev <= eps*maxVal {
			vanishing++
		}
	}
	if vanishing >= 2 {
		return Vec3{}, false
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	v := Vec3{vectors.At(0, minIdx), vectors.At(1, minIdx), vectors.At(2, minIdx)}
	if IsNull(v.Length()) {
		return Vec3{}, false
	}
	return v.Norm(), true
}

// OmenDeviationStats summarises a batch of 4.H validator results using
// descriptive statistics over the declared OMENs (those with
// Status != OmenNotDeclared).
type OmenDeviationStats struct {
	Count       int
	MeanPct     float64
	StdDevPct   float64
	MaxAbsPct   float64
}

// SummarizeOmenDeviations computes descriptive statistics over a batch
// of OMEN validation results, restricted to those that carried a
// declared expectation.
func SummarizeOmenDeviations(results []OmenValidationResult) OmenDeviationStats {
	var devs []float64
	maxAbs := 0.0
	for _, r := range results {
		if r.Status == OmenNotDeclared {
			continue
		}
		devs = append(devs, r.DeviationPct)
		if d := absF(r.DeviationPct); d > maxAbs {
			maxAbs = d
		}
	}
	if len(devs) == 0 {
		return OmenDeviationStats{}
	}
	mean, std := stat.MeanStdDev(devs, nil)
	return OmenDeviationStats{
		Count:     len(devs),
		MeanPct:   mean,
		StdDevPct: std,
		MaxAbsPct: maxAbs,
	}
}
