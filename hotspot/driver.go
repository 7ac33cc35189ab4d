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
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// serialFallbackFactor is the point-count-per-worker threshold below
// which the driver runs serially rather than paying fork overhead
// (§4.G "fewer than workers*10 points").
const serialFallbackFactor = 10

// ProgressFunc is invoked at chunk boundaries (§6 external interface
// 6); it may be nil.
type ProgressFunc func(done, total int)

// PatternResolver looks up the pattern table to use for one antenna,
// already folding in the §6 standard-pattern fallback.
type PatternResolver func(*Antenna) PatternTable

// ComputeAll is the parallel driver (4.G): it maps AggregatePoint over
// every sample point, preserving input order in the output, falling
// back to serial execution for small inputs, and aborting outstanding
// work (between points, not mid-point) when ctx is cancelled. A
// cancelled run returns the error from ctx and a nil result slice —
// never a partially-populated one (§5 "must not return
// half-initialised HotspotResults").
func ComputeAll(ctx context.Context, points []FacadePoint, antennas []*Antenna, patterns PatternResolver, buildingAttenDB float64, cfg *Config, progress ProgressFunc) ([]HotspotResult, error) {
	n := len(points)
	results := make([]HotspotResult, n)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	if n < workers*serialFallbackFactor {
		for i, p := range points {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = AggregatePoint(p.Position, p.BuildingID, antennas, patterns, buildingAttenDB, cfg)
			if progress != nil {
				progress(i+1, n)
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))
	var done int32

	for i, p := range points {
		i, p := i, p
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = AggregatePoint(p.Position, p.BuildingID, antennas, patterns, buildingAttenDB, cfg)
			if progress != nil {
				progress(int(atomic.AddInt32(&done, 1)), n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
