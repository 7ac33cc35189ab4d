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

import "math"

// Regulatory and physical constants.
const (
	// KSwiss is the Swiss NISV field-formula constant (E = sqrt(K*ERP)/d).
	KSwiss = 49.0
	// KFreeSpace is the international free-space constant (120*pi/(4*pi) = 30).
	KFreeSpace = 30.0

	// DefaultThresholdVPerM is the nominal Swiss NISV installation limit.
	DefaultThresholdVPerM = 5.0
	// DefaultSearchRadiusM bounds the facade sampler around the site base.
	DefaultSearchRadiusM = 200.0
	// DefaultSampleResolutionM is the facade grid step.
	DefaultSampleResolutionM = 1.0
	// DefaultDMinM guards the field formula against a near-field singularity.
	DefaultDMinM = 0.1
	// DefaultPerBlockerDB is the additive LOS attenuation per blocking building.
	DefaultPerBlockerDB = 12.0
	// DefaultBlockerMarginM is the default Config.BlockerMarginM; it is
	// validated but not read by the LOS pass (see rayTriangleEps).
	DefaultBlockerMarginM = 0.5
	// DefaultTiltStepDeg discretises the worst-case tilt sweep.
	DefaultTiltStepDeg = 1
	// DefaultOmenTolerancePct is the validator's pass/fail band.
	DefaultOmenTolerancePct = 10.0
	// DefaultMastOffsetFallbackM is used when no antenna height is known.
	DefaultMastOffsetFallbackM = 3.0

	eps = 1e-9 // lower bound for "effectively zero"

	rectAng = math.Pi / 2 // right angle, radians
	circAng = 2 * math.Pi // full circle, radians
)
