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
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds every tunable from §6. Values are resolved once at
// construction and treated as shared-immutable afterwards — no worker
// mutates a Config.
type Config struct {
	ThresholdVPerM       float64 `json:"threshold_v_per_m"`
	SearchRadiusM        float64 `json:"search_radius_m"`
	SampleResolutionM    float64 `json:"sample_resolution_m"`
	KConstant            float64 `json:"k_constant"`
	DMinM                float64 `json:"d_min_m"`
	PerBlockerDB         float64 `json:"per_blocker_db"`
	// BlockerMarginM is validated but not read by the LOS pass: the
	// original polygon-intersection margin only applied to the 2D path,
	// never the 3D one this engine uses.
	BlockerMarginM       float64 `json:"blocker_margin_m"`
	TiltStepDeg          int     `json:"tilt_step_deg"`
	Workers              int     `json:"workers"`
	LOSOnlyForExceeding  bool    `json:"los_only_for_exceeding"`
	OmenTolerancePct     float64 `json:"omen_tolerance_pct"`
}

// DefaultConfig returns the §6 defaults (K=49, Swiss NISV practice).
func DefaultConfig() *Config {
	return &Config{
		ThresholdVPerM:      DefaultThresholdVPerM,
		SearchRadiusM:       DefaultSearchRadiusM,
		SampleResolutionM:   DefaultSampleResolutionM,
		KConstant:           KSwiss,
		DMinM:               DefaultDMinM,
		PerBlockerDB:        DefaultPerBlockerDB,
		BlockerMarginM:      DefaultBlockerMarginM,
		TiltStepDeg:         DefaultTiltStepDeg,
		Workers:             runtime.GOMAXPROCS(0),
		LOSOnlyForExceeding: true,
		OmenTolerancePct:    DefaultOmenTolerancePct,
	}
}

// LoadConfig overlays a JSON file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for fatal, construction-time misconfiguration (§7
// "Configuration invalid"). Callers must check this before using a
// hand-built Config; LoadConfig calls it automatically.
func (c *Config) Validate() error {
	switch {
	case c.ThresholdVPerM < 0:
		return fmt.Errorf("threshold_v_per_m must be >= 0, got %g", c.ThresholdVPerM)
	case c.SearchRadiusM <= 0:
		return fmt.Errorf("search_radius_m must be > 0, got %g", c.SearchRadiusM)
	case c.SampleResolutionM <= 0:
		return fmt.Errorf("sample_resolution_m must be > 0, got %g", c.SampleResolutionM)
	case c.KConstant <= 0:
		return fmt.Errorf("k_constant must be > 0, got %g", c.KConstant)
	case c.DMinM <= 0:
		return fmt.Errorf("d_min_m must be > 0, got %g", c.DMinM)
	case c.PerBlockerDB < 0:
		return fmt.Errorf("per_blocker_db must be >= 0, got %g", c.PerBlockerDB)
	case c.BlockerMarginM < 0:
		return fmt.Errorf("blocker_margin_m must be >= 0, got %g", c.BlockerMarginM)
	case c.TiltStepDeg < 1:
		return fmt.Errorf("tilt_step_deg must be >= 1, got %d", c.TiltStepDeg)
	case c.Workers < 0:
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	case c.OmenTolerancePct < 0:
		return fmt.Errorf("omen_tolerance_pct must be >= 0, got %g", c.OmenTolerancePct)
	}
	return nil
}

// FieldKernelParams extracts the subset of Config the field kernel
// (4.D) needs.
func (c *Config) FieldKernelParams() FieldKernelParams {
	return FieldKernelParams{K: c.KConstant, DMinM: c.DMinM, TiltStepDeg: c.TiltStepDeg}
}
