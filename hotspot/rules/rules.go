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

// Package rules provides an optional, user-scriptable hook for
// adjusting a computed HotspotResult after the LOS pass — e.g. a
// cantonal authority folding in a site-specific exception not modelled
// by the core (a known shared-antenna correction, a locally-measured
// calibration offset). The core never depends on this package; callers
// wire it in explicitly.
package rules

import (
	"errors"
	"fmt"

	lua "github.com/Shopify/go-lua"

	"github.com/ch-ofcom/emf-hotspot/hotspot"
)

// ScriptedAdjuster runs a Lua script against one HotspotResult at a
// time, exposing its fields as globals and letting the script override
// them by reassigning those globals. A single instance is not safe for
// concurrent use — the driver's worker pool should give each goroutine
// its own adjuster (a fresh Lua state is cheap to create).
type ScriptedAdjuster struct {
	path  string
	state *lua.State
}

// NewScriptedAdjuster loads the script at path and runs its top-level
// chunk (which defines adjust()); errors surface at construction, matching the core's
// fail-fast posture for misconfiguration (SPEC_FULL §1.2).
func NewScriptedAdjuster(path string) (*ScriptedAdjuster, error) {
	if path == "" {
		return nil, errors.New("rules: empty script path")
	}
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.DoFile(state, path); err != nil {
		return nil, fmt.Errorf("rules: load %q: %w", path, err)
	}
	return &ScriptedAdjuster{path: path, state: state}, nil
}

// Adjust exposes result's mutable fields as Lua globals, calls the
// script-defined "adjust" function if present, and writes back any
// globals the script changed. A script that does not define "adjust"
// is a no-op, not an error — it may exist purely to register
// diagnostics via a print hook.
func (s *ScriptedAdjuster) Adjust(result *hotspot.HotspotResult) error {
	st := s.state
	st.PushNumber(result.ETotalVPerM)
	st.SetGlobal("e_total_v_per_m")
	st.PushNumber(result.BuildingAttenDB)
	st.SetGlobal("building_atten_db")
	st.PushInteger(result.BlockersCount)
	st.SetGlobal("blockers_count")
	st.PushBoolean(result.ExceedsLimit)
	st.SetGlobal("exceeds_limit")

	st.Global("adjust")
	if st.IsNil(-1) {
		st.Pop(1)
		return nil
	}
	if err := st.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("rules: script %q adjust(): %w", s.path, err)
	}

	st.Global("e_total_v_per_m")
	if v, ok := st.ToNumber(-1); ok {
		result.ETotalVPerM = v
	}
	st.Pop(1)

	st.Global("building_atten_db")
	if v, ok := st.ToNumber(-1); ok {
		result.BuildingAttenDB = v
	}
	st.Pop(1)

	st.Global("blockers_count")
	if v, ok := st.ToInteger(-1); ok {
		result.BlockersCount = v
	}
	st.Pop(1)

	st.Global("exceeds_limit")
	result.ExceedsLimit = st.ToBoolean(-1)
	st.Pop(1)

	return nil
}
