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

package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ch-ofcom/emf-hotspot/hotspot"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rule.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScriptedAdjusterNoAdjustFunctionIsNoOp(t *testing.T) {
	path := writeScript(t, "x = 1\n")
	adj, err := NewScriptedAdjuster(path)
	if err != nil {
		t.Fatal(err)
	}
	result := &hotspot.HotspotResult{ETotalVPerM: 3.5, ExceedsLimit: false}
	if err := adj.Adjust(result); err != nil {
		t.Fatal(err)
	}
	if result.ETotalVPerM != 3.5 {
		t.Errorf("E changed with no adjust() defined: %g", result.ETotalVPerM)
	}
}

func TestScriptedAdjusterOverridesExceedsLimit(t *testing.T) {
	path := writeScript(t, `
function adjust()
  exceeds_limit = true
end
`)
	adj, err := NewScriptedAdjuster(path)
	if err != nil {
		t.Fatal(err)
	}
	result := &hotspot.HotspotResult{ETotalVPerM: 1, ExceedsLimit: false}
	if err := adj.Adjust(result); err != nil {
		t.Fatal(err)
	}
	if !result.ExceedsLimit {
		t.Error("expected exceeds_limit to be overridden to true")
	}
}

func TestNewScriptedAdjusterRejectsEmptyPath(t *testing.T) {
	if _, err := NewScriptedAdjuster(""); err == nil {
		t.Error("expected an error for an empty script path")
	}
}
