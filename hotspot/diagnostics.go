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

import "sync"

// Severity of a diagnostic (SPEC_FULL §3.4): INFO for expected filtering
// (unassigned OMEN, filtered antenna), WARN for degenerate geometry or
// a missing pattern falling back to the standard model, ERROR for a
// fatal, construction-time configuration problem.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one accumulated warning/info item (§7). Errors that
// are true invariant violations are returned as Go errors instead;
// Diagnostics are for data issues the run must not abort for.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// DiagnosticSink collects diagnostics from concurrent workers. Safe
// for concurrent Add calls (§5 "any logging is routed through a sink
// that tolerates concurrent append").
type DiagnosticSink struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewDiagnosticSink returns an empty, ready-to-use sink.
func NewDiagnosticSink() *DiagnosticSink {
	return &DiagnosticSink{}
}

// Add appends a diagnostic.
func (d *DiagnosticSink) Add(sev Severity, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, Diagnostic{Severity: sev, Message: msg})
}

// Items returns a snapshot copy of the accumulated diagnostics.
func (d *DiagnosticSink) Items() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}
