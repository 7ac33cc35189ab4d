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

// Package sink provides a SQLite-backed hotspot.ResultSink: a concrete
// implementation of the §6 external output interface, persisting
// computed results and run provenance for later querying by
// third-party tools (the core itself defines no wire or file format).
package sink

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ch-ofcom/emf-hotspot/hotspot"
)

// schema creates the run and result tables on first use; re-running it
// against an already-initialised database is a no-op.
const schema = `
create table if not exists run (
    id           integer primary key,
    started_at   integer not null,
    finished_at  integer not null,
    workers      integer not null,
    k_constant   float not null,
    version_tag  varchar(63) default ''
);
create table if not exists result (
    id               integer primary key,
    run_id           integer not null references run(id),
    building_id      varchar(63) not null,
    e                float not null,
    n                float not null,
    h                float not null,
    e_total_v_per_m  float not null,
    exceeds_limit    integer not null,
    los_status       varchar(7) not null,
    blockers_count   integer not null,
    building_atten_db float not null,
    e_field_free     float not null
);
create index if not exists idx_result_run on result(run_id);
create index if not exists idx_result_building on result(building_id);
`

// SQLiteSink is a hotspot.ResultSink backed by a single SQLite file.
type SQLiteSink struct {
	db *sql.DB
}

// Open creates or reuses a SQLite database at path and ensures its
// schema exists.
func Open(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sink: init schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	if s.db == nil {
		return errors.New("sink: not open")
	}
	return s.db.Close()
}

// WriteResults implements hotspot.ResultSink: it inserts one run row
// and one result row per HotspotResult, inside a single transaction so
// a failure leaves no partial run behind.
func (s *SQLiteSink) WriteResults(run hotspot.RunMetadata, results []hotspot.HotspotResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sink: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"insert into run(started_at,finished_at,workers,k_constant,version_tag) values(?,?,?,?,?)",
		run.StartedAtUnix, run.FinishedAtUnix, run.WorkerCount, run.KConstant, run.VersionTag,
	)
	if err != nil {
		return fmt.Errorf("sink: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sink: run id: %w", err)
	}

	stmt, err := tx.Prepare(
		"insert into result(run_id,building_id,e,n,h,e_total_v_per_m,exceeds_limit," +
			"los_status,blockers_count,building_atten_db,e_field_free) values(?,?,?,?,?,?,?,?,?,?,?)",
	)
	if err != nil {
		return fmt.Errorf("sink: prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		exceeds := 0
		if r.ExceedsLimit {
			exceeds = 1
		}
		if _, err := stmt.Exec(
			runID, r.BuildingID, r.Position[0], r.Position[1], r.Position[2],
			r.ETotalVPerM, exceeds, r.LOSStatus.String(), r.BlockersCount,
			r.BuildingAttenDB, r.EFieldFreeVPerM,
		); err != nil {
			return fmt.Errorf("sink: insert result: %w", err)
		}
	}
	return tx.Commit()
}

// Stats returns simple aggregate counters, the sink-side analogue of
// the teacher's database statistics query.
type Stats struct {
	NumRuns     int64
	NumResults  int64
	NumExceeded int64
}

// QueryStats reports aggregate counters across every run recorded in
// the sink.
func (s *SQLiteSink) QueryStats() (Stats, error) {
	var st Stats
	qInt := func(q string) (v int64, err error) {
		row := s.db.QueryRow("select " + q)
		err = row.Scan(&v)
		return
	}
	var err error
	if st.NumRuns, err = qInt("count(*) from run"); err != nil {
		return st, fmt.Errorf("sink: stats: %w", err)
	}
	if st.NumResults, err = qInt("count(*) from result"); err != nil {
		return st, fmt.Errorf("sink: stats: %w", err)
	}
	if st.NumExceeded, err = qInt("count(*) from result where exceeds_limit=1"); err != nil {
		return st, fmt.Errorf("sink: stats: %w", err)
	}
	return st, nil
}
