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

// Command hotspot computes NISV-style compliance hotspots for a single
// base-station site described by a flat JSON document.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/ch-ofcom/emf-hotspot/hotspot"
	"github.com/ch-ofcom/emf-hotspot/hotspot/sink"
)

// shared variables with the subcommand handlers.
var (
	cfg     *hotspot.Config
	dbName  string
	siteIn  string
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		log.Fatal("usage: hotspot [-db path] [-in path] [-config path] <compute|validate|stats>")
	}

	var configPath string
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&dbName, "db", "./out/hotspot.db", "result database")
	fs.StringVar(&siteIn, "in", "./site.json", "site description (JSON)")
	fs.StringVar(&configPath, "config", "", "optional config overlay (JSON)")
	if err := fs.Parse(args); err != nil {
		log.Fatal(err)
	}
	args = fs.Args()
	if len(args) == 0 {
		log.Fatal("missing subcommand: compute, validate or stats")
	}

	var err error
	if configPath != "" {
		cfg, err = hotspot.LoadConfig(configPath)
	} else {
		cfg = hotspot.DefaultConfig()
		err = cfg.Validate()
	}
	if err != nil {
		log.Fatal("config: " + err.Error())
	}

	switch args[0] {
	case "compute":
		runCompute(args[1:])
	case "validate":
		runValidate(args[1:])
	case "stats":
		runStats(args[1:])
	default:
		log.Fatalf("unknown subcommand %q", args[0])
	}
}

// resolvePattern implements the §6 interface-2 fallback: a tabulated
// pattern keyed by PatternKey would come from a real PatternLoader;
// this tool has none wired in, so every antenna falls back to a
// standard analytical sector (or omni) pattern by key convention.
func resolvePattern(a *hotspot.Antenna) hotspot.PatternTable {
	switch a.PatternKey {
	case "omni":
		return hotspot.StandardOmni()
	case "sector_33_5", "nr_narrow":
		return hotspot.StandardSector33_5()
	default:
		return hotspot.StandardSector65_7()
	}
}

func runCompute(args []string) {
	loader, err := loadJSON(siteIn)
	if err != nil {
		log.Fatal(err)
	}
	site, err := loader.LoadSite()
	if err != nil {
		log.Fatal("load site: " + err.Error())
	}
	buildings, err := loader.LoadBuildings()
	if err != nil {
		log.Fatal("load buildings: " + err.Error())
	}

	active, diag := site.ActiveAntennas()
	for _, d := range diag {
		log.Printf("[%s] %s", d.Severity, d.Message)
	}
	if len(active) == 0 {
		log.Fatal("no active antennas on site")
	}

	diagSink := hotspot.NewDiagnosticSink()
	var points []hotspot.FacadePoint
	for _, b := range buildings {
		points = append(points, hotspot.SampleBuilding(b, cfg.SampleResolutionM, cfg.SearchRadiusM, site.BasePosition, diagSink)...)
	}
	for _, d := range diagSink.Items() {
		log.Printf("[%s] %s", d.Severity, d.Message)
	}
	log.Printf("sampled %d facade points across %d buildings", len(points), len(buildings))

	startedAt := time.Now().Unix()
	results, err := hotspot.ComputeAll(context.Background(), points, active, resolvePattern, 0, cfg, nil)
	if err != nil {
		log.Fatal("compute: " + err.Error())
	}
	finishedAt := time.Now().Unix()

	exceeding := 0
	for i := range results {
		if !results[i].ExceedsLimit {
			continue
		}
		buildingID := results[i].BuildingID
		mastOffset := hotspot.MastOffset(active, site.BasePosition[2], 0)
		hotspot.AnalyzeLOS(&results[i], site.BasePosition, mastOffset, buildingID, buildings, cfg.PerBlockerDB, cfg.ThresholdVPerM)
		if results[i].ExceedsLimit {
			exceeding++
		}
	}
	log.Printf("%d of %d points exceed %.1f V/m after LOS", exceeding, len(results), cfg.ThresholdVPerM)

	s, err := sink.Open(dbName)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	run := hotspot.RunMetadata{
		StartedAtUnix:  startedAt,
		FinishedAtUnix: finishedAt,
		WorkerCount:    cfg.Workers,
		KConstant:      cfg.KConstant,
		VersionTag:     "dev",
	}
	if err := s.WriteResults(run, results); err != nil {
		log.Fatal("write results: " + err.Error())
	}
}

func runValidate(args []string) {
	loader, err := loadJSON(siteIn)
	if err != nil {
		log.Fatal(err)
	}
	site, err := loader.LoadSite()
	if err != nil {
		log.Fatal("load site: " + err.Error())
	}
	active, _ := site.ActiveAntennas()

	var results []hotspot.OmenValidationResult
	for _, omen := range site.OmenPoints {
		r := hotspot.ValidateOmen(omen, active, resolvePattern, cfg)
		results = append(results, r)
		log.Printf("OMEN %-8s computed=%.3f V/m expected=%.3f V/m deviation=%.2f%% status=%s",
			r.Nr, r.ComputedVPerM, r.ExpectedVPerM, r.DeviationPct, r.Status)
	}
	summary := hotspot.SummarizeOmenDeviations(results)
	log.Printf("declared OMENs: %d  mean deviation: %.2f%%  max |deviation|: %.2f%%",
		summary.Count, summary.MeanPct, summary.MaxAbsPct)
}

func runStats(args []string) {
	s, err := sink.Open(dbName)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	st, err := s.QueryStats()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Result database statistics:")
	log.Printf("        Number of runs: %10d", st.NumRuns)
	log.Printf("     Number of results: %10d", st.NumResults)
	log.Printf("  Points over threshold: %9d", st.NumExceeded)
}
