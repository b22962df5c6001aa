// predict runs gameday_predictions for one (ruleset, season, week) and
// prints the result as JSON, bypassing the HTTP surface entirely.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/gridiron-projections/engine/internal/config"
	"github.com/gridiron-projections/engine/internal/cutoff"
	"github.com/gridiron-projections/engine/internal/features"
	"github.com/gridiron-projections/engine/internal/injury"
	"github.com/gridiron-projections/engine/internal/lineup"
	"github.com/gridiron-projections/engine/internal/matchup"
	"github.com/gridiron-projections/engine/internal/modelstore"
	"github.com/gridiron-projections/engine/internal/nflverse"
	"github.com/gridiron-projections/engine/internal/orchestrator"
	"github.com/gridiron-projections/engine/internal/scoring"
	"github.com/gridiron-projections/engine/internal/store"
)

var (
	ruleset        = flag.String("ruleset", "", "scoring ruleset name (required)")
	season         = flag.Int("season", 0, "season (required)")
	week           = flag.Int("week", 0, "week (required)")
	withInjuries   = flag.Bool("injuries", true, "apply the current injury report")
	salaryCapped   = flag.Bool("salary", true, "use the salary-aware composer instead of the basic one")
)

func main() {
	flag.Parse()
	if *ruleset == "" || *season == 0 || *week == 0 {
		log.Fatal("-ruleset, -season and -week are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := store.Connect(ctx, store.Config{DatabaseURL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rulesets, err := db.ListScoringRulesets(ctx)
	if err != nil {
		log.Fatalf("Failed to load scoring rulesets: %v", err)
	}
	scoringRegistry := scoring.NewRegistry(rulesets)

	matchupAnalyzer := matchup.New(db)
	featureBuilder := features.New(db, matchupAnalyzer, scoringRegistry, cfg.WorkerPoolSize)
	models := modelstore.New(cfg.ModelBaseDir, db, featureBuilder, scoringRegistry)
	cutoffPolicy := cutoff.New(db)

	var injurySource injury.Source
	if cfg.InjuryFeedURL != "" {
		injurySource = injury.NewLiveFeedClient(cfg.InjuryFeedURL)
	} else {
		injurySource = injury.NewNflverseSource(nflverse.NewClient(), *season, *week)
	}

	var estimator lineup.SalaryEstimator
	if *salaryCapped {
		estimator = lineup.HeuristicEstimator{}
	}

	orch := orchestrator.New(db, models, cutoffPolicy, featureBuilder, injurySource, estimator)

	result, err := orch.GamedayPredictions(ctx, *season, *week, *ruleset, *withInjuries)
	if err != nil {
		log.Fatalf("gameday_predictions failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
