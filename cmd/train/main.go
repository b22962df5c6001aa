// train fits and publishes a ModelStore artifact for one scoring
// ruleset over the CutoffPolicy's training_seasons for a target season,
// saving it under the target (season, week).
package main

import (
	"context"
	"flag"
	"log"

	"github.com/gridiron-projections/engine/internal/config"
	"github.com/gridiron-projections/engine/internal/cutoff"
	"github.com/gridiron-projections/engine/internal/features"
	"github.com/gridiron-projections/engine/internal/matchup"
	"github.com/gridiron-projections/engine/internal/modelstore"
	"github.com/gridiron-projections/engine/internal/scoring"
	"github.com/gridiron-projections/engine/internal/store"
)

var (
	ruleset = flag.String("ruleset", "", "scoring ruleset name to train (required)")
	season  = flag.Int("season", 0, "target season to publish the model as current for (required)")
	week    = flag.Int("week", 1, "target week, used to name the saved and published artifact")
	publish = flag.Bool("publish", true, "publish the trained artifact as current for the ruleset")
)

func main() {
	flag.Parse()
	if *ruleset == "" || *season == 0 {
		log.Fatal("-ruleset and -season are required")
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

	seasons, err := cutoffPolicy.TrainingSeasons(ctx, *season)
	if err != nil {
		log.Fatalf("Failed to resolve training seasons: %v", err)
	}
	log.Printf("Training %s on seasons %v (target %d week %d)", *ruleset, seasons, *season, *week)

	artifact, err := models.Train(ctx, seasons, *ruleset, nil)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	if err := models.Save(*ruleset, *season, *week, artifact); err != nil {
		log.Fatalf("Failed to save artifact: %v", err)
	}
	log.Printf("Saved artifact for %s season %d week %d", *ruleset, *season, *week)

	if *publish {
		if err := models.PublishCurrent(*ruleset, *season, *week, artifact); err != nil {
			log.Fatalf("Failed to publish artifact: %v", err)
		}
		log.Printf("Published %s as current", *ruleset)
	}
}
