package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridiron-projections/engine/internal/cache"
	"github.com/gridiron-projections/engine/internal/config"
	"github.com/gridiron-projections/engine/internal/cutoff"
	"github.com/gridiron-projections/engine/internal/features"
	"github.com/gridiron-projections/engine/internal/httpapi"
	"github.com/gridiron-projections/engine/internal/injury"
	"github.com/gridiron-projections/engine/internal/lineup"
	"github.com/gridiron-projections/engine/internal/matchup"
	"github.com/gridiron-projections/engine/internal/middleware"
	"github.com/gridiron-projections/engine/internal/modelstore"
	"github.com/gridiron-projections/engine/internal/nflverse"
	"github.com/gridiron-projections/engine/internal/orchestrator"
	"github.com/gridiron-projections/engine/internal/scoring"
	"github.com/gridiron-projections/engine/internal/store"
)

func main() {
	log.Println("Starting gameday projection engine...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := store.Connect(context.Background(), store.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	if cfg.RedisURL != "" {
		if err := cache.Connect(cache.Config{RedisURL: cfg.RedisURL}); err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v (caching disabled)", err)
		} else {
			defer cache.Close()
		}
	} else {
		log.Println("Redis URL not configured (caching disabled)")
	}

	rulesets, err := db.ListScoringRulesets(context.Background())
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
		injurySource = injury.NewNflverseSource(nflverse.NewClient(), 0, 0)
	}

	orch := orchestrator.New(db, models, cutoffPolicy, featureBuilder, injurySource, lineup.HeuristicEstimator{})

	predictionsHandler := httpapi.NewPredictionsHandler(orch)
	rulesetsHandler := httpapi.NewRulesetsHandler(rulesets)
	healthHandler := httpapi.NewHealthHandler(db)
	adminHandler := httpapi.NewAdminHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/predictions", applyGETMiddleware(predictionsHandler.HandlePredictions))
	mux.HandleFunc("/api/v1/rulesets", applyGETMiddleware(rulesetsHandler.HandleRulesets))
	mux.HandleFunc("/api/v1/health", applyGETMiddleware(healthHandler.HandleHealth))
	mux.HandleFunc("/api/v1/admin/cache/invalidate", applyPOSTAdminMiddleware(adminHandler.HandleInvalidateCache))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func applyGETMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return middleware.CORS(
		middleware.LogRequest(
			middleware.RecoverPanic(
				middleware.GET(
					middleware.StandardRateLimit(handler),
				),
			),
		),
	)
}

func applyPOSTAdminMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return middleware.CORS(
		middleware.LogRequest(
			middleware.RecoverPanic(
				middleware.AdminAuth(
					middleware.POST(
						middleware.StandardRateLimit(handler),
					),
				),
			),
		),
	)
}
