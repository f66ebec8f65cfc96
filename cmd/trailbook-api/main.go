// README: Entry point; loads config, runs migrations, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trailbook/internal/ai"
	"trailbook/internal/config"
	httptransport "trailbook/internal/http"
	"trailbook/internal/infra"
	"trailbook/internal/modules/intelligence"
	"trailbook/internal/modules/trip"
	"trailbook/internal/places"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("TRAILBOOK_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	if err := infra.Migrate(cfg.DB.DSN, cfg.DB.MigrationsDir); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore)

	var intelSvc *intelligence.Service
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			logger.Fatal("gemini init", zap.Error(err))
		}
		defer provider.Close()
		cache := intelligence.NewRedisCache(redisClient, time.Duration(cfg.Recommend.CacheTTLHours)*time.Hour)
		intelSvc = intelligence.NewService(provider, cache, time.Duration(cfg.Recommend.CacheTTLHours)*time.Hour)
	} else {
		logger.Warn("GEMINI_API_KEY not set, ai features disabled")
	}

	var resolver *places.Resolver
	if cfg.Maps.APIKey != "" {
		resolver = places.NewResolver(cfg.Maps.APIKey)
	} else {
		logger.Warn("MAPS_API_KEY not set, place lookup disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:       logger,
		Verifier:     verifier,
		Trips:        tripSvc,
		Intelligence: intelSvc,
		Places:       resolver,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
