package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/config"
	orderControllers "github.com/alfar-programer/Store-B-sub000/controllers/order"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/routes"
	"github.com/alfar-programer/Store-B-sub000/telemetry"
	"github.com/alfar-programer/Store-B-sub000/uploads"
)

const serviceName = "store-api"

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: serviceName,
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Fatalf("❌ Tracing setup failed: %v", err)
	}

	// Init DB
	db, err := repository.Open(cfg)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	repos := repository.New(db)

	// Token revocation is only available with Redis
	var revoker auth.Revoker
	if cfg.RedisURL != "" {
		redisRevoker, err := auth.NewRedisRevoker(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		defer redisRevoker.Close()
		revoker = redisRevoker
		log.Println("✅ Token revocation enabled (redis)")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, revoker)
	authSvc := auth.NewService(repos.Users, tokens, cfg.BcryptCost)
	if err := authSvc.SeedAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("❌ Admin seeding failed: %v", err)
	}

	hub := orderControllers.NewHub()
	orderSvc := orderControllers.NewService(repos.Orders, repos.Users, hub, orderControllers.Options{
		TotalPolicy:       cfg.OrderTotalPolicy,
		StrictTransitions: cfg.OrderStrictTransitions,
	})

	store := uploads.NewStore(cfg.UploadsDir)
	if err := os.MkdirAll(store.Dir(), os.ModePerm); err != nil {
		log.Fatalf("❌ Failed to create uploads folder: %v", err)
	}

	engine := routes.NewEngine(routes.Deps{
		Config:  cfg,
		Repos:   repos,
		Auth:    authSvc,
		Orders:  orderSvc,
		Hub:     hub,
		Uploads: store,
	})

	// Back up images at 2 AM daily, keep 4 days of backups
	if cfg.BackupDir != "" {
		go uploads.RunDailyBackup(ctx, store.Dir(), cfg.BackupDir, 4*24*time.Hour, 2, 0)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.Handler(engine, serviceName, "/health"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("❌ Tracing shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("👋 Bye")
}
