package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canteen-api/internal/auth"
	"canteen-api/internal/catalog"
	"canteen-api/internal/clock"
	"canteen-api/internal/common"
	"canteen-api/internal/env"
	"canteen-api/internal/logging"
	"canteen-api/internal/metrics"
	"canteen-api/internal/notify"
	"canteen-api/internal/specials"
	"canteen-api/internal/stockalert"
	"canteen-api/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger := logging.New(os.Stdout, logging.Config{
		Level:  env.GetEnv(env.EnvLogLevel, "info"),
		Format: env.GetEnv(env.EnvLogFormat, "text"),
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Canteen database
	canteenDB, err := sql.Open("sqlite3", env.GetEnv(env.EnvCanteenDBPath, "./internal/databases/canteen.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer canteenDB.Close()
	if _, err := canteenDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logger.Warn("failed to enable WAL mode on canteen db", "error", err)
	}

	// Auth database
	authDB, err := sql.Open("sqlite3", env.GetEnv(env.EnvAuthDBPath, "./internal/databases/auth.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer authDB.Close()

	canteenID := env.GetEnv(env.EnvCanteenID, "main_canteen")
	clk := clock.System()
	m := metrics.New()

	// Notifications fan out to connected console clients and the log
	hub := notify.NewHub(logger)
	notifier := notify.NewHubNotifier(hub, logger)

	// Menu catalogue
	catalogRepo := catalog.NewRepository(canteenDB)
	store := catalog.NewStore()
	policy := catalog.NewStockPolicy(store, catalogRepo, notifier, m, logger)

	// The catalogue loads in the background; the specials scheduler waits
	// on the store's readiness channel before its first application.
	go func() {
		items, err := catalogRepo.GetAll(canteenID)
		if err != nil {
			logger.Error("failed to load menu catalogue", "error", err)
			return
		}
		store.Load(items)
		logger.Info("menu catalogue loaded", "items", len(items))
	}()

	// Specials schedule and scheduler
	blobs := storage.NewBlobStore(canteenDB)
	scheduleStore := specials.NewScheduleStore(blobs, logger)
	if err := scheduleStore.Load(); err != nil {
		logger.Error("failed to load specials schedule", "error", err)
	}
	scheduler := specials.NewScheduler(scheduleStore, store, policy, notifier, m, logger, clk)
	scheduleStore.AttachScheduler(scheduler)
	go scheduler.Run(ctx)

	// Stock update reminders
	thresholds := stockalert.Thresholds{
		Low:      env.GetInt(env.EnvLowStockThreshold, stockalert.DefaultThresholds.Low),
		Critical: env.GetInt(env.EnvCriticalThreshold, stockalert.DefaultThresholds.Critical),
	}
	reminder := stockalert.NewReminderTimer(
		store, notifier, m, logger, clk,
		env.GetDuration(env.EnvAlertInterval, stockalert.DefaultInterval),
		thresholds,
	)
	reminder.RequestPermission()
	go reminder.Run(ctx)

	// Auth components
	authRepo := auth.NewRepository(authDB)
	if err := authRepo.EnableWAL(); err != nil {
		logger.Warn("failed to enable WAL mode on auth db", "error", err)
	}

	oauthConfig := auth.NewOAuthConfig(
		auth.ProviderConfig{
			ClientID:     env.GetEnv(env.EnvGoogleClientID, ""),
			ClientSecret: env.GetEnv(env.EnvGoogleClientSecret, ""),
		},
		auth.ProviderConfig{
			ClientID:     env.GetEnv(env.EnvGitHubClientID, ""),
			ClientSecret: env.GetEnv(env.EnvGitHubClientSecret, ""),
		},
		env.GetEnv(env.EnvAuthCallbackBaseURL, "http://localhost:9238"),
	)

	stateStore := auth.NewOAuthStateStore(authRepo)
	sessionStore := auth.NewSessionStore(
		authRepo,
		env.GetDuration(env.EnvSessionDuration, 7*24*time.Hour),
		env.GetBool(env.EnvSecureCookies, false),
	)
	tokenStore := auth.NewTokenStore(authRepo)
	authHandler := auth.NewHandler(authRepo, oauthConfig, stateStore, sessionStore, tokenStore)
	authMiddleware := auth.NewMiddleware(tokenStore, sessionStore)

	// Handlers
	lowThreshold := thresholds.Low
	catalogHandler := catalog.NewHandler(store, catalogRepo, policy, notifier, logger, canteenID, lowThreshold)
	catalogHandler.OnStockUpdate = reminder.Dismiss
	specialsHandler := specials.NewHandler(scheduleStore, scheduler, store, logger)
	alertHandler := stockalert.NewHandler(reminder, clk, logger)

	router := gin.Default()

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global)
	auth.RegisterRoutes(global, authHandler, authMiddleware)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		catalog.RegisterRoutes(v0Group, catalogHandler, authMiddleware)
		specials.RegisterRoutes(v0Group, specialsHandler, authMiddleware)
		stockalert.RegisterRoutes(v0Group, alertHandler, authMiddleware)
	}

	router.GET("/api/ws", hub.ServeWS())
	router.GET("/metrics", gin.WrapH(m.Handler()))

	srv := &http.Server{
		Addr:    ":" + env.GetEnv(env.EnvPort, "9238"),
		Handler: router,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

/*
EZEATZ API provides the backend for the EZEATZ canteen admin console.
Copyright (C) 2025 EZEATZ

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
