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

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/andrewpaige1/flashcard-challenges/auth"
	"github.com/andrewpaige1/flashcard-challenges/config"
	"github.com/andrewpaige1/flashcard-challenges/handlers"
	"github.com/andrewpaige1/flashcard-challenges/logger"
	"github.com/andrewpaige1/flashcard-challenges/middleware"
	"github.com/andrewpaige1/flashcard-challenges/services"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	db, err := config.Connect(cfg.DB)
	if err != nil {
		logg.Fatal("failed to init database", zap.Error(err))
	}
	if err := config.SeedCategories(db, cfg.Categories); err != nil {
		logg.Fatal("failed to seed categories", zap.Error(err))
	}

	svc, err := services.New(db, logg)
	if err != nil {
		logg.Fatal("failed to init services", zap.Error(err))
	}

	settings := auth.Settings{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	}
	authMiddleware, err := middleware.EnsureValidToken(settings, logg)
	if err != nil {
		logg.Fatal("failed to init auth middleware", zap.Error(err))
	}

	mux := newRouter(cfg, handlers.New(svc, logg), middleware.SyncUser(db, logg), settings, logg)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(logg)(authMiddleware(mux)))

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.HTTP.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newRouter(cfg *config.Config, h *handlers.Handler, authed func(http.HandlerFunc) http.HandlerFunc, settings auth.Settings, logg *zap.Logger) *http.ServeMux {
	mux := h.Routes(authed)
	if cfg.Auth.DevTokens {
		logg.Warn("development token endpoint enabled", zap.String("route", "POST /api/token"))
		mux.HandleFunc("POST /api/token", handlers.IssueToken(settings, logg))
	}
	return mux
}
