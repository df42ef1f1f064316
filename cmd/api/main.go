package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/ecowatch/pollution-api/internal/config"
	"github.com/ecowatch/pollution-api/internal/handler"
	"github.com/ecowatch/pollution-api/internal/middleware"
	"github.com/ecowatch/pollution-api/internal/repository"
	"github.com/ecowatch/pollution-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pollutionRepo := repository.NewPollutionRepository(db)
	pollutionService := service.NewPollutionService(pollutionRepo)
	pollutionHandler := handler.NewPollutionHandler(pollutionService)

	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userHandler := handler.NewUserHandler(userService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/pollution", func(r chi.Router) {
		r.Post("/", pollutionHandler.HandleCreate)
		r.Get("/", pollutionHandler.HandleList)
		r.Get("/{id}", pollutionHandler.HandleGetByID)
		r.Put("/{id}", pollutionHandler.HandleUpdate)
		r.Delete("/{id}", pollutionHandler.HandleDelete)
		r.Delete("/", pollutionHandler.HandleDeleteAll)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/", userHandler.HandleCreate)
			r.Post("/auth/login", userHandler.HandleLogin)
		})

		r.Get("/", userHandler.HandleList)
		r.Get("/search", userHandler.HandleSearch)
		r.Get("/check/login/{login}", userHandler.HandleCheckLogin)
		r.Get("/login/{login}", userHandler.HandleGetByLogin)
		r.Get("/{id}", userHandler.HandleGetByID)
		r.Put("/{id}", userHandler.HandleUpdate)
		r.Patch("/{id}", userHandler.HandleUpdate)
		r.Delete("/{id}", userHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
