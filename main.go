package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"landing-api/internal/auth"
	"landing-api/internal/config"
	"landing-api/internal/db"
	"landing-api/internal/handlers"
	appmiddleware "landing-api/internal/middleware"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, err := db.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	sessions := auth.NewSessions(cfg.SessionSecret, 24*time.Hour)

	blogHandler := handlers.NewBlogHandler(store, logger)
	contactHandler := handlers.NewContactHandler(store, logger)
	authHandler := handlers.NewAuthHandler(store, sessions, logger)
	opsHandler := handlers.NewOpsHandler(store, cfg, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		// Tighter limit on login to slow down credential guessing.
		loginLimiter := appmiddleware.NewLimiter(5, time.Minute)
		contactLimiter := appmiddleware.NewLimiter(30, time.Minute)

		r.With(contactLimiter.Handler).Post("/contact", contactHandler.Submit)

		r.Get("/blog", blogHandler.List)
		r.Get("/blog/{id}", blogHandler.GetByID)
		r.Group(func(r chi.Router) {
			r.Use(sessions.Require)
			r.Post("/blog", blogHandler.Create)
			r.Put("/blog/{id}", blogHandler.Update)
			r.Delete("/blog/{id}", blogHandler.Delete)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Get("/health", opsHandler.Health)
		r.Post("/init-db", opsHandler.InitDB)
		r.Post("/reset-admin", opsHandler.ResetAdmin)
	})

	r.Group(func(r chi.Router) {
		r.Use(sessions.GuardPages)
		r.Get("/admin", handlers.AdminPage)
		r.Get("/admin/*", handlers.AdminPage)
		r.Get("/login", handlers.LoginPage)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
