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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/config"
	dbpkg "github.com/ldagroup/timetracking/internal/db"
	"github.com/ldagroup/timetracking/internal/routes"
	"github.com/ldagroup/timetracking/internal/timezone"
)

func main() {
	loadLocalEnv()

	cfg := config.Load()

	if !timezone.IsValid(cfg.Timezone) {
		log.Fatalf("invalid APP_TIMEZONE %q", cfg.Timezone)
	}

	if cfg.AdminPasswordHash == "" {
		if cfg.AdminPassword == "" {
			log.Printf("ADMIN_PASSWORD_HASH and ADMIN_PASSWORD not set, static admin login disabled")
		} else {
			hash, err := auth.HashPassword(cfg.AdminPassword)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}
			cfg.AdminPasswordHash = hash
		}
	}
	if cfg.JWTSecret == "changeme" {
		log.Printf("JWT_SECRET not set, using the development default")
	}

	db := dbpkg.NewDB(cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Match([]string{http.MethodGet, http.MethodHead}, "/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shutdown := routes.RegisterRoutes(ctx, r, db, cfg, routes.Options{})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}

	stop()
	shutdown()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
