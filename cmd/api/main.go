package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"layanan.org/internal/auth"
	"layanan.org/internal/config"
	"layanan.org/internal/httpapi"
	"layanan.org/internal/obs"
	"layanan.org/internal/store/pg"
	"layanan.org/internal/submission"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("LAYANAN_JWT_SECRET is required")
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	var (
		store      submission.Store
		creds      auth.CredentialStore
		readyProbe httpapi.ReadyProbe
		pgStore    *pg.Store
	)
	if cfg.PostgresDSN != "" {
		pgStore, err = pg.Open(context.Background(), cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		store = pgStore
		creds = pgStore
		readyProbe = httpapi.ReadyProbe{Store: pgStore}
	} else {
		if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
			log.Fatal("LAYANAN_ADMIN_USERNAME and LAYANAN_ADMIN_PASSWORD are required without LAYANAN_PG_DSN")
		}
		log.Print("no LAYANAN_PG_DSN set, using in-memory store")
		store = submission.NewMemory()
		creds = auth.StaticCredentials{Credential: auth.Credential{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		}}
	}

	api := httpapi.New(
		readyProbe,
		version,
		auth.NewVerifier(creds),
		tokens,
		submission.NewService(store),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting layanan-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if pgStore != nil {
		_ = pgStore.Close()
	}
	log.Println("Stopped")
}
