package main

import (
	"context"
	"enrollment-dashboard/internal/api"
	"enrollment-dashboard/internal/api/handler"
	"enrollment-dashboard/internal/config"
	"enrollment-dashboard/internal/pipeline"
	"enrollment-dashboard/internal/store"
	"enrollment-dashboard/pkg/router"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// @title Family Enrollment Dashboard API
// @version 1.0
// @description Linked bar, pie and scatter charts of family enrollment by year.
// @BasePath /api/v1
func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the record set once
	records, stats, err := pipeline.Load(ctx, cfg.Source)
	if err != nil {
		log.Fatalf("❌ Failed to load records: %v", err)
	}

	sessions := store.NewSessionStore()
	go sessions.RunSweeper(ctx, cfg.SessionTTL(), cfg.SweepInterval())

	// Create router
	r := router.New()

	// Register API routes
	h := handler.New(records, stats, sessions, cfg.Stream, nil)
	api.RegisterRoutes(r, h, cfg.Swagger)

	srv := r.Server(cfg.Addr)
	go func() {
		<-ctx.Done()
		log.Printf("🛑 Shutting down")
		srv.Shutdown(context.Background())
	}()

	// Start server
	if err := r.Serve(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Server failed: %v", err)
	}
	log.Printf("👋 Server stopped")
}
