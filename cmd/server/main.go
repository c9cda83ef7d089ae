package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/csg33k/f1040-filler/internal/adapters/pdffill"
	sqliteadapter "github.com/csg33k/f1040-filler/internal/adapters/sqlite"
	"github.com/csg33k/f1040-filler/internal/config"
	"github.com/csg33k/f1040-filler/internal/errors"
	"github.com/csg33k/f1040-filler/internal/fill"
	"github.com/csg33k/f1040-filler/internal/handlers"
	"github.com/csg33k/f1040-filler/internal/logging"
	"github.com/csg33k/f1040-filler/internal/ports"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := logging.Initialize(cfg.Logging.JSON, cfg.Logging.Debug); err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer logging.Cleanup()

	repo, err := sqliteadapter.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	if err := os.MkdirAll(cfg.Forms.WorkDir, 0o755); err != nil {
		log.Fatalf("failed to create work dir: %v", err)
	}

	filler := fill.New(func() ports.FormWriter { return pdffill.New() })
	h := handlers.New(repo, filler, cfg.Forms)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: h.Routes()}

	log.Printf("1040 Filler running on http://localhost%s", cfg.Server.Addr)
	log.Printf("Database: %s", cfg.Database.Path)
	log.Printf("Templates: %s  Work dir: %s", cfg.Forms.TemplateDir, cfg.Forms.WorkDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		// Blocks until a signal arrives or ListenAndServe fails.
		<-egCtx.Done()
		logging.Infof("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := eg.Wait(); err != nil {
		logging.Errorw("server stopped", "error", err)
		return
	}
	logging.Infof("server stopped cleanly")
}
