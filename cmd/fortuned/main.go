// Command fortuned serves Four Pillars chart readings over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/liunara/fourpillars/internal/api"
	"github.com/liunara/fourpillars/internal/config"
	"github.com/liunara/fourpillars/internal/narrative"
	"github.com/liunara/fourpillars/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	config.SetupLogging(cfg)

	slog.Info("fourpillars reading service")

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755)
	db, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DatabasePath)

	// ── Narrative client ──────────────────────────────────────────────
	client := narrative.NewClient(cfg.AnthropicAPIKey)
	if !client.Enabled() {
		slog.Warn("ANTHROPIC_API_KEY not set — readings will use fallback text")
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	server := &api.Server{
		LLM:      client,
		DB:       db,
		Port:     cfg.Port,
		AdminKey: cfg.AdminKey,
	}
	server.Start()

	fmt.Printf("fortuned listening on http://localhost:%d/api/v1/status\n", cfg.Port)
	fmt.Println("Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if err := db.SaveMeta("last_shutdown", sig.String()); err != nil {
		slog.Warn("shutdown metadata save failed", "error", err)
	}
}
