package main

import (
	"log"

	"github.com/asejik/invoice-aso-oke/internal/config"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
)

// Standalone migration runner. The server migrates on startup anyway;
// this exists for checking a database file without starting the app.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	client, err := sqlite.NewClient(cfg.Store.Path, zlog)
	if err != nil {
		zlog.Fatalf("migration failed: %v", err)
	}
	defer client.Close()

	version, err := client.SchemaVersion()
	if err != nil {
		zlog.Fatalf("could not read schema version: %v", err)
	}
	zlog.Infow("database ready", "path", cfg.Store.Path, "schema_version", version)
}
