package main

import (
	"database/sql"
	"distance-matrix-service/internal/adapters/archive"
	"distance-matrix-service/internal/adapters/export"
	"distance-matrix-service/internal/adapters/googlemaps"
	"distance-matrix-service/internal/adapters/repositories"
	"distance-matrix-service/internal/api"
	"distance-matrix-service/internal/config"
	"distance-matrix-service/internal/platform/db"
	"distance-matrix-service/internal/platform/logging"
	"distance-matrix-service/internal/ports"
	"distance-matrix-service/internal/services"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, SQL stores) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env, "distance-matrix-service")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	store, conn, err := openStore(cfg)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}
	if conn != nil {
		defer conn.Close()
	}

	client, err := googlemaps.NewClient(cfg.APIKey, cfg.BaseURL, logger.Named("googlemaps"))
	if err != nil {
		logger.Fatal("client setup failed", zap.Error(err))
	}

	pipeline := &services.Pipeline{
		Provider: client,
		Store:    store,
		Logger:   logger.Named("pipeline"),
		Label:    cfg.ArchiveLabel,
	}
	if cfg.ArchiveReplies {
		pipeline.Archiver = archive.NewFileArchiver(cfg.ArchiveDir, logger.Named("archive"))
	}
	if cfg.ExportMatrices {
		pipeline.Exporter = export.NewCSVExporter(cfg.ExportDir, logger.Named("export"))
	}

	router := api.NewRouter(pipeline, logger.Named("api"))

	// Timeouts sized for one synchronous upstream matrix call per request.
	logger.Info("server listening", zap.String("addr", ":"+cfg.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

// openStore opens the configured database and prepares its schema. The
// store is nil when persistence is switched off.
func openStore(cfg *config.Config) (ports.DistanceStore, *sql.DB, error) {
	if !cfg.Persist {
		return nil, nil, nil
	}

	dsn := cfg.DBPath
	if cfg.Driver == config.DriverPostgres {
		dsn = cfg.DatabaseURL
	}

	conn, err := db.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Driver == config.DriverPostgres {
		if err := repositories.InitSQLSchema(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repositories.NewSQLDistanceStore(conn), conn, nil
	}

	if err := repositories.InitSqliteSchema(conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return repositories.NewSqliteDistanceStore(conn), conn, nil
}
