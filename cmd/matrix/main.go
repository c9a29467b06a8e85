// Command matrix computes one distance matrix from the command line,
// without the HTTP server. Queries are given as JSON (any shape the API
// accepts) or as a semicolon-separated list of terms.
package main

import (
	"context"
	"database/sql"
	"distance-matrix-service/internal/adapters/archive"
	"distance-matrix-service/internal/adapters/export"
	"distance-matrix-service/internal/adapters/googlemaps"
	"distance-matrix-service/internal/adapters/repositories"
	"distance-matrix-service/internal/config"
	"distance-matrix-service/internal/domain"
	"distance-matrix-service/internal/platform/db"
	"distance-matrix-service/internal/platform/logging"
	"distance-matrix-service/internal/ports"
	"distance-matrix-service/internal/services"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func main() {
	originsFlag := flag.String("origins", "", "origins as JSON or a semicolon-separated list")
	destinationsFlag := flag.String("destinations", "", "destinations as JSON or a semicolon-separated list")
	originNamesFlag := flag.String("origin-names", "", "origin display names, semicolon-separated (default: the query terms)")
	destinationNamesFlag := flag.String("destination-names", "", "destination display names, semicolon-separated (default: the query terms)")
	optionsFlag := flag.String("options", "", "travel options as a JSON object")
	labelFlag := flag.String("label", "", "artifact label")
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "overall run timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env, "matrix")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	origins, err := parseQueryFlag("origins", *originsFlag)
	if err != nil {
		log.Fatal(err)
	}
	destinations, err := parseQueryFlag("destinations", *destinationsFlag)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := parseOptionsFlag(*optionsFlag)
	if err != nil {
		log.Fatal(err)
	}

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

	label := *labelFlag
	if label == "" {
		label = cfg.ArchiveLabel
	}
	pipeline := &services.Pipeline{
		Provider: client,
		Archiver: archive.NewFileArchiver(cfg.ArchiveDir, logger.Named("archive")),
		Exporter: export.NewCSVExporter(cfg.ExportDir, logger.Named("export")),
		Store:    store,
		Logger:   logger.Named("pipeline"),
		Label:    label,
	}

	job := services.MatrixJob{
		Origins:          origins,
		Destinations:     destinations,
		Options:          opts,
		OriginNames:      parseNamesFlag(*originNamesFlag, origins),
		DestinationNames: parseNamesFlag(*destinationNamesFlag, destinations),
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	result, err := pipeline.Run(ctx, job)
	if err != nil {
		logger.Fatal("matrix run failed", zap.Error(err))
	}

	printMatrix(result.Matrix)
	fmt.Printf("\narchived as %s\n", result.Artifact)
	if result.ExportPath != "" {
		fmt.Printf("exported to %s\n", result.ExportPath)
	}
}

func parseQueryFlag(field, raw string) (domain.Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("-%s is required", field)
	}
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, `"`) {
		return domain.ParseQueryJSON(field, []byte(raw))
	}

	parts := strings.Split(raw, ";")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		terms = append(terms, strings.TrimSpace(p))
	}
	return domain.ParseQuery(field, terms)
}

func parseOptionsFlag(raw string) (domain.Options, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Options{}, nil
	}

	var opts domain.Options
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return domain.Options{}, fmt.Errorf("-options: %w", err)
	}
	return opts, nil
}

func parseNamesFlag(raw string, q domain.Query) []string {
	if strings.TrimSpace(raw) == "" {
		return q.Terms()
	}
	parts := strings.Split(raw, ";")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

func printMatrix(m *domain.Matrix) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	cols := m.ColumnLabels()
	header := append([]string{"Matrix"}, cols...)
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range m.RowLabels() {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, row)
		for _, col := range cols {
			if v, ok := m.Value(row, col); ok && v.Valid {
				cells = append(cells, strconv.Itoa(v.Value))
			} else {
				cells = append(cells, "NaN")
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	_ = w.Flush()
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
