package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"invsettle/internal/assembly"
	"invsettle/internal/config"
	"invsettle/internal/exporter"
	"invsettle/internal/extraction"
	"invsettle/internal/infrastructure"
	"invsettle/internal/persistence"
	"invsettle/pkg/contracts/domain"
)

// recordingStore captures every persisted line item so the run can be
// exported as a reviewable CSV afterwards, whatever store backs it.
type recordingStore struct {
	assembly.Store
	items []domain.LineItem
}

func (r *recordingStore) BulkInsertItems(ctx context.Context, items []domain.LineItem) error {
	if err := r.Store.BulkInsertItems(ctx, items); err != nil {
		return err
	}
	r.items = append(r.items, items...)
	return nil
}

func main() {
	configFile := flag.String("config", "config.yaml", "path to the configuration file")
	inDir := flag.String("in", "", "input directory for invoice documents (defaults to <data_dir>/invoices)")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing to the database")
	report := flag.Bool("report", true, "write the line item CSV report")
	flag.Parse()

	if err := run(*configFile, *inDir, *dryRun, *report, flag.Args()); err != nil {
		slog.Error("batch failed", "error", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}

func run(configFile, inDir string, dryRun, report bool, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	documents, err := collectDocuments(inDir, paths, args)
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		logger.Warn("no invoice documents found")
		return nil
	}
	logger.Info("starting batch", slog.Int("documents", len(documents)), slog.Bool("dry_run", dryRun))

	store, err := openStore(cfg, dryRun, logger)
	if err != nil {
		return err
	}

	recording := &recordingStore{Store: store}
	pipeline := assembly.NewPipeline(extraction.NewDispatcher(logger), recording, logger)

	ctx := infrastructure.EnsureTraceID(context.Background())
	summary, err := pipeline.Run(ctx, documents)
	if err != nil {
		return err
	}

	if report {
		writer := exporter.NewCSVWriter(paths, logger)
		filename := fmt.Sprintf("items_%s.csv", time.Now().Format("20060102_150405"))
		if err := writer.WriteItemsReport(filename, recording.items); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("report written", slog.String("path", paths.GetReportPath(filename)))
	}

	logger.Info("batch finished",
		slog.Int("documents", summary.Documents),
		slog.Int("items", summary.Items),
		slog.Int("invoices", summary.Invoices),
		slog.Int("persons_created", summary.PersonsCreated))
	return nil
}

// openStore picks the persistence backend. Dry runs settle entirely in
// memory; real runs require a database URL.
func openStore(cfg *config.Config, dryRun bool, logger *slog.Logger) (assembly.Store, error) {
	if dryRun {
		return persistence.NewMemoryStore(), nil
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required unless -dry-run is set")
	}
	return persistence.Open(cfg.Database.URL, logger)
}

// collectDocuments resolves the batch input. Explicit arguments win;
// otherwise every supported document under the input directory is taken,
// sorted by name for a stable processing order.
func collectDocuments(inDir string, paths *config.Paths, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	dir := inDir
	if dir == "" {
		dir = paths.InvoicesDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var documents []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".xlsx":
			documents = append(documents, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(documents)
	return documents, nil
}
