package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nandakv/paisaflow/internal/cli"
	"github.com/nandakv/paisaflow/internal/config"
	"github.com/nandakv/paisaflow/internal/engine"
	"github.com/nandakv/paisaflow/internal/enrich"
	"github.com/nandakv/paisaflow/internal/extract"
	"github.com/nandakv/paisaflow/internal/schema"
	"github.com/nandakv/paisaflow/internal/service"
	"github.com/nandakv/paisaflow/internal/storage"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [files...]",
		Short: "Process extracted statement tables into enriched transactions",
		Long: `Process one or more extracted-table JSON files (the output of the
table-extraction step) into enriched transactions and store them.

Examples:
  # Process every statement in a directory
  paisaflow process ~/statements/extracted/*.json

  # Process a single statement
  paisaflow process CANARA_2025_03.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().IntP("workers", "w", 0, "concurrent documents (default from config)")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}

	var files []string
	for _, pattern := range args {
		matches, globErr := filepath.Glob(pattern)
		if globErr != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, globErr)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no input files found")
	}

	// A document that fails to load is a per-document failure, not a batch
	// failure: log it and keep loading the rest.
	var source service.TableSource = extract.NewFileSource()
	var docs []*extract.Document
	loadFailures := 0
	for _, path := range files {
		doc, loadErr := source.Load(ctx, path)
		if loadErr != nil {
			slog.Error("Failed to load document", "file", path, "error", loadErr)
			loadFailures++
			continue
		}
		docs = append(docs, doc)
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path,
		storage.WithEnvironment(cfg.Database.Environment))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate storage: %w", err)
	}

	registry := schema.NewRegistry(cfg.BankSchemas)
	enricher := enrich.New(cfg.Keywords)
	decoder := extract.NewRowDecoder(cfg.DateFormats, enricher)
	processor := engine.NewProcessor(registry, decoder, cfg.Banks)
	orchestrator := engine.NewBatchOrchestrator(processor, store, cfg.Workers)

	bar := cli.NewDocumentBar(os.Stderr, len(docs))
	orchestrator.OnDocumentDone = func(_ string, _ error) {
		_ = bar.Add(1)
	}

	stats := orchestrator.Run(ctx, docs)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	printSummary(stats, loadFailures)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch cancelled: %w", err)
	}
	return nil
}

func printSummary(stats *engine.BatchStats, loadFailures int) {
	content := fmt.Sprintf(
		"%s\n%s\n%s\n%s",
		cli.FormatSuccess(fmt.Sprintf("%d documents submitted", stats.Submitted)),
		cli.SubtleStyle.Render(fmt.Sprintf("  %d transactions stored", stats.Transactions)),
		cli.SubtleStyle.Render(fmt.Sprintf("  %d rows skipped", stats.RowsSkipped)),
		failureLine(stats.Failed+loadFailures),
	)
	fmt.Println(cli.RenderBox("Batch complete", content))
}

func failureLine(failed int) string {
	if failed == 0 {
		return cli.SubtleStyle.Render("  0 documents failed")
	}
	return cli.FormatWarning(fmt.Sprintf("%d documents failed (see log)", failed))
}
