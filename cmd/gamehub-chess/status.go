package main

import (
	"context"
	"io"
	"os"

	"github.com/lgbarn/gamehub-go/internal/config"
	"github.com/lgbarn/gamehub-go/internal/errors"
	"github.com/lgbarn/gamehub-go/internal/output"
	"github.com/lgbarn/gamehub-go/internal/processing"
	"github.com/lgbarn/gamehub-go/internal/worker"
)

// runStatus reports the status of every FEN line in files, or in stdin when
// no files are given. It returns the number of invalid positions.
func runStatus(ctx context.Context, cfg *config.Config, files []string, stdin io.Reader) (int, error) {
	items, err := collectPositions(files, stdin)
	if err != nil {
		return 0, err
	}
	cfg.Logf(2, "Analysing %d positions\n", len(items))

	results := processing.AnalyzeBatch(ctx, items, cfg.Workers)

	w := output.NewReportWriter(cfg.OutputFile, cfg.Output.JSONFormat)
	for _, r := range results {
		if err := w.WriteResult(r); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	summary := processing.Summarize(results)
	if cfg.Output.JSONFormat {
		cfg.Logf(1, "%s\n", output.FormatSummary(summary))
	}
	return summary.Invalid, nil
}

// collectPositions reads positions from all inputs and numbers them in
// input order across files.
func collectPositions(files []string, stdin io.Reader) ([]worker.WorkItem, error) {
	if len(files) == 0 {
		return processing.ReadPositions(stdin, "stdin")
	}

	var all []worker.WorkItem
	for _, name := range files {
		items, err := readPositionFile(name)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			item.Index = len(all)
			all = append(all, item)
		}
	}
	return all, nil
}

func readPositionFile(name string) ([]worker.WorkItem, error) {
	file, err := os.Open(name) //nolint:gosec // G304: user-supplied input file
	if err != nil {
		return nil, errors.Wrapf(err, "opening position file %s", name)
	}
	defer file.Close()
	return processing.ReadPositions(file, name)
}
