package cmd

import (
	"finspan/internal"
	"finspan/internal/report"
	"finspan/internal/repository"
	"finspan/internal/service"
	"finspan/pkg/fmp"
	"fmt"
	"strings"
)

const (
	Source_Fmp = "fmp"
	Source_Csv = "csv"
)

type Options struct {
	Source      string
	DataDir     string
	OutDir      string
	Concurrency int
}

func newStatementRepository(opts Options) (repository.StatementRepository, error) {
	switch strings.ToLower(opts.Source) {
	case Source_Fmp, "":
		secrets, err := internal.LoadSecrets()
		if err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
		return repository.NewFmpStatementRepository(fmp.NewClient(secrets.FmpApiKey)), nil
	case Source_Csv:
		if opts.DataDir == "" {
			return nil, fmt.Errorf("--data-dir is required for the %s source", Source_Csv)
		}
		return repository.NewCsvStatementRepository(opts.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown source %q, expected %s or %s", opts.Source, Source_Fmp, Source_Csv)
	}
}

func InitializeDependencies(opts Options) (service.AnalysisService, error) {
	statementRepository, err := newStatementRepository(opts)
	if err != nil {
		return nil, err
	}

	renderer := report.NewFileRenderer(opts.OutDir)

	return service.NewAnalysisService(
		statementRepository,
		renderer,
		opts.Concurrency,
	), nil
}
