package service

import (
	"context"
	"finspan/internal/calculator"
	"finspan/internal/domain"
	"finspan/internal/logger"
	"finspan/internal/report"
	"finspan/internal/repository"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AnalysisService interface {
	Analyze(ctx context.Context, symbols []string) (*AnalysisResult, error)
	Run(ctx context.Context, symbols []string) (string, error)
}

type AnalysisResult struct {
	RunID   uuid.UUID
	Symbols []string
	Years   []int
	Series  []calculator.CompanySeries
	Tables  []calculator.MetricTable
}

type analysisServiceHandler struct {
	StatementRepository repository.StatementRepository
	Renderer            report.Renderer
	Metrics             []calculator.MetricDefinition
	Concurrency         int
}

func NewAnalysisService(
	statementRepository repository.StatementRepository,
	renderer report.Renderer,
	concurrency int,
) AnalysisService {
	if concurrency < 1 {
		concurrency = 1
	}
	return analysisServiceHandler{
		StatementRepository: statementRepository,
		Renderer:            renderer,
		Metrics:             calculator.Catalogue(),
		Concurrency:         concurrency,
	}
}

// Analyze fetches and computes every company, then assembles the metric
// tables. Any company failing aborts the whole run.
func (h analysisServiceHandler) Analyze(ctx context.Context, symbols []string) (*AnalysisResult, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols given")
	}

	runID := uuid.New()
	log := logger.FromContext(ctx).With("runID", runID.String())
	ctx = logger.WithLogger(ctx, log)
	profile := domain.ProfileFromContext(ctx)

	series := make([]calculator.CompanySeries, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.Concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			span, endSpan := domain.NewSpan("company " + symbol)
			defer profile.AddSpan(span)
			defer endSpan()

			set, err := h.fetchStatementSet(gctx, symbol)
			if err != nil {
				return err
			}
			s, err := calculator.ComputeCompanySeries(gctx, *set, h.Metrics)
			if err != nil {
				return fmt.Errorf("failed to compute metrics for %s: %w", symbol, err)
			}
			log.Infow("computed company metrics", "symbol", symbol, "fiscalYears", s.Years)
			series[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	_, endSpan := profile.StartNewSpan("assemble tables")
	tables, err := calculator.AssembleTables(series, h.Metrics)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble metric tables: %w", err)
	}

	return &AnalysisResult{
		RunID:   runID,
		Symbols: symbols,
		Years:   calculator.GlobalYears(series),
		Series:  series,
		Tables:  tables,
	}, nil
}

// Run analyzes the symbols and renders the report, returning its location
func (h analysisServiceHandler) Run(ctx context.Context, symbols []string) (string, error) {
	profile, endProfile := domain.NewProfile()
	ctx = domain.WithProfile(ctx, profile)

	result, err := h.Analyze(ctx, symbols)
	if err != nil {
		return "", err
	}

	_, endSpan := profile.StartNewSpan("render")
	path, err := h.Renderer.Render(ctx, report.Document{
		RunID:       result.RunID,
		Symbols:     result.Symbols,
		Tables:      result.Tables,
		GeneratedAt: time.Now(),
	})
	endSpan()
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	endProfile()
	logger.FromContext(ctx).Infow(
		"analysis complete",
		"runID", result.RunID.String(),
		"path", path,
		"totalMs", *profile.TotalMs,
		"spans", profile.Summary(),
	)

	return path, nil
}

func (h analysisServiceHandler) fetchStatementSet(ctx context.Context, symbol string) (*domain.StatementSet, error) {
	incomeStatements, err := h.StatementRepository.ListIncomeStatements(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: income statements for %s: %w", domain.ErrSourceUnavailable, symbol, err)
	}
	if len(incomeStatements) == 0 {
		return nil, fmt.Errorf("%w: no income statements for %s", domain.ErrSourceUnavailable, symbol)
	}

	balanceSheetStatements, err := h.StatementRepository.ListBalanceSheetStatements(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: balance sheet statements for %s: %w", domain.ErrSourceUnavailable, symbol, err)
	}

	until := domain.MarketCapWindowEnd(incomeStatements[len(incomeStatements)-1].Date)
	marketCaps, err := h.StatementRepository.ListMarketCaps(ctx, symbol, until)
	if err != nil {
		return nil, fmt.Errorf("%w: market caps for %s: %w", domain.ErrSourceUnavailable, symbol, err)
	}

	return &domain.StatementSet{
		Symbol:                 symbol,
		IncomeStatements:       incomeStatements,
		BalanceSheetStatements: balanceSheetStatements,
		MarketCaps:             marketCaps,
	}, nil
}

// normalizeSymbols upper-cases symbols and drops blanks and repeats,
// keeping the order they were given in
func normalizeSymbols(symbols []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
