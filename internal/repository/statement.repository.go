package repository

import (
	"context"
	"finspan/internal/domain"
	"finspan/internal/util"
	"finspan/pkg/fmp"
	"fmt"
	"strconv"
	"time"
)

// StatementRepository is the source of annual statements and market caps.
// Every list it returns is sorted ascending by date.
type StatementRepository interface {
	ListIncomeStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error)
	ListBalanceSheetStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error)
	ListMarketCaps(ctx context.Context, symbol string, until time.Time) ([]domain.MarketCapObservation, error)
}

type fmpStatementRepositoryHandler struct {
	Client fmp.Client
}

func NewFmpStatementRepository(client fmp.Client) StatementRepository {
	return fmpStatementRepositoryHandler{
		Client: client,
	}
}

func (h fmpStatementRepositoryHandler) ListIncomeStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error) {
	statements, err := h.Client.GetIncomeStatements(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return statementRecordsFromFmp(symbol, domain.StatementKind_Income, statements)
}

func (h fmpStatementRepositoryHandler) ListBalanceSheetStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error) {
	statements, err := h.Client.GetBalanceSheetStatements(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return statementRecordsFromFmp(symbol, domain.StatementKind_BalanceSheet, statements)
}

func (h fmpStatementRepositoryHandler) ListMarketCaps(ctx context.Context, symbol string, until time.Time) ([]domain.MarketCapObservation, error) {
	marketCaps, err := h.Client.GetHistoricalMarketCaps(ctx, symbol, until)
	if err != nil {
		return nil, err
	}

	out := []domain.MarketCapObservation{}
	for _, m := range marketCaps {
		date, err := util.ParseDate(m.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse market cap date %q for %s: %w", m.Date, symbol, err)
		}
		out = append(out, domain.MarketCapObservation{
			Symbol:    symbol,
			Date:      date,
			MarketCap: m.MarketCap,
		})
	}
	domain.SortMarketCaps(out)

	return out, nil
}

func statementRecordsFromFmp(symbol string, kind domain.StatementKind, statements []fmp.Statement) ([]domain.StatementRecord, error) {
	out := []domain.StatementRecord{}
	for _, s := range statements {
		date, err := util.ParseDate(s.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s statement date %q for %s: %w", kind, s.Date, symbol, err)
		}
		fiscalYear, err := parseFiscalYear(s.CalendarYear, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s statement year for %s: %w", kind, symbol, err)
		}
		out = append(out, domain.StatementRecord{
			Symbol:     symbol,
			Kind:       kind,
			Date:       date,
			FiscalYear: fiscalYear,
			Fields:     s.Fields,
		})
	}
	domain.SortStatements(out)

	return out, nil
}

// parseFiscalYear falls back to the statement date when no calendar
// year was reported
func parseFiscalYear(calendarYear string, date time.Time) (int, error) {
	if calendarYear == "" {
		return date.Year(), nil
	}
	return strconv.Atoi(calendarYear)
}
