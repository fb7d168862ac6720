package repository

import (
	"context"
	"finspan/internal/domain"
	"finspan/internal/util"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvStatementRepositoryHandler reads statements exported to
// <dir>/<SYMBOL>/{income,balance_sheet,market_cap}.csv
type csvStatementRepositoryHandler struct {
	DataDir string
}

func NewCsvStatementRepository(dataDir string) StatementRepository {
	return csvStatementRepositoryHandler{
		DataDir: dataDir,
	}
}

type incomeStatementCsvRow struct {
	Date         string `csv:"date"`
	CalendarYear string `csv:"calendarYear"`
	Revenue      string `csv:"revenue"`
	NetIncome    string `csv:"netIncome"`
}

type balanceSheetCsvRow struct {
	Date                        string `csv:"date"`
	CalendarYear                string `csv:"calendarYear"`
	TotalAssets                 string `csv:"totalAssets"`
	TotalCurrentAssets          string `csv:"totalCurrentAssets"`
	TotalNonCurrentAssets       string `csv:"totalNonCurrentAssets"`
	TotalLiabilities            string `csv:"totalLiabilities"`
	TotalCurrentLiabilities     string `csv:"totalCurrentLiabilities"`
	TotalStockholdersEquity     string `csv:"totalStockholdersEquity"`
	TotalEquity                 string `csv:"totalEquity"`
	CashAndShortTermInvestments string `csv:"cashAndShortTermInvestments"`
	GoodwillAndIntangibleAssets string `csv:"goodwillAndIntangibleAssets"`
}

type marketCapCsvRow struct {
	Date      string `csv:"date"`
	MarketCap string `csv:"marketCap"`
}

func (h csvStatementRepositoryHandler) path(symbol, name string) string {
	return filepath.Join(h.DataDir, strings.ToUpper(symbol), name+".csv")
}

func readCsv[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []T{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

func (h csvStatementRepositoryHandler) ListIncomeStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error) {
	rows, err := readCsv[incomeStatementCsvRow](h.path(symbol, "income"))
	if err != nil {
		return nil, err
	}

	out := []domain.StatementRecord{}
	for _, row := range rows {
		record, err := newCsvStatementRecord(symbol, domain.StatementKind_Income, row.Date, row.CalendarYear, map[string]string{
			domain.FieldRevenue:   row.Revenue,
			domain.FieldNetIncome: row.NetIncome,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	domain.SortStatements(out)

	return out, nil
}

func (h csvStatementRepositoryHandler) ListBalanceSheetStatements(ctx context.Context, symbol string) ([]domain.StatementRecord, error) {
	rows, err := readCsv[balanceSheetCsvRow](h.path(symbol, "balance_sheet"))
	if err != nil {
		return nil, err
	}

	out := []domain.StatementRecord{}
	for _, row := range rows {
		record, err := newCsvStatementRecord(symbol, domain.StatementKind_BalanceSheet, row.Date, row.CalendarYear, map[string]string{
			domain.FieldTotalAssets:                 row.TotalAssets,
			domain.FieldTotalCurrentAssets:          row.TotalCurrentAssets,
			domain.FieldTotalNonCurrentAssets:       row.TotalNonCurrentAssets,
			domain.FieldTotalLiabilities:            row.TotalLiabilities,
			domain.FieldTotalCurrentLiabilities:     row.TotalCurrentLiabilities,
			domain.FieldTotalStockholdersEquity:     row.TotalStockholdersEquity,
			domain.FieldTotalEquity:                 row.TotalEquity,
			domain.FieldCashAndShortTermInvestments: row.CashAndShortTermInvestments,
			domain.FieldGoodwillAndIntangibleAssets: row.GoodwillAndIntangibleAssets,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	domain.SortStatements(out)

	return out, nil
}

// ListMarketCaps drops observations after until, the same window the api applies
func (h csvStatementRepositoryHandler) ListMarketCaps(ctx context.Context, symbol string, until time.Time) ([]domain.MarketCapObservation, error) {
	rows, err := readCsv[marketCapCsvRow](h.path(symbol, "market_cap"))
	if err != nil {
		return nil, err
	}

	out := []domain.MarketCapObservation{}
	for _, row := range rows {
		date, err := util.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse market cap date %q for %s: %w", row.Date, symbol, err)
		}
		if !util.DateLte(date, until) {
			continue
		}
		marketCap, err := decimal.NewFromString(row.MarketCap)
		if err != nil {
			return nil, fmt.Errorf("failed to parse market cap %q for %s: %w", row.MarketCap, symbol, err)
		}
		out = append(out, domain.MarketCapObservation{
			Symbol:    symbol,
			Date:      date,
			MarketCap: marketCap,
		})
	}
	domain.SortMarketCaps(out)

	return out, nil
}

// newCsvStatementRecord skips empty cells so they read as missing fields
func newCsvStatementRecord(symbol string, kind domain.StatementKind, rawDate, calendarYear string, rawFields map[string]string) (*domain.StatementRecord, error) {
	date, err := util.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s statement date %q for %s: %w", kind, rawDate, symbol, err)
	}
	fiscalYear, err := parseFiscalYear(calendarYear, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s statement year for %s: %w", kind, symbol, err)
	}

	fields := domain.Fields{}
	for k, v := range rawFields {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s=%q for %s %d: %w", k, v, symbol, fiscalYear, err)
		}
		fields[k] = d
	}

	return &domain.StatementRecord{
		Symbol:     symbol,
		Kind:       kind,
		Date:       date,
		FiscalYear: fiscalYear,
		Fields:     fields,
	}, nil
}
