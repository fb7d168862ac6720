package repository

import (
	"context"
	"finspan/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, symbol, name, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, symbol), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, symbol, name+".csv"), []byte(contents), 0o644))
}

func TestCsvStatementRepository(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "AAPL", "income", "date,calendarYear,revenue,netIncome\n"+
		"2022-09-24,2022,394328000000,99803000000\n"+
		"2021-09-25,2021,365817000000,94680000000\n")
	writeFixture(t, dir, "AAPL", "balance_sheet", "date,calendarYear,totalAssets,totalLiabilities,goodwillAndIntangibleAssets\n"+
		"2021-09-25,2021,351002000000,287912000000,\n"+
		"2022-09-24,2022,352755000000,302083000000,0\n")
	writeFixture(t, dir, "AAPL", "market_cap", "date,marketCap\n"+
		"2022-10-24,2388000000000\n"+
		"2021-09-27,2418000000000\n"+
		"2023-01-03,2000000000000\n")

	h := NewCsvStatementRepository(dir)
	ctx := context.Background()

	t.Run("income statements sorted by date", func(t *testing.T) {
		statements, err := h.ListIncomeStatements(ctx, "aapl")
		require.NoError(t, err)
		require.Len(t, statements, 2)

		require.Equal(t, 2021, statements[0].FiscalYear)
		require.Equal(t, 2022, statements[1].FiscalYear)
		require.Equal(t, domain.StatementKind_Income, statements[0].Kind)
		v, ok := statements[0].Get(domain.FieldNetIncome)
		require.True(t, ok)
		require.Equal(t, "94680000000", v.String())
	})

	t.Run("empty cells are missing fields", func(t *testing.T) {
		statements, err := h.ListBalanceSheetStatements(ctx, "AAPL")
		require.NoError(t, err)
		require.Len(t, statements, 2)

		_, ok := statements[0].Get(domain.FieldGoodwillAndIntangibleAssets)
		require.False(t, ok)
		_, ok = statements[0].Get(domain.FieldTotalEquity)
		require.False(t, ok)
		_, ok = statements[1].Get(domain.FieldGoodwillAndIntangibleAssets)
		require.True(t, ok)
	})

	t.Run("market caps limited to window", func(t *testing.T) {
		marketCaps, err := h.ListMarketCaps(ctx, "AAPL", time.Date(2022, 10, 24, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, marketCaps, 2)
		require.True(t, marketCaps[0].Date.Before(marketCaps[1].Date))
	})

	t.Run("missing symbol", func(t *testing.T) {
		_, err := h.ListIncomeStatements(ctx, "MSFT")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
