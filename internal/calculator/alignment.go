package calculator

import (
	"context"
	"finspan/internal/domain"
	"finspan/internal/logger"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CompanySeries is the computed output for one company. Years holds only
// the fiscal years that were matched to a market cap quote, and every
// Values entry is parallel to Years.
type CompanySeries struct {
	Symbol string
	Years  []int
	Values map[string][]decimal.NullDecimal
}

// ComputeCompanySeries pairs each income statement with the balance sheet
// statement at the same position, matches the pair to the first market cap
// observation on or after the statement date and evaluates every metric.
// Years without a subsequent quote are dropped.
//
// All three sequences must already be sorted by date.
func ComputeCompanySeries(ctx context.Context, set domain.StatementSet, metrics []MetricDefinition) (*CompanySeries, error) {
	log := logger.FromContext(ctx)

	if err := validatePeriods(set); err != nil {
		return nil, err
	}

	out := &CompanySeries{
		Symbol: set.Symbol,
		Years:  []int{},
		Values: map[string][]decimal.NullDecimal{},
	}
	for _, m := range metrics {
		out.Values[m.ID] = []decimal.NullDecimal{}
	}

	for i, incomeStatement := range set.IncomeStatements {
		balanceSheetStatement := set.BalanceSheetStatements[i]

		quote, ok := firstQuoteOnOrAfter(set.MarketCaps, incomeStatement.Date)
		if !ok {
			log.Infow(
				"no market cap on or after statement date - dropping fiscal year",
				"symbol", set.Symbol,
				"fiscalYear", incomeStatement.FiscalYear,
				"statementDate", incomeStatement.Date.Format(time.DateOnly),
			)
			continue
		}

		in := FormulaInput{
			Income:       incomeStatement,
			BalanceSheet: balanceSheetStatement,
			MarketCap:    quote,
		}
		out.Years = append(out.Years, incomeStatement.FiscalYear)
		for _, m := range metrics {
			value := m.Formula(in)
			if !value.Valid {
				log.Debugw(
					"metric undefined",
					"symbol", set.Symbol,
					"fiscalYear", incomeStatement.FiscalYear,
					"metric", m.ID,
				)
			}
			out.Values[m.ID] = append(out.Values[m.ID], value)
		}
	}

	return out, nil
}

func validatePeriods(set domain.StatementSet) error {
	if len(set.IncomeStatements) != len(set.BalanceSheetStatements) {
		return fmt.Errorf(
			"%w: %s has %d income statements and %d balance sheet statements",
			domain.ErrUnalignedPeriods,
			set.Symbol,
			len(set.IncomeStatements),
			len(set.BalanceSheetStatements),
		)
	}

	for i := range set.IncomeStatements {
		is := set.IncomeStatements[i]
		bs := set.BalanceSheetStatements[i]
		if is.FiscalYear != bs.FiscalYear {
			return fmt.Errorf(
				"%w: %s statement %d has income fiscal year %d and balance sheet fiscal year %d",
				domain.ErrUnalignedPeriods,
				set.Symbol,
				i,
				is.FiscalYear,
				bs.FiscalYear,
			)
		}
		if i > 0 && is.FiscalYear <= set.IncomeStatements[i-1].FiscalYear {
			return fmt.Errorf(
				"%w: %s fiscal years are not strictly increasing (%d after %d)",
				domain.ErrUnalignedPeriods,
				set.Symbol,
				is.FiscalYear,
				set.IncomeStatements[i-1].FiscalYear,
			)
		}
	}

	return nil
}

// firstQuoteOnOrAfter assumes marketCaps is sorted ascending by date
func firstQuoteOnOrAfter(marketCaps []domain.MarketCapObservation, date time.Time) (domain.MarketCapObservation, bool) {
	i := sort.Search(len(marketCaps), func(i int) bool {
		return !marketCaps[i].Date.Before(date)
	})
	if i == len(marketCaps) {
		return domain.MarketCapObservation{}, false
	}
	return marketCaps[i], true
}
