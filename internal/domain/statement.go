package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// field names as reported by the statement source
const (
	FieldRevenue                     = "revenue"
	FieldNetIncome                   = "netIncome"
	FieldTotalAssets                 = "totalAssets"
	FieldTotalCurrentAssets          = "totalCurrentAssets"
	FieldTotalNonCurrentAssets       = "totalNonCurrentAssets"
	FieldTotalLiabilities            = "totalLiabilities"
	FieldTotalCurrentLiabilities     = "totalCurrentLiabilities"
	FieldTotalStockholdersEquity     = "totalStockholdersEquity"
	FieldTotalEquity                 = "totalEquity"
	FieldCashAndShortTermInvestments = "cashAndShortTermInvestments"
	FieldGoodwillAndIntangibleAssets = "goodwillAndIntangibleAssets"
)

type StatementKind string

const (
	StatementKind_Income       StatementKind = "income"
	StatementKind_BalanceSheet StatementKind = "balance_sheet"
)

type Fields map[string]decimal.Decimal

// StatementRecord is one annual income or balance sheet statement
type StatementRecord struct {
	Symbol     string
	Kind       StatementKind
	Date       time.Time
	FiscalYear int
	Fields     Fields
}

func (s StatementRecord) Get(field string) (decimal.Decimal, bool) {
	v, ok := s.Fields[field]
	return v, ok
}

type MarketCapObservation struct {
	Symbol    string
	Date      time.Time
	MarketCap decimal.Decimal
}

// StatementSet holds everything fetched for a single company
type StatementSet struct {
	Symbol                 string
	IncomeStatements       []StatementRecord
	BalanceSheetStatements []StatementRecord
	MarketCaps             []MarketCapObservation
}

func SortStatements(statements []StatementRecord) {
	sort.SliceStable(statements, func(i, j int) bool {
		return statements[i].Date.Before(statements[j].Date)
	})
}

func SortMarketCaps(marketCaps []MarketCapObservation) {
	sort.SliceStable(marketCaps, func(i, j int) bool {
		return marketCaps[i].Date.Before(marketCaps[j].Date)
	})
}

// MarketCapWindowEnd is how far market caps need to be fetched so the
// latest statement still has a subsequent quote
func MarketCapWindowEnd(latestStatementDate time.Time) time.Time {
	return latestStatementDate.AddDate(0, 1, 0)
}
