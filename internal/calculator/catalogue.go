package calculator

import (
	"finspan/internal/domain"

	"github.com/shopspring/decimal"
)

type FormatKind string

const (
	FormatKind_Percent FormatKind = "percent"
	FormatKind_Decimal FormatKind = "decimal"
)

// FormulaInput is the matched triple a metric is evaluated against
type FormulaInput struct {
	Income       domain.StatementRecord
	BalanceSheet domain.StatementRecord
	MarketCap    domain.MarketCapObservation
}

// Formula returns an invalid NullDecimal when the metric is undefined,
// e.g. a zero or missing denominator
type Formula func(in FormulaInput) decimal.NullDecimal

type MetricDefinition struct {
	ID      string
	Name    string
	Kind    FormatKind
	Formula Formula
}

var catalogue = []MetricDefinition{
	{
		ID:      "roa",
		Name:    "ROA",
		Kind:    FormatKind_Percent,
		Formula: quotient(income(domain.FieldNetIncome), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "roe",
		Name:    "ROE",
		Kind:    FormatKind_Percent,
		Formula: quotient(income(domain.FieldNetIncome), balanceSheet(domain.FieldTotalStockholdersEquity)),
	},
	{
		ID:      "asset_turnover",
		Name:    "Asset turnover",
		Kind:    FormatKind_Percent,
		Formula: quotient(income(domain.FieldRevenue), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "profit_margin",
		Name:    "Profit margin",
		Kind:    FormatKind_Decimal,
		Formula: quotient(income(domain.FieldNetIncome), income(domain.FieldRevenue)),
	},
	{
		ID:      "equity_multiplier",
		Name:    "Equity multiplier",
		Kind:    FormatKind_Decimal,
		Formula: quotient(balanceSheet(domain.FieldTotalAssets), balanceSheet(domain.FieldTotalStockholdersEquity)),
	},
	{
		ID:      "roe_market_cap",
		Name:    "ROE (market cap)",
		Kind:    FormatKind_Percent,
		Formula: quotient(income(domain.FieldNetIncome), marketCap),
	},
	{
		ID:      "current_assets_share",
		Name:    "Share of current assets",
		Kind:    FormatKind_Percent,
		Formula: quotient(balanceSheet(domain.FieldTotalCurrentAssets), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "non_current_assets_share",
		Name:    "Share of non-current assets",
		Kind:    FormatKind_Percent,
		Formula: quotient(balanceSheet(domain.FieldTotalNonCurrentAssets), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "equity_share",
		Name:    "Share of equity",
		Kind:    FormatKind_Percent,
		Formula: quotient(balanceSheet(domain.FieldTotalEquity), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "liabilities_share",
		Name:    "Share of liabilities",
		Kind:    FormatKind_Percent,
		Formula: quotient(balanceSheet(domain.FieldTotalLiabilities), balanceSheet(domain.FieldTotalAssets)),
	},
	{
		ID:      "liquidity",
		Name:    "Liquidity",
		Kind:    FormatKind_Decimal,
		Formula: quotient(balanceSheet(domain.FieldCashAndShortTermInvestments), balanceSheet(domain.FieldTotalCurrentLiabilities)),
	},
	{
		ID:      "solvency",
		Name:    "Solvency",
		Kind:    FormatKind_Decimal,
		Formula: quotient(balanceSheet(domain.FieldTotalLiabilities), balanceSheet(domain.FieldTotalStockholdersEquity)),
	},
	{
		ID:      "p_e",
		Name:    "P/E",
		Kind:    FormatKind_Decimal,
		Formula: quotient(marketCap, income(domain.FieldNetIncome)),
	},
	{
		ID:      "p_s",
		Name:    "P/S",
		Kind:    FormatKind_Decimal,
		Formula: quotient(marketCap, income(domain.FieldRevenue)),
	},
	{
		ID:      "p_b",
		Name:    "P/B",
		Kind:    FormatKind_Decimal,
		Formula: quotient(marketCap, bookValue),
	},
}

// Catalogue returns the metric definitions in report order. The slice is
// a copy; the definitions themselves are shared.
func Catalogue() []MetricDefinition {
	out := make([]MetricDefinition, len(catalogue))
	copy(out, catalogue)
	return out
}

func LookupMetric(id string) (MetricDefinition, bool) {
	for _, m := range catalogue {
		if m.ID == id {
			return m, true
		}
	}
	return MetricDefinition{}, false
}

type operand func(in FormulaInput) (decimal.Decimal, bool)

func income(field string) operand {
	return func(in FormulaInput) (decimal.Decimal, bool) {
		return in.Income.Get(field)
	}
}

func balanceSheet(field string) operand {
	return func(in FormulaInput) (decimal.Decimal, bool) {
		return in.BalanceSheet.Get(field)
	}
}

func marketCap(in FormulaInput) (decimal.Decimal, bool) {
	return in.MarketCap.MarketCap, true
}

// bookValue is total assets less goodwill/intangibles less total liabilities
func bookValue(in FormulaInput) (decimal.Decimal, bool) {
	assets, ok := in.BalanceSheet.Get(domain.FieldTotalAssets)
	if !ok {
		return decimal.Zero, false
	}
	intangibles, ok := in.BalanceSheet.Get(domain.FieldGoodwillAndIntangibleAssets)
	if !ok {
		return decimal.Zero, false
	}
	liabilities, ok := in.BalanceSheet.Get(domain.FieldTotalLiabilities)
	if !ok {
		return decimal.Zero, false
	}
	return assets.Sub(intangibles).Sub(liabilities), true
}

func quotient(numerator, denominator operand) Formula {
	return func(in FormulaInput) decimal.NullDecimal {
		n, ok := numerator(in)
		if !ok {
			return decimal.NullDecimal{}
		}
		d, ok := denominator(in)
		if !ok || d.IsZero() {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{
			Decimal: n.Div(d),
			Valid:   true,
		}
	}
}
