package calculator

import (
	"finspan/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fields(kv map[string]int64) domain.Fields {
	out := domain.Fields{}
	for k, v := range kv {
		out[k] = decimal.NewFromInt(v)
	}
	return out
}

func evaluate(t *testing.T, id string, in FormulaInput) decimal.NullDecimal {
	t.Helper()
	m, ok := LookupMetric(id)
	require.True(t, ok, "metric %s not in catalogue", id)
	return m.Formula(in)
}

func TestCatalogue(t *testing.T) {
	t.Run("ids are unique and ordered", func(t *testing.T) {
		ids := []string{}
		seen := map[string]bool{}
		for _, m := range Catalogue() {
			require.False(t, seen[m.ID], "duplicate metric %s", m.ID)
			seen[m.ID] = true
			ids = append(ids, m.ID)
			require.NotNil(t, m.Formula)
			require.NotEmpty(t, m.Name)
		}

		require.Equal(t, []string{
			"roa",
			"roe",
			"asset_turnover",
			"profit_margin",
			"equity_multiplier",
			"roe_market_cap",
			"current_assets_share",
			"non_current_assets_share",
			"equity_share",
			"liabilities_share",
			"liquidity",
			"solvency",
			"p_e",
			"p_s",
			"p_b",
		}, ids)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := Catalogue()
		c[0].ID = "changed"
		require.Equal(t, "roa", Catalogue()[0].ID)
	})
}

func TestMetricFormulas(t *testing.T) {
	t.Run("roa", func(t *testing.T) {
		value := evaluate(t, "roa", FormulaInput{
			Income:       domain.StatementRecord{Fields: fields(map[string]int64{domain.FieldNetIncome: 100})},
			BalanceSheet: domain.StatementRecord{Fields: fields(map[string]int64{domain.FieldTotalAssets: 1000})},
		})

		require.True(t, value.Valid)
		require.True(t, value.Decimal.Equal(decimal.RequireFromString("0.1")))
		require.Equal(t, "10.00\u00a0%", FormatValue(value, FormatKind_Percent))
	})

	t.Run("p_b uses book value", func(t *testing.T) {
		value := evaluate(t, "p_b", FormulaInput{
			BalanceSheet: domain.StatementRecord{Fields: fields(map[string]int64{
				domain.FieldTotalAssets:                 1000,
				domain.FieldGoodwillAndIntangibleAssets: 200,
				domain.FieldTotalLiabilities:            500,
			})},
			MarketCap: domain.MarketCapObservation{MarketCap: decimal.NewFromInt(4000)},
		})

		require.True(t, value.Valid)
		require.Equal(t, "13.33", FormatValue(value, FormatKind_Decimal))
	})

	t.Run("zero book value is undefined", func(t *testing.T) {
		value := evaluate(t, "p_b", FormulaInput{
			BalanceSheet: domain.StatementRecord{Fields: fields(map[string]int64{
				domain.FieldTotalAssets:                 700,
				domain.FieldGoodwillAndIntangibleAssets: 200,
				domain.FieldTotalLiabilities:            500,
			})},
			MarketCap: domain.MarketCapObservation{MarketCap: decimal.NewFromInt(4000)},
		})

		require.False(t, value.Valid)
	})

	t.Run("profit margin with zero revenue is undefined", func(t *testing.T) {
		value := evaluate(t, "profit_margin", FormulaInput{
			Income: domain.StatementRecord{Fields: fields(map[string]int64{
				domain.FieldNetIncome: 100,
				domain.FieldRevenue:   0,
			})},
		})

		require.False(t, value.Valid)
		require.Equal(t, " ", FormatValue(value, FormatKind_Decimal))
	})

	t.Run("p_e with zero net income is undefined", func(t *testing.T) {
		value := evaluate(t, "p_e", FormulaInput{
			Income:    domain.StatementRecord{Fields: fields(map[string]int64{domain.FieldNetIncome: 0})},
			MarketCap: domain.MarketCapObservation{MarketCap: decimal.NewFromInt(4000)},
		})

		require.False(t, value.Valid)
	})

	t.Run("missing field is undefined", func(t *testing.T) {
		value := evaluate(t, "liquidity", FormulaInput{
			BalanceSheet: domain.StatementRecord{Fields: fields(map[string]int64{
				domain.FieldTotalCurrentLiabilities: 50,
			})},
		})

		require.False(t, value.Valid)
	})

	t.Run("negative net income stays negative", func(t *testing.T) {
		value := evaluate(t, "roe_market_cap", FormulaInput{
			Income:    domain.StatementRecord{Fields: fields(map[string]int64{domain.FieldNetIncome: -50})},
			MarketCap: domain.MarketCapObservation{MarketCap: decimal.NewFromInt(1000)},
		})

		require.True(t, value.Valid)
		require.Equal(t, "-5.00\u00a0%", FormatValue(value, FormatKind_Percent))
	})
}
