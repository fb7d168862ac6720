package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	blankCell     = " "
	percentSuffix = "\u00a0%"
)

var hundred = decimal.NewFromInt(100)

// FormatValue renders a cell with two decimal places. Percent values are
// scaled by 100 and suffixed with a non-breaking space and a percent sign.
func FormatValue(v decimal.NullDecimal, kind FormatKind) string {
	if !v.Valid {
		return blankCell
	}
	if kind == FormatKind_Percent {
		return v.Decimal.Mul(hundred).StringFixed(2) + percentSuffix
	}
	return v.Decimal.StringFixed(2)
}

// ParseValue is the inverse of FormatValue, up to the rounding it applied
func ParseValue(s string, kind FormatKind) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}

	raw := s
	if kind == FormatKind_Percent {
		raw = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to parse %q as %s: %w", s, kind, err)
	}
	if kind == FormatKind_Percent {
		d = d.Div(hundred)
	}

	return decimal.NullDecimal{
		Decimal: d,
		Valid:   true,
	}, nil
}
