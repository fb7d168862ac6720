package calculator

import (
	"finspan/internal/domain"
	"fmt"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type MetricRow struct {
	Symbol string
	// one entry per global fiscal year; padding and undefined values are invalid
	Cells   []decimal.NullDecimal
	Average decimal.NullDecimal
}

type MetricTable struct {
	Metric MetricDefinition
	Years  []int
	Rows   []MetricRow
}

// GlobalYears is the sorted union of every company's own fiscal years
func GlobalYears(series []CompanySeries) []int {
	set := map[int]struct{}{}
	for _, s := range series {
		for _, y := range s.Years {
			set[y] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)

	return out
}

// AssembleTables builds one table per metric, in the order given. It needs
// every company's series up front since the year union spans all of them.
func AssembleTables(series []CompanySeries, metrics []MetricDefinition) ([]MetricTable, error) {
	years := GlobalYears(series)

	out := []MetricTable{}
	for _, m := range metrics {
		table := MetricTable{
			Metric: m,
			Years:  years,
			Rows:   []MetricRow{},
		}
		for _, s := range series {
			row, err := assembleRow(s, m.ID, years)
			if err != nil {
				return nil, fmt.Errorf("failed to assemble %s row for %s: %w", m.ID, s.Symbol, err)
			}
			table.Rows = append(table.Rows, *row)
		}
		out = append(out, table)
	}

	return out, nil
}

func assembleRow(s CompanySeries, metricID string, years []int) (*MetricRow, error) {
	values, ok := s.Values[metricID]
	if !ok {
		return nil, fmt.Errorf("no values computed for metric %s", metricID)
	}
	if len(values) != len(s.Years) {
		return nil, fmt.Errorf("%d values for %d fiscal years", len(values), len(s.Years))
	}

	cells := []decimal.NullDecimal{}
	if len(s.Years) == 0 {
		cells = make([]decimal.NullDecimal, len(years))
	} else {
		for i := 1; i < len(s.Years); i++ {
			if s.Years[i]-s.Years[i-1] != 1 {
				return nil, fmt.Errorf("%w: %d to %d", domain.ErrInteriorGap, s.Years[i-1], s.Years[i])
			}
		}

		leftPadding := s.Years[0] - years[0]
		rightPadding := years[len(years)-1] - s.Years[len(s.Years)-1]
		cells = append(cells, make([]decimal.NullDecimal, leftPadding)...)
		cells = append(cells, values...)
		cells = append(cells, make([]decimal.NullDecimal, rightPadding)...)

		if len(cells) != len(years) {
			return nil, fmt.Errorf("%w: %d cells for %d fiscal years", domain.ErrPaddingMismatch, len(cells), len(years))
		}
		for i, y := range s.Years {
			if years[leftPadding+i] != y {
				return nil, fmt.Errorf("%w: fiscal year %d landed in the %d column", domain.ErrPaddingMismatch, y, years[leftPadding+i])
			}
		}
	}

	average, err := averageOf(values)
	if err != nil {
		return nil, err
	}

	return &MetricRow{
		Symbol:  s.Symbol,
		Cells:   cells,
		Average: average,
	}, nil
}

// averageOf only considers defined values
func averageOf(values []decimal.NullDecimal) (decimal.NullDecimal, error) {
	data := []float64{}
	for _, v := range values {
		if v.Valid {
			data = append(data, v.Decimal.InexactFloat64())
		}
	}
	if len(data) == 0 {
		return decimal.NullDecimal{}, nil
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to compute average: %w", err)
	}

	return decimal.NullDecimal{
		Decimal: decimal.NewFromFloat(mean),
		Valid:   true,
	}, nil
}

// Header is the blank corner, the fiscal years and the average column
func (t MetricTable) Header() []string {
	out := []string{blankCell}
	for _, y := range t.Years {
		out = append(out, strconv.Itoa(y))
	}
	return append(out, "Average")
}

// FormattedRows renders each row as symbol, one cell per year and the average
func (t MetricTable) FormattedRows() [][]string {
	out := [][]string{}
	for _, row := range t.Rows {
		line := []string{row.Symbol}
		for _, c := range row.Cells {
			line = append(line, FormatValue(c, t.Metric.Kind))
		}
		line = append(line, FormatValue(row.Average, t.Metric.Kind))
		out = append(out, line)
	}
	return out
}
