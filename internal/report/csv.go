package report

import (
	"finspan/internal/calculator"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

type metricCsvRow struct {
	Symbol     string `csv:"symbol"`
	FiscalYear string `csv:"fiscal_year"`
	Value      string `csv:"value"`
	Formatted  string `csv:"formatted"`
}

const averageFiscalYear = "average"

// WriteCsv stages a table in long format, one line per symbol and year
// plus one average line per symbol. Blank cells have an empty value.
func WriteCsv(w io.Writer, table calculator.MetricTable) error {
	rows := []metricCsvRow{}
	for _, row := range table.Rows {
		for i, c := range row.Cells {
			value := ""
			if c.Valid {
				value = c.Decimal.String()
			}
			rows = append(rows, metricCsvRow{
				Symbol:     row.Symbol,
				FiscalYear: strconv.Itoa(table.Years[i]),
				Value:      value,
				Formatted:  calculator.FormatValue(c, table.Metric.Kind),
			})
		}

		average := ""
		if row.Average.Valid {
			average = row.Average.Decimal.String()
		}
		rows = append(rows, metricCsvRow{
			Symbol:     row.Symbol,
			FiscalYear: averageFiscalYear,
			Value:      average,
			Formatted:  calculator.FormatValue(row.Average, table.Metric.Kind),
		})
	}

	return gocsv.Marshal(&rows, w)
}
