package report

import (
	"errors"
	"finspan/internal/calculator"
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
)

var ErrNoChartData = errors.New("no defined values to chart")

type chartLine struct {
	Symbol string
	Years  []float64
	Values []float64
}

// chartLines keeps only defined values, so undefined years are skipped
// rather than drawn as zero
func chartLines(table calculator.MetricTable) []chartLine {
	out := []chartLine{}
	for _, row := range table.Rows {
		line := chartLine{Symbol: row.Symbol}
		for i, c := range row.Cells {
			if !c.Valid {
				continue
			}
			line.Years = append(line.Years, float64(table.Years[i]))
			line.Values = append(line.Values, c.Decimal.InexactFloat64())
		}
		if len(line.Values) > 0 {
			out = append(out, line)
		}
	}
	return out
}

// yRange starts at zero unless a value is negative
func yRange(lines []chartLine) (float64, float64, error) {
	values := []float64{}
	for _, l := range lines {
		values = append(values, l.Values...)
	}

	lo, err := stats.Min(values)
	if err != nil {
		return 0, 0, err
	}
	hi, err := stats.Max(values)
	if err != nil {
		return 0, 0, err
	}

	bottom := 0.0
	if lo < 0 {
		bottom = lo
	}
	top := hi
	if top <= bottom {
		top = bottom + 1
	}
	headroom := (top - bottom) * 0.05
	if bottom < 0 {
		bottom -= headroom
	}

	return bottom, top + headroom, nil
}

// RenderChart draws one line per company across the table's fiscal years as a PNG
func RenderChart(w io.Writer, table calculator.MetricTable) error {
	lines := chartLines(table)
	if len(lines) == 0 {
		return ErrNoChartData
	}

	bottom, top, err := yRange(lines)
	if err != nil {
		return fmt.Errorf("failed to compute y range: %w", err)
	}

	ticks := []chart.Tick{}
	for _, y := range table.Years {
		ticks = append(ticks, chart.Tick{
			Value: float64(y),
			Label: strconv.Itoa(y),
		})
	}

	series := []chart.Series{}
	for _, l := range lines {
		series = append(series, chart.ContinuousSeries{
			Name:    l.Symbol,
			XValues: l.Years,
			YValues: l.Values,
		})
	}

	yFormatter := func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', 2, 64)
		}
		return ""
	}
	if table.Metric.Kind == calculator.FormatKind_Percent {
		yFormatter = chart.PercentValueFormatter
	}

	graph := chart.Chart{
		Title:  table.Metric.Name,
		Width:  1200,
		Height: 700,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{
				Min: float64(table.Years[0]) - 0.5,
				Max: float64(table.Years[len(table.Years)-1]) + 0.5,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: yFormatter,
			Range: &chart.ContinuousRange{
				Min: bottom,
				Max: top,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorLightGray,
				StrokeWidth: 1,
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", table.Metric.ID, err)
	}

	return nil
}
