package main

import (
	"context"
	"finspan/cmd"
	"finspan/internal/logger"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	symbols     []string
	outDir      string
	source      string
	dataDir     string
	concurrency int
)

var rootCmd = &cobra.Command{
	Use:   "finspan [symbols...]",
	Short: "Compare fundamental ratios across companies",
	Long: `Fetches annual income statements, balance sheets and market caps for each
company, computes a fixed set of financial ratios per fiscal year and writes
one chart, one csv and one table per ratio into a single html report.`,
	Example: "  finspan --symbols AAPL,MSFT,GOOG --out ./analysis",
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringSliceVar(&symbols, "symbols", nil, "Ticker symbols to compare")
	rootCmd.Flags().StringVar(&outDir, "out", "./analysis", "Output directory for charts, csv files and analysis.html")
	rootCmd.Flags().StringVar(&source, "source", cmd.Source_Fmp, "Statement source (fmp, csv)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory with <SYMBOL>/{income,balance_sheet,market_cap}.csv for the csv source")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Companies fetched in parallel")
}

func run(c *cobra.Command, args []string) error {
	all := append(append([]string{}, symbols...), args...)
	if len(all) == 0 {
		return fmt.Errorf("no symbols given, use --symbols or pass them as arguments")
	}

	log := logger.New()
	defer log.Sync()
	ctx := logger.WithLogger(context.Background(), log)

	analysisService, err := cmd.InitializeDependencies(cmd.Options{
		Source:      source,
		DataDir:     dataDir,
		OutDir:      outDir,
		Concurrency: concurrency,
	})
	if err != nil {
		return err
	}

	path, err := analysisService.Run(ctx, all)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
