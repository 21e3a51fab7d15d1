package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_consumption/internal/analysis"
	"energy_consumption/internal/chart"
	"energy_consumption/internal/config"
	"energy_consumption/internal/export"
	"energy_consumption/internal/ingest"
	"energy_consumption/internal/model"
	"energy_consumption/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		flags      config.Config
	)

	cmd := &cobra.Command{
		Use:   "energy-chart",
		Short: "Chart monthly renewables vs fossil fuel consumption for " + model.DefaultScope.Country,
		Long: fmt.Sprintf("Reads a monthly electricity statistics CSV, keeps %s between %d and %d,\n"+
			"sums products into Renewables and Fossil Fuels, and draws one line per category and year.",
			model.DefaultScope.Country, model.DefaultScope.StartYear, model.DefaultScope.EndYear),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Override(flags); err != nil {
				return fmt.Errorf("applying flags: %w", err)
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return run(cfg, logger, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "optional YAML config file")
	f.StringVarP(&flags.Input, "input", "i", "", "energy consumption CSV (default "+config.Default().Input+")")
	f.StringVarP(&flags.Output, "output", "o", "", "chart file (default "+config.Default().Output+")")
	f.StringVar(&flags.Format, "format", "", "chart format: png, svg, pdf, jpg, eps, tif (default from output extension)")
	f.StringVar(&flags.CSV, "csv", "", "also write the monthly series as CSV")
	f.StringVar(&flags.Workbook, "xlsx", "", "also write the monthly series and yearly totals as XLSX")
	f.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// run executes the analysis and writes the chart, any requested exports and
// the yearly summary table.
func run(cfg config.Config, logger *zap.Logger, out io.Writer) error {
	logger.Info("Loading energy data", zap.String("path", cfg.Input))

	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.Input, err)
	}
	res, err := analysis.Run(ingest.NewEnergyParser(), in, model.DefaultScope, logger)
	in.Close()
	if err != nil {
		return err
	}

	if err := chart.Save(cfg.Output, res.Store, chart.DefaultOptions(res.Scope), cfg.Format); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	logger.Info("Chart written", zap.String("path", cfg.Output))

	if cfg.CSV != "" {
		if err := writeCSV(cfg.CSV, res); err != nil {
			return err
		}
		logger.Info("CSV written", zap.String("path", cfg.CSV))
	}

	if cfg.Workbook != "" {
		data, err := export.Workbook(res.Store.All(), res.Totals)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		if err := os.WriteFile(cfg.Workbook, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Workbook, err)
		}
		logger.Info("Workbook written", zap.String("path", cfg.Workbook))
	}

	fmt.Fprintln(out, res.Scope.Title())
	report.YearlyTable(out, res.Totals)
	return nil
}

func writeCSV(path string, res *analysis.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteCSV(f, res.Store.All()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
