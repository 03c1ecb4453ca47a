package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/zcbond/internal/calculation"
	"github.com/rpgo/zcbond/internal/config"
	"github.com/rpgo/zcbond/internal/domain"
	"github.com/rpgo/zcbond/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile    string
	seed          uint64
	paths         int
	steps         int
	workers       int
	format        string
	spotRate      string
	valuationTime float64
	pathOut       string
	verbose       bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "zcbond",
		Short: "Price a zero-coupon bond under the Hull-White one-factor model",
		Long: `zcbond prices a zero-coupon bond paying 1 at maturity T = steps * time_step
twice: by averaging Monte Carlo discount factors over Euler paths of the short
rate, and by the analytic H1/H2 formula. Without flags it runs the reference
configuration (100000 paths, 500 steps of 0.01, r0 = 5%).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPricing(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file (default: reference configuration)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed; 0 picks one and reports it")
	f.IntVar(&opts.paths, "paths", 0, "number of Monte Carlo paths")
	f.IntVar(&opts.steps, "steps", 0, "number of Euler steps")
	f.IntVar(&opts.workers, "workers", 0, "parallel workers; 1 keeps the single-stream draw order")
	f.StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), "|"))
	f.StringVar(&opts.spotRate, "spot-rate", "", "analytic spot rate mode: simulated or deterministic")
	f.Float64Var(&opts.valuationTime, "valuation-time", 0, "valuation time t of the analytic price, in years")
	f.StringVar(&opts.pathOut, "path-out", "", "write one sample short-rate path to this file (.csv for CSV)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(newExampleCmd(stdout))
	return cmd
}

func runPricing(cmd *cobra.Command, opts *rootOptions, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, opts.verbose)
	parser := config.NewInputParser()

	var cfg *domain.Configuration
	if opts.configFile != "" {
		loaded, err := parser.ParseFile(opts.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
	}

	applyOverrides(cmd, opts, cfg)
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	engine := calculation.NewPricingEngine()
	engine.SetLogger(logger)

	var results *domain.PricingComparison
	pathFile := opts.pathOut
	if pathFile == "" {
		pathFile = cfg.Output.PathFile
	}
	if pathFile != "" {
		pf, err := output.CreatePathFile(pathFile)
		if err != nil {
			return err
		}
		results, err = engine.Run(cfg, pf)
		if err != nil {
			_ = pf.Discard()
			return err
		}
		if err := pf.Close(); err != nil {
			return err
		}
		logger.Infof("sample path written to %s", pathFile)
	} else {
		var err error
		results, err = engine.Run(cfg, nil)
		if err != nil {
			return err
		}
	}

	if ag := output.AnalyzeComparison(results); !ag.Consistent {
		logger.Warnf("numerical and analytic prices differ by %s (%.2f standard errors)",
			output.FormatBasisPoints(ag.DifferenceBP), ag.StandardErrors)
	}

	return output.GenerateReport(stdout, results, cfg.Output.Format)
}

// applyOverrides copies the flags the user actually set onto cfg.
func applyOverrides(cmd *cobra.Command, opts *rootOptions, cfg *domain.Configuration) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Simulation.Seed = opts.seed
	}
	if flags.Changed("paths") {
		cfg.Simulation.Paths = opts.paths
	}
	if flags.Changed("steps") {
		cfg.Simulation.Steps = opts.steps
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = opts.workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("spot-rate") {
		cfg.Analytic.SpotRate = domain.SpotRateMode(opts.spotRate)
	}
	if flags.Changed("valuation-time") {
		cfg.Analytic.ValuationTime = decimal.NewFromFloat(opts.valuationTime)
	}
}
