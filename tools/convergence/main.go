package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rpgo/zcbond/internal/calculation"
	"github.com/rpgo/zcbond/internal/config"
	"github.com/rpgo/zcbond/internal/output"
)

// Prints the Monte Carlo error against the analytic price for a growing number
// of paths on the reference model. An optional argument names a YAML config.
func main() {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	if len(os.Args) > 1 {
		loaded, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = 12345
	}

	engine := calculation.NewPricingEngine()

	fmt.Printf("%8s  %-10s  %-10s  %-10s  %s\n", "paths", "numerical", "analytic", "std err", "diff / se")
	for _, n := range []int{100, 1000, 10000, 100000} {
		cfg.Simulation.Paths = n
		results, err := engine.Run(cfg, nil)
		if err != nil {
			log.Fatal(err)
		}
		ag := output.AnalyzeComparison(results)
		fmt.Printf("%8d  %-10s  %-10s  %-10.3e  %+.2f\n",
			n,
			output.FormatPrice(results.Numerical.Price),
			output.FormatPrice(results.Analytic.Price),
			results.Numerical.StandardError,
			ag.StandardErrors,
		)
	}
}
