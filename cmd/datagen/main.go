package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aditi/profilecore/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		partners        = flag.Int("partners", cfg.NumPartners, "number of partners to generate")
		transactions    = flag.Int("transactions", cfg.NumTransactions, "number of transactions to generate")
		noFootprint     = flag.Float64("no-footprint-chance", cfg.NoFootprintChance, "probability a partner has no business relationships")
		badAmountChance = flag.Float64("bad-amount-chance", cfg.BadAmountChance, "probability a transaction amount is non-numeric")
		noteChance      = flag.Float64("note-chance", cfg.NoteChance, "probability a partner has an onboarding note")
		seed            = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir       = flag.String("output-dir", "data", "directory to write the seven source tables")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumPartners:       *partners,
		NumTransactions:   *transactions,
		NoFootprintChance: clampProbability(*noFootprint),
		BadAmountChance:   clampProbability(*badAmountChance),
		NoteChance:        clampProbability(*noteChance),
		Seed:              *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d partners and %d transactions into %s\n",
		len(dataset.Partners.Rows), len(dataset.Transactions.Rows), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
