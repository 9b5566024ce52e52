// Package main provides a performance benchmarking tool for nestscore scoring.
// It generates synthetic properties with random answers, scores and ranks them
// at several sizes and worker counts, treats the first run as cold and averages
// the rest as warm, and writes the timings to a CSV file.
//
// Usage: go run benchmark/main.go [runs]
//
//	runs: Number of timed runs per case (default 5)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/iostore"
	"github.com/huangsam/nestscore/schema"
)

// BenchmarkResult holds the timings of one case.
type BenchmarkResult struct {
	Properties int
	Workers    int
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Runs    int
	Sizes   []int
	Workers []int
	Seed    uint64
}

func main() {
	config := BenchmarkConfig{
		Runs:    5,
		Sizes:   []int{100, 1000, 10000},
		Workers: []int{1, 4, contract.DefaultWorkers},
		Seed:    42,
	}
	if len(os.Args) == 2 {
		runs, err := strconv.Atoi(os.Args[1])
		if err != nil || runs < 2 {
			fmt.Printf("Usage: %s [runs] (runs must be at least 2)\n", os.Args[0])
			os.Exit(1)
		}
		config.Runs = runs
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks scores every configured size with every worker count.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult
	cat := catalog.Default()
	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))

	fmt.Printf("Starting benchmark: %d sizes, %d worker counts, %d runs each\n",
		len(config.Sizes), len(config.Workers), config.Runs)

	for _, size := range config.Sizes {
		store := iostore.NewMemoryStore()
		for i := range size {
			if _, err := store.CreateProperty(randomProperty(cat, rng, i)); err != nil {
				return nil, err
			}
		}
		mgr := iostore.NewStoreManager(store, nil)

		for _, workers := range config.Workers {
			cfg := &contract.Config{
				ResultLimit: contract.DefaultResultLimit,
				Workers:     workers,
				Output:      schema.TextOut,
				SortBy:      schema.SortByScore,
				Catalog:     cat,
			}
			result, err := runBenchmark(config, cfg, mgr, size)
			if err != nil {
				return nil, err
			}
			results = append(results, result)
		}
	}
	return results, nil
}

// runBenchmark times repeated scoring runs and returns cold and warm averages.
func runBenchmark(config BenchmarkConfig, cfg *contract.Config, mgr contract.StoreManager, size int) (BenchmarkResult, error) {
	ctx := core.WithSuppressHeader(context.Background())
	fmt.Printf("Scoring %d properties with %d workers\n", size, cfg.Workers)

	var times []float64
	for range config.Runs {
		start := time.Now()
		if _, _, err := core.GetPropertyResults(ctx, cfg, mgr); err != nil {
			return BenchmarkResult{}, err
		}
		times = append(times, time.Since(start).Seconds())
	}

	var sum float64
	for _, t := range times[1:] {
		sum += t
	}
	return BenchmarkResult{
		Properties: size,
		Workers:    cfg.Workers,
		ColdTime:   fmt.Sprintf("%.4fs", times[0]),
		WarmTime:   fmt.Sprintf("%.4fs", sum/float64(len(times)-1)),
	}, nil
}

// randomProperty answers roughly two thirds of the catalogue at random.
func randomProperty(cat *catalog.Catalog, rng *rand.Rand, n int) schema.Property {
	answers := schema.Answers{}
	for _, category := range cat.Categories() {
		for _, q := range category.Questions {
			if rng.IntN(3) == 0 {
				continue
			}
			switch q.Type {
			case schema.BooleanQuestion:
				answers[q.ID] = schema.BoolAnswer(rng.IntN(2) == 1)
			case schema.ChoiceQuestion:
				if len(q.Options) > 0 {
					answers[q.ID] = schema.StringAnswer(q.Options[rng.IntN(len(q.Options))].Value)
				}
			case schema.NumericQuestion:
				lo, hi := q.Range()
				answers[q.ID] = schema.NumberAnswer(lo + rng.Float64()*(hi-lo))
			}
		}
	}
	return schema.Property{
		Name:     fmt.Sprintf("Property %d", n+1),
		Postcode: fmt.Sprintf("LS%d 1AA", n%30+1),
		Price:    150000 + rng.IntN(400000),
		Answers:  answers,
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/nestscore_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"properties", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{strconv.Itoa(r.Properties), strconv.Itoa(r.Workers), r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %6d properties, %2d workers: Cold: %s, Warm: %s\n", r.Properties, r.Workers, r.ColdTime, r.WarmTime)
	}
}
