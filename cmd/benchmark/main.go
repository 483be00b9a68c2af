// Command benchmark runs the µRISC timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv         Output results in CSV format (default: human-readable)
//	-json        Output results as JSON
//	-core        Run only the core benchmark subset
//	-clocked     Run each benchmark on the akita engine
//	-max-cycles  Per-benchmark cycle budget
//
// Example:
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/urisc/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	coreOnly := flag.Bool("core", false, "Run only the core benchmark subset")
	clocked := flag.Bool("clocked", false, "Run benchmarks on the akita engine")
	maxCycles := flag.Int("max-cycles", benchmarks.DefaultConfig().MaxCycles, "Per-benchmark cycle budget")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Clocked = *clocked
	config.MaxCycles = *maxCycles
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		fmt.Println("µRISC Timing Benchmark Harness")
		fmt.Println("==============================")
		fmt.Printf("Clocked: %v\n", config.Clocked)
		fmt.Printf("Max cycles: %d\n", config.MaxCycles)
		fmt.Println("")
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Passed {
			os.Exit(1)
		}
	}
}
