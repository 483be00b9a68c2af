// Package benchmarks provides timing benchmarks for the µRISC pipeline.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/timing/core"
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Cycles is the total cycle count from the timing simulator
	Cycles uint64 `json:"cycles"`

	// Instructions is the number of retired instructions
	Instructions uint64 `json:"instructions"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// Stalls is the number of hazard stall cycles
	Stalls uint64 `json:"stalls"`

	// BranchesTaken is the number of taken branches
	BranchesTaken uint64 `json:"branches_taken"`

	// Passed reports whether the checked register held the expected value
	Passed bool `json:"passed"`

	// Err is set when the benchmark could not run
	Err string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the core state (e.g., initialize registers, memory)
	Setup func(c *core.Core)

	// Source is the assembly program
	Source string

	// CheckReg and Expected validate the result.
	CheckReg uint8
	Expected uint32
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// MaxCycles is the per-benchmark cycle budget
	MaxCycles int

	// Clocked runs benchmarks on the akita engine instead of Run
	Clocked bool

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables assembler logging
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		MaxCycles: 1000,
		Output:    os.Stdout,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.MaxCycles <= 0 {
		config.MaxCycles = DefaultConfig().MaxCycles
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh core.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	assembler := &asm.Assembler{Verbose: h.config.Verbose}
	prog, err := assembler.Assemble(bench.Source)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	config := core.DefaultConfig()
	config.MaxCycles = h.config.MaxCycles
	c := core.NewCore(core.WithConfig(config))

	if bench.Setup != nil {
		bench.Setup(c)
	}

	if err := c.LoadProgram(prog.Listing()); err != nil {
		result.Err = err.Error()
		return result
	}

	start := time.Now()
	if h.config.Clocked {
		_, err = c.RunClocked(0)
	} else {
		_, err = c.Run(0)
	}
	result.WallTime = time.Since(start)

	if err != nil {
		result.Err = err.Error()
	}

	stats := c.Stats()
	result.Cycles = stats.Cycles
	result.Instructions = stats.Instructions
	result.CPI = stats.CPI()
	result.Stalls = stats.Stalls
	result.BranchesTaken = stats.BranchesTaken
	result.Passed = err == nil && c.GetRegister(bench.CheckReg) == bench.Expected

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== µRISC Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		if r.Err != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Err)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Passed: %v\n", r.Passed)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles:         %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions:   %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:            %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Stall Cycles:   %d\n", r.Stalls)
		_, _ = fmt.Fprintf(h.config.Output, "  Branches Taken: %d\n", r.BranchesTaken)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "name,cycles,instructions,cpi,stalls,branches_taken,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%v\n",
			r.Name,
			r.Cycles,
			r.Instructions,
			r.CPI,
			r.Stalls,
			r.BranchesTaken,
			r.Passed,
		)
	}
}

// PrintJSON outputs benchmark results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
