// Package main provides the urisc command.
// It assembles or loads a µRISC program and runs it on the pipelined core.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/insts"
	"github.com/sarchlab/urisc/loader"
	"github.com/sarchlab/urisc/script"
	"github.com/sarchlab/urisc/timing/core"
	"github.com/sarchlab/urisc/timing/pipeline"
)

const (
	ansiStall = "\x1b[33m"
	ansiReset = "\x1b[0m"
)

func main() {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, color))
}

type options struct {
	listingOnly bool
	configPath  string
	maxCycles   int
	clocked     bool
	trace       bool
	scriptPath  string
	verbose     bool
}

// run is main without the process exit. It returns the exit status.
func run(args []string, stdout, stderr io.Writer, color bool) int {
	var opts options

	fs := flag.NewFlagSet("urisc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.listingOnly, "asm", false, "Assemble and print the listing only")
	fs.StringVar(&opts.configPath, "config", "", "Path to simulator configuration JSON file")
	fs.IntVar(&opts.maxCycles, "max-cycles", 0, "Cycle budget (overrides the configuration)")
	fs.BoolVar(&opts.clocked, "clocked", false, "Run on the akita engine")
	fs.BoolVar(&opts.trace, "trace", false, "Print the pipeline latches every cycle")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the loaded core")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: urisc [options] <program.s|program.hex>\n")
		_, _ = fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 && opts.scriptPath == "" {
		fs.Usage()
		return 1
	}

	if err := execute(fs.Arg(0), opts, stdout, color); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func execute(path string, opts options, stdout io.Writer, color bool) error {
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	assembler := &asm.Assembler{Verbose: opts.verbose}

	var prog *loader.Program
	if path != "" {
		prog, err = loader.LoadWith(assembler, path)
		if err != nil {
			return err
		}

		if opts.verbose {
			_, _ = fmt.Fprintf(stdout, "Loaded: %s\n", prog.Path)
			_, _ = fmt.Fprintf(stdout, "Words: %d\n", len(prog.Words))
			_, _ = fmt.Fprintf(stdout, "Labels: %d\n", len(prog.Labels))
		}

		if opts.listingOnly {
			_, _ = fmt.Fprintln(stdout, prog.Listing)
			return nil
		}
	}

	coreOpts := []core.Option{core.WithConfig(config)}
	if config.Trace {
		coreOpts = append(coreOpts, core.WithPipelineOptions(
			pipeline.WithCycleHook(traceHook(stdout, color)),
		))
	}
	c := core.NewCore(coreOpts...)

	if prog != nil {
		if err := prog.LoadInto(c); err != nil {
			return err
		}
	}

	if opts.scriptPath != "" {
		host := script.NewHost(c, script.WithAssembler(assembler))
		defer host.Close()

		if err := host.RunFile(opts.scriptPath); err != nil {
			return err
		}
	} else if err := runCore(c, opts.clocked, stdout); err != nil {
		printState(stdout, c)
		return err
	}

	printState(stdout, c)
	return nil
}

func loadConfig(opts options) (*core.Config, error) {
	config := core.DefaultConfig()
	if opts.configPath != "" {
		var err error
		config, err = core.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.maxCycles > 0 {
		config.MaxCycles = opts.maxCycles
	}
	if opts.trace {
		config.Trace = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func runCore(c *core.Core, clocked bool, stdout io.Writer) error {
	if !clocked {
		_, err := c.Run(0)
		return err
	}

	result, err := c.RunClocked(0)
	_, _ = fmt.Fprintf(stdout, "Simulated time: %.3f us\n", result.SimulatedSeconds*1e6)
	return err
}

// traceHook prints one line per committed cycle.
func traceHook(w io.Writer, color bool) func(pipeline.CycleInfo) {
	return func(info pipeline.CycleInfo) {
		l := info.Latches
		line := fmt.Sprintf("%4d pc=0x%02X IF/ID=%08X ID/EX=%08X EX/MEM=%08X MEM/WB=%08X  %s",
			info.Cycle, info.PC,
			l.IFID.IR, l.IDEX.IR, l.EXMEM.IR, l.MEMWB.IR,
			insts.Disassemble(l.IFID.IR))

		switch {
		case info.Stalled:
			line += fmt.Sprintf("  [stall x%d]", info.StallReg)
			if color {
				line = ansiStall + line + ansiReset
			}
		case info.BranchTaken:
			line += "  [branch]"
		}

		_, _ = fmt.Fprintln(w, line)
	}
}

func printState(w io.Writer, c *core.Core) {
	regs := c.Registers()

	_, _ = fmt.Fprintf(w, "\nRegisters:\n")
	for i := 0; i < emu.NumRegs; i += 4 {
		_, _ = fmt.Fprintf(w, "  x%-2d=0x%08X  x%-2d=0x%08X  x%-2d=0x%08X  x%-2d=0x%08X\n",
			i, regs[i], i+1, regs[i+1], i+2, regs[i+2], i+3, regs[i+3])
	}

	stats := c.Stats()
	_, _ = fmt.Fprintf(w, "\nPC: 0x%02X\n", c.PC())
	_, _ = fmt.Fprintf(w, "Total Cycles: %d\n", stats.Cycles)
	_, _ = fmt.Fprintf(w, "Total Instructions: %d\n", stats.Instructions)
	_, _ = fmt.Fprintf(w, "CPI: %.2f\n", stats.CPI())
	_, _ = fmt.Fprintf(w, "Stalls: %d\n", stats.Stalls)
	_, _ = fmt.Fprintf(w, "Branches Taken: %d\n", stats.BranchesTaken)
}
