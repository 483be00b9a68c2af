package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/urisc/emu"
)

// ClockedResult reports a clocked run.
type ClockedResult struct {
	Cycles int
	// SimulatedSeconds is Cycles at the configured frequency.
	SimulatedSeconds float64
}

// clockedDriver steps the pipeline once per tick of an akita ticking
// component.
type clockedDriver struct {
	*sim.TickingComponent

	core   *Core
	budget int
	cycles int
	err    error
}

// Tick implements sim.Ticker.
func (d *clockedDriver) Tick() bool {
	if d.cycles >= d.budget || !emu.InProgram(d.core.PC()) {
		return false
	}

	if _, err := d.core.Pipeline.Step(); err != nil {
		d.err = err
		return false
	}

	d.cycles++
	return true
}

// RunClocked executes the program on a serial akita engine, one pipeline
// cycle per tick at the configured frequency. Cycle semantics match Run.
// A non-positive maxCycles uses the configured budget.
func (c *Core) RunClocked(maxCycles int) (ClockedResult, error) {
	if maxCycles <= 0 {
		maxCycles = c.config.MaxCycles
	}

	freq := sim.Freq(c.config.FrequencyMHz) * sim.MHz
	engine := sim.NewSerialEngine()

	driver := &clockedDriver{core: c, budget: maxCycles}
	driver.TickingComponent = sim.NewTickingComponent("Core", engine, freq, driver)

	c.clocked = true
	defer func() { c.clocked = false }()

	driver.TickLater()
	if err := engine.Run(); err != nil {
		return ClockedResult{Cycles: driver.cycles}, fmt.Errorf("clocked run failed: %w", err)
	}

	result := ClockedResult{
		Cycles:           driver.cycles,
		SimulatedSeconds: float64(driver.cycles) / float64(freq),
	}

	return result, driver.err
}
