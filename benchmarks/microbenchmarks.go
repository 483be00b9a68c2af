package benchmarks

import (
	"fmt"
	"strings"

	"github.com/sarchlab/urisc/timing/core"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets a specific pipeline characteristic.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		loadStore(),
		countedLoop(),
		branchOver(),
		arraySum(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation: a loop,
// a memory walk and a taken branch.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countedLoop(),
		arraySum(),
		branchOver(),
	}
}

// 1. Arithmetic Sequential - independent writes, no hazards
func arithmeticSequential() Benchmark {
	var b strings.Builder
	for reg := 1; reg <= 8; reg++ {
		_, _ = fmt.Fprintf(&b, "addi x%d, x0, %d\n", reg, reg)
	}

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "8 independent ADDIs - measures ALU throughput",
		Source:      b.String(),
		CheckReg:    8,
		Expected:    8,
	}
}

// 2. Dependency Chain - every instruction reads the previous result
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "10 dependent ADDIs (x1 = x1 + 1) - measures stall latency",
		Source:      buildDependencyChain(10),
		CheckReg:    1,
		Expected:    10,
	}
}

func buildDependencyChain(n int) string {
	return strings.Repeat("addi x1, x1, 1\n", n)
}

// 3. Load/Store - store then reload through the data segment
func loadStore() Benchmark {
	return Benchmark{
		Name:        "load_store",
		Description: "SW then LW of the same word - measures memory round trip",
		Source: `
	addi x1, x0, 7
	sw   x1, 0(x0)
	lw   x2, 0(x0)
	add  x3, x2, x2
`,
		CheckReg: 3,
		Expected: 14,
	}
}

// 4. Counted Loop - backward BNE
func countedLoop() Benchmark {
	return Benchmark{
		Name:        "counted_loop",
		Description: "5 iterations of a BNE loop - measures taken-branch cost",
		Source: `
	addi x2, x0, 5
loop:
	addi x1, x1, 1
	bne  x1, x2, loop
`,
		CheckReg: 1,
		Expected: 5,
	}
}

// 5. Branch Over - forward BEQ skipping one instruction
func branchOver() Benchmark {
	return Benchmark{
		Name:        "branch_over",
		Description: "Unconditional forward BEQ - the skipped ADDI must not retire",
		Source: `
	beq  x0, x0, skip
	addi x1, x0, 99
skip:
	addi x1, x0, 1
`,
		CheckReg: 1,
		Expected: 1,
	}
}

// 6. Array Sum - walks four data words prepared by Setup
func arraySum() Benchmark {
	return Benchmark{
		Name:        "array_sum",
		Description: "Sum of a 4-word array - exercises loads inside a loop",
		Setup: func(c *core.Core) {
			for i := uint32(0); i < 4; i++ {
				_ = c.StoreWord(i*4, i+1)
			}
		},
		Source: `
	addi x3, x0, 16
loop:
	lw   x4, 0(x1)
	add  x2, x2, x4
	addi x1, x1, 4
	bne  x1, x3, loop
`,
		CheckReg: 2,
		Expected: 10,
	}
}
