// Package main provides the entry point for urisc.
// urisc is an assembler and five-stage pipeline simulator for a small
// RISC-V subset.
//
// For the full CLI, use: go run ./cmd/urisc
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("urisc - µRISC assembler and pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: urisc [options] <program.s|program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -asm         Assemble and print the listing only")
	fmt.Println("  -config      Path to simulator configuration JSON file")
	fmt.Println("  -max-cycles  Cycle budget")
	fmt.Println("  -clocked     Run on the akita engine")
	fmt.Println("  -trace       Print the pipeline latches every cycle")
	fmt.Println("  -script      Lua script to run against the loaded core")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/urisc' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/urisc' instead.")
	}
}
