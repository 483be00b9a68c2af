// Package loader reads µRISC programs from disk.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/emu"
)

// Program represents a loaded program ready for execution.
type Program struct {
	// Path is the file the program came from.
	Path string
	// Listing is the machine image as "0xAAAA: 0xWWWWWWWW" lines.
	Listing string
	// Words is the parsed machine image.
	Words []emu.ImageWord
	// Labels maps label names to addresses. Empty for listings.
	Labels map[string]uint32
}

// IsAssembly reports whether path names an assembly source file.
func IsAssembly(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		return true
	default:
		return false
	}
}

// Load reads a program. Assembly source (.s, .asm) is assembled; any
// other file is parsed as a machine-image listing.
func Load(path string) (*Program, error) {
	return LoadWith(&asm.Assembler{}, path)
}

// LoadWith is Load with a caller-supplied assembler.
func LoadWith(assembler *asm.Assembler, path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	if !IsAssembly(path) {
		return parseListing(path, string(data))
	}

	prog, err := assembler.Assemble(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	words := make([]emu.ImageWord, len(prog.Words))
	for i, w := range prog.Words {
		words[i] = emu.ImageWord{Addr: w.Addr, Value: w.Value}
	}

	return &Program{
		Path:    path,
		Listing: prog.Listing(),
		Words:   words,
		Labels:  prog.Labels,
	}, nil
}

func parseListing(path, listing string) (*Program, error) {
	words, err := emu.ParseImage(listing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Program{
		Path:    path,
		Listing: listing,
		Words:   words,
		Labels:  map[string]uint32{},
	}, nil
}

// ProgramLoader is anything that accepts a machine-image listing.
type ProgramLoader interface {
	LoadProgram(listing string) error
}

// LoadInto loads the program into target, replacing its program segment.
func (p *Program) LoadInto(target ProgramLoader) error {
	if err := target.LoadProgram(p.Listing); err != nil {
		return fmt.Errorf("failed to load %s: %w", p.Path, err)
	}
	return nil
}
