package asm

import (
	"errors"

	"github.com/sarchlab/urisc/translate"
)

var f = translate.From

var (
	ErrDuplicateLabel     = errors.New(f("duplicate label"))
	ErrInvalidLabel       = errors.New(f("invalid label"))
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
	ErrInvalidOperand     = errors.New(f("missing or invalid operand"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrUndefinedLabel     = errors.New(f("undefined label"))
)

// Error locates an assembly failure. Line is the 0-based index of the
// physical source line.
type Error struct {
	Line int
	Text string
	Err  error
}

func (err *Error) Error() string {
	return f("line %v '%v': %v", err.Line, err.Text, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// ErrOperand names the operand position that failed to parse.
type ErrOperand struct {
	Position string // e.g. "destination register"
	Operand  string
	Err      error
}

func (err *ErrOperand) Error() string {
	return f("invalid %v: %v", err.Position, err.Operand)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrName carries the label or mnemonic an error is about.
type ErrName struct {
	Name string
	Err  error
}

func (err *ErrName) Error() string {
	return f("%v: %v", err.Err, err.Name)
}

func (err *ErrName) Unwrap() error {
	return err.Err
}
