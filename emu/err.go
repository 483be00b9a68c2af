package emu

import (
	"errors"

	"github.com/sarchlab/urisc/translate"
)

var f = translate.From

// ErrOutOfBounds is returned for memory accesses outside the store.
var ErrOutOfBounds = errors.New(f("memory access out of bounds"))

// ErrImageSyntax is returned for malformed machine-image lines.
var ErrImageSyntax = errors.New(f("machine image syntax"))

// ErrAccess describes a rejected memory access.
type ErrAccess struct {
	Addr  uint32
	Width int
}

func (err *ErrAccess) Error() string {
	return f("address 0x%02X out of bounds for %d-byte access", err.Addr, err.Width)
}

func (err *ErrAccess) Unwrap() error {
	return ErrOutOfBounds
}

// ErrImageLine locates a malformed machine-image line.
type ErrImageLine struct {
	LineNo int // 0-based
	Line   string
	Err    error
}

func (err *ErrImageLine) Error() string {
	return f("image line %v '%v': %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImageLine) Unwrap() error {
	return err.Err
}
