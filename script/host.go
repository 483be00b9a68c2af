// Package script runs Lua scripts against a simulator core.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/timing/core"
)

// Host owns a Lua state bound to one core.
type Host struct {
	core      *core.Core
	assembler *asm.Assembler
	state     *lua.LState
}

// HostOption is a functional option for configuring the Host.
type HostOption func(*Host)

// WithAssembler sets the assembler used by the assemble() global.
func WithAssembler(assembler *asm.Assembler) HostOption {
	return func(h *Host) {
		h.assembler = assembler
	}
}

// NewHost creates a Lua state with the simulator globals installed.
//
//	step()              -> pc
//	run([n])            -> cycles
//	reset()
//	pc()                -> pc
//	reg(i)              -> value
//	setreg(i, v)
//	load_word(addr)     -> value
//	store_word(addr, v)
//	load(listing)
//	assemble(src)       -> listing | nil, message
//	stalls()            -> count
//	cycles()            -> count
func NewHost(c *core.Core, opts ...HostOption) *Host {
	h := &Host{
		core:      c,
		assembler: &asm.Assembler{},
		state:     lua.NewState(),
	}

	for _, opt := range opts {
		opt(h)
	}

	for name, fn := range map[string]lua.LGFunction{
		"step":       h.step,
		"run":        h.run,
		"reset":      h.reset,
		"pc":         h.pc,
		"reg":        h.reg,
		"setreg":     h.setreg,
		"load_word":  h.loadWord,
		"store_word": h.storeWord,
		"load":       h.load,
		"assemble":   h.assemble,
		"stalls":     h.stalls,
		"cycles":     h.cycles,
	} {
		h.state.SetGlobal(name, h.state.NewFunction(fn))
	}

	return h
}

// RunString executes a Lua chunk.
func (h *Host) RunString(src string) error {
	if err := h.state.DoString(src); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}

// RunFile executes a Lua file.
func (h *Host) RunFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s failed: %w", path, err)
	}
	return nil
}

// Global returns a global as a Lua value, for callers reading results.
func (h *Host) Global(name string) lua.LValue {
	return h.state.GetGlobal(name)
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.Close()
}

func checkWord(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func checkReg(L *lua.LState, n int) uint8 {
	reg := L.CheckInt(n)
	if reg < 0 || reg >= emu.NumRegs {
		L.ArgError(n, "register out of range")
	}
	return uint8(reg)
}

func (h *Host) step(L *lua.LState) int {
	pc, err := h.core.Step()
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(pc))
	return 1
}

func (h *Host) run(L *lua.LState) int {
	cycles, err := h.core.Run(L.OptInt(1, 0))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

func (h *Host) reset(L *lua.LState) int {
	h.core.Reset()
	return 0
}

func (h *Host) pc(L *lua.LState) int {
	L.Push(lua.LNumber(h.core.PC()))
	return 1
}

func (h *Host) reg(L *lua.LState) int {
	L.Push(lua.LNumber(h.core.GetRegister(checkReg(L, 1))))
	return 1
}

func (h *Host) setreg(L *lua.LState) int {
	h.core.SetRegister(checkReg(L, 1), checkWord(L, 2))
	return 0
}

func (h *Host) loadWord(L *lua.LState) int {
	value, err := h.core.LoadWord(checkWord(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(value))
	return 1
}

func (h *Host) storeWord(L *lua.LState) int {
	if err := h.core.StoreWord(checkWord(L, 1), checkWord(L, 2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) load(L *lua.LState) int {
	if err := h.core.LoadProgram(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) assemble(L *lua.LState) int {
	prog, err := h.assembler.Assemble(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(prog.Listing()))
	return 1
}

func (h *Host) stalls(L *lua.LState) int {
	L.Push(lua.LNumber(h.core.Stats().Stalls))
	return 1
}

func (h *Host) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(h.core.Stats().Cycles))
	return 1
}
