// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"iter"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/internal"
)

const DEFAULT_SEED = 1 // Seed used when the caller does not supply one.

// Emulator couples one machine to a display sink and drives the run loop.
type Emulator struct {
	*cpu.Cpu
	Display display.Display
	Logger  *log.Logger
	Trace   bool // If set, logs every executed instruction.
}

// NewEmulator creates an emulator around a fresh machine.
func NewEmulator(seed uint64, disp display.Display, logger *log.Logger) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(seed),
		Display: disp,
		Logger:  logger,
	}

	return
}

// Defines returns an iterator over the machine constants of every component.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Cpu.Buffer.Defines(),
	)
}

// LoadFile reads a raw program image and loads it at the program start
// address. There is no header or magic number; the file is machine code.
func (emu *Emulator) LoadFile(path string) (err error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return emu.Cpu.Load(program)
}

// Tick executes one instruction and presents the framebuffer. done reports
// that the program counter ran past the loaded program. Fatal machine errors
// are wrapped with the program counter of the offending instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	at := emu.Cpu.Pc

	inst, err := emu.Cpu.Step()
	if errors.Is(err, cpu.ErrProgramEnd) {
		err = nil
		done = true
		return
	}
	if err != nil {
		err = &ErrRuntime{Pc: at, Err: err}
		return
	}

	if emu.Trace {
		emu.Logger.Info(inst.String(),
			log.Hex("word", inst.Encode()),
			log.Hex("pc", emu.Cpu.Pc))
		if inst.Op == cpu.OP_DRW {
			emu.Logger.Debug("framebuffer\n" + emu.Cpu.Buffer.String())
		}
	}

	err = emu.Display.Present(emu.Cpu.Buffer)
	return
}

// Run drives the fetch-decode-execute loop until the program ends, a fatal
// error occurs, or the display's "still running" predicate goes false.
func (emu *Emulator) Run() (err error) {
	for name, value := range emu.Defines() {
		emu.Logger.Debug("machine constant",
			log.String("name", name),
			log.String("value", value))
	}

	for emu.Display.Running() {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}

// Listing decodes a raw program two bytes at a time without executing it,
// yielding each instruction word with its decoded form. A trailing odd byte
// is ignored. Unknown opcodes are reported, never skipped; this is the view
// behind the print command.
func Listing(program []uint8) iter.Seq2[uint16, cpu.Instruction] {
	return func(yield func(word uint16, inst cpu.Instruction) bool) {
		for n := 0; n+1 < len(program); n += 2 {
			word := uint16(program[n])<<8 | uint16(program[n+1])
			inst, err := cpu.Decode(word)
			if err != nil {
				// A 12-bit extraction cannot overflow an Address.
				continue
			}
			if !yield(word, inst) {
				return
			}
		}
	}
}
