package cpu

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/chip8/display"
)

const (
	MEMORY_SIZE   = 4096  // Total bytes of machine memory.
	PROGRAM_START = 0x200 // First address of loadable program space; below is reserved.

	// PROGRAM_LIMIT is the maximum program length in bytes.
	PROGRAM_LIMIT = int(ADDRESS_LIMIT) - PROGRAM_START
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"PROGRAM_START": fmt.Sprintf("0x%x", PROGRAM_START),
	"PROGRAM_LIMIT": fmt.Sprintf("%v", PROGRAM_LIMIT),
	"STACK_LIMIT":   fmt.Sprintf("%v", STACK_LIMIT),
}

// Cpu is the simulation context for one machine. It exclusively owns all
// mutable state: memory, registers, the call stack, and the framebuffer.
// A halted Cpu is never resumed; create a fresh one to restart.
type Cpu struct {
	Memory   []uint8   // 4096-byte address space; programs live at 0x200 and up.
	Register [16]uint8 // V0-VF. VF doubles as the arithmetic/draw flag.
	I        uint16    // Index register; sprites are read from Memory[I:].
	Pc       uint16    // Program counter, pre-advanced before each effect.
	Stack    Stack     // Return-address stack.
	Buffer   *display.Framebuffer

	rand *rand.Rand // Explicit random source, so runs are reproducible.
	end  uint16     // First address past the loaded program.
}

// NewCpu creates a machine with blank memory, a blank framebuffer, the
// program counter at the program start, and a random source derived from seed.
func NewCpu(seed uint64) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make([]uint8, MEMORY_SIZE),
		Pc:     PROGRAM_START,
		Buffer: display.NewFramebuffer(display.LOGICAL_WIDTH, display.LOGICAL_HEIGHT),
		rand:   rand.New(rand.NewPCG(seed, seed)),
		end:    PROGRAM_START,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   pc: %04X\n    i: %04X\n   sp: %v\n",
		cpu.Pc, cpu.I, len(cpu.Stack.Data))
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   v%X: %02X\n", n, val)
	}

	return
}

// Load copies a program into memory at the program start address.
// It fails if the program exceeds the available program space.
func (cpu *Cpu) Load(program []uint8) (err error) {
	if len(program) > PROGRAM_LIMIT {
		err = ErrProgramTooLong
		return
	}

	copy(cpu.Memory[PROGRAM_START:], program)
	cpu.end = uint16(PROGRAM_START + len(program))
	return
}

// fetch reads the big-endian instruction word at the program counter.
func (cpu *Cpu) fetch() (word uint16, err error) {
	if uint32(cpu.Pc)+2 > uint32(cpu.end) {
		err = ErrProgramEnd
		return
	}

	word = binary.BigEndian.Uint16(cpu.Memory[cpu.Pc:])
	return
}

// Step fetches, decodes and executes exactly one instruction, returning the
// instruction applied so callers can trace it. PC advances by 2 before the
// instruction's effect is applied, so a jump or call overwrites the
// pre-advanced value. ErrProgramEnd reports that PC has run past the end of
// populated memory.
func (cpu *Cpu) Step() (inst Instruction, err error) {
	word, err := cpu.fetch()
	if err != nil {
		return
	}
	cpu.Pc += 2

	inst, err = Decode(word)
	if err != nil {
		return
	}

	err = cpu.Execute(inst)
	return
}

// Execute applies the effect of a single instruction to the machine state.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	switch inst.Op {
	case OP_SYS:
		// Machine call on the original hardware; ignored here.
	case OP_RET:
		value, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.Pc = value
	case OP_JP:
		cpu.Pc = uint16(inst.Addr)
	case OP_CALL:
		if cpu.Stack.Full() {
			err = ErrStackFull
			return
		}
		cpu.Stack.Push(cpu.Pc)
		cpu.Pc = uint16(inst.Addr)
	case OP_SE_BYTE:
		if cpu.Register[inst.X] == inst.Byte {
			cpu.Pc += 2
		}
	case OP_SNE_BYTE:
		if cpu.Register[inst.X] != inst.Byte {
			cpu.Pc += 2
		}
	case OP_SE_REG:
		if cpu.Register[inst.X] == cpu.Register[inst.Y] {
			cpu.Pc += 2
		}
	case OP_SNE_REG:
		if cpu.Register[inst.X] != cpu.Register[inst.Y] {
			cpu.Pc += 2
		}
	case OP_LD_BYTE:
		cpu.Register[inst.X] = inst.Byte
	case OP_ADD_BYTE:
		// Wraps on 8-bit overflow; no flag.
		cpu.Register[inst.X] += inst.Byte
	case OP_ADD_REG:
		sum := uint16(cpu.Register[inst.X]) + uint16(cpu.Register[inst.Y])
		cpu.Register[inst.X] = uint8(sum)
		cpu.Register[REG_FLAG] = uint8(sum >> 8)
	case OP_LD_I:
		cpu.I = uint16(inst.Addr)
	case OP_RND:
		cpu.Register[inst.X] = uint8(cpu.rand.UintN(0x100)) & inst.Byte
	case OP_DRW:
		begin := int(cpu.I)
		end := begin + int(inst.N)
		if end > len(cpu.Memory) {
			err = ErrSpriteRange
			return
		}
		sprite := cpu.Memory[begin:end]
		collision := cpu.Buffer.DrawSprite(
			int(cpu.Register[inst.X]), int(cpu.Register[inst.Y]), sprite)
		if collision {
			cpu.Register[REG_FLAG] = 1
		} else {
			cpu.Register[REG_FLAG] = 0
		}
	case OP_ADD_I:
		cpu.I += uint16(cpu.Register[inst.X])
	case OP_UNKNOWN:
		// The machine has no defined behavior for this word.
		err = ErrOpcode(inst.Word)
	}

	return
}
