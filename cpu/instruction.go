package cpu

import (
	"fmt"
)

// Address is a 12-bit memory address carried inside an instruction.
type Address uint16

const ADDRESS_LIMIT = Address(0xFFF) // Highest addressable byte.

// NewAddress builds an Address from a 16-bit value. A value above 0xFFF does
// not fit in 12 bits and is rejected rather than truncated, so malformed or
// mis-parsed instructions are caught at construction time.
func NewAddress(value uint16) (addr Address, err error) {
	if value > uint16(ADDRESS_LIMIT) {
		err = ErrAddressRange(value)
		return
	}

	addr = Address(value)
	return
}

// Register is a 4-bit index naming one of the sixteen registers V0-VF.
type Register uint8

const REG_FLAG = Register(0xF) // VF, set implicitly by arithmetic and draw.

// NewRegister builds a Register from a register number 0x0-0xF.
func NewRegister(index uint8) (reg Register, err error) {
	if index > uint8(REG_FLAG) {
		err = ErrRegisterRange(index)
		return
	}

	reg = Register(index)
	return
}

// Op selects an instruction variant.
type Op int

const (
	OP_SYS      = Op(iota) // 0nnn - machine call, ignored
	OP_RET                 // 00EE - return from subroutine
	OP_JP                  // 1nnn - jump
	OP_CALL                // 2nnn - call subroutine
	OP_SE_BYTE             // 3xkk - skip if Vx == kk
	OP_SNE_BYTE            // 4xkk - skip if Vx != kk
	OP_SE_REG              // 5xy0 - skip if Vx == Vy
	OP_LD_BYTE             // 6xkk - Vx = kk
	OP_ADD_BYTE            // 7xkk - Vx += kk, no flag
	OP_ADD_REG             // 8xy4 - Vx += Vy, VF = carry
	OP_SNE_REG             // 9xy0 - skip if Vx != Vy
	OP_LD_I                // Annn - I = nnn
	OP_RND                 // Cxkk - Vx = random & kk
	OP_DRW                 // Dxyn - draw n-byte sprite at (Vx, Vy)
	OP_ADD_I               // Fx1E - I += Vx
	OP_UNKNOWN             // anything the machine does not model
)

// Instruction is one decoded instruction. A value carries only the operands
// its variant needs, and is never mutated after decode, only consumed.
type Instruction struct {
	Op   Op
	X    Register // First register operand (Vx).
	Y    Register // Second register operand (Vy).
	Byte uint8    // Immediate byte operand (kk).
	N    uint8    // Sprite length nibble.
	Addr Address  // 12-bit address operand (nnn).
	Word uint16   // Raw word, kept only for OP_UNKNOWN.
}

// MakeSys creates the ignored machine-call instruction.
func MakeSys() Instruction {
	return Instruction{Op: OP_SYS}
}

// MakeRet creates a return-from-subroutine instruction.
func MakeRet() Instruction {
	return Instruction{Op: OP_RET}
}

// MakeJp creates a jump instruction.
func MakeJp(addr Address) Instruction {
	return Instruction{Op: OP_JP, Addr: addr}
}

// MakeCall creates a call-subroutine instruction.
func MakeCall(addr Address) Instruction {
	return Instruction{Op: OP_CALL, Addr: addr}
}

// MakeSeByte creates a skip-if-Vx-equals-byte instruction.
func MakeSeByte(x Register, kk uint8) Instruction {
	return Instruction{Op: OP_SE_BYTE, X: x, Byte: kk}
}

// MakeSneByte creates a skip-if-Vx-not-equals-byte instruction.
func MakeSneByte(x Register, kk uint8) Instruction {
	return Instruction{Op: OP_SNE_BYTE, X: x, Byte: kk}
}

// MakeSeReg creates a skip-if-Vx-equals-Vy instruction.
func MakeSeReg(x, y Register) Instruction {
	return Instruction{Op: OP_SE_REG, X: x, Y: y}
}

// MakeSneReg creates a skip-if-Vx-not-equals-Vy instruction.
func MakeSneReg(x, y Register) Instruction {
	return Instruction{Op: OP_SNE_REG, X: x, Y: y}
}

// MakeLdByte creates a load-immediate instruction.
func MakeLdByte(x Register, kk uint8) Instruction {
	return Instruction{Op: OP_LD_BYTE, X: x, Byte: kk}
}

// MakeAddByte creates an add-immediate instruction. The addition wraps on
// 8-bit overflow and sets no flag.
func MakeAddByte(x Register, kk uint8) Instruction {
	return Instruction{Op: OP_ADD_BYTE, X: x, Byte: kk}
}

// MakeAddReg creates an add-registers instruction. VF receives the carry.
func MakeAddReg(x, y Register) Instruction {
	return Instruction{Op: OP_ADD_REG, X: x, Y: y}
}

// MakeLdI creates a load-index instruction.
func MakeLdI(addr Address) Instruction {
	return Instruction{Op: OP_LD_I, Addr: addr}
}

// MakeRnd creates a random-and-mask instruction.
func MakeRnd(x Register, kk uint8) Instruction {
	return Instruction{Op: OP_RND, X: x, Byte: kk}
}

// MakeDrw creates a draw-sprite instruction for an n-byte sprite at (Vx, Vy).
func MakeDrw(x, y Register, n uint8) Instruction {
	return Instruction{Op: OP_DRW, X: x, Y: y, N: n}
}

// MakeAddI creates an add-index-from-register instruction.
func MakeAddI(x Register) Instruction {
	return Instruction{Op: OP_ADD_I, X: x}
}

// MakeUnknown creates the explicit unrecognized variant carrying the raw word.
func MakeUnknown(word uint16) Instruction {
	return Instruction{Op: OP_UNKNOWN, Word: word}
}

// nibbles breaks a byte like 0xAB into 0xA and 0xB.
func nibbles(b uint8) (hi, lo uint8) {
	return b >> 4, b & 0x0F
}

// Decode converts a 16-bit big-endian instruction word into an Instruction.
//
// Dispatch is on the highest nibble. Groups with a fixed low field (5xy0,
// 8xy4, 9xy0, Fx1E) decode to Unknown when the fixed field does not match,
// never to a misread variant. Unknown opcodes are not a failure: the decoder
// stays total so trace and print views can report every word. The only error
// path is an address field that cannot be represented, which a well-formed
// 12-bit extraction never triggers.
func Decode(word uint16) (inst Instruction, err error) {
	a, b := nibbles(uint8(word >> 8))
	c, d := nibbles(uint8(word))

	var addr Address
	switch a {
	case 0x1, 0x2, 0xA:
		addr, err = NewAddress(word & 0x0FFF)
		if err != nil {
			return
		}
	}

	switch a {
	case 0x0:
		if word == 0x00EE {
			inst = MakeRet()
		} else {
			inst = MakeSys()
		}
	case 0x1:
		inst = MakeJp(addr)
	case 0x2:
		inst = MakeCall(addr)
	case 0x3:
		inst = MakeSeByte(Register(b), uint8(word))
	case 0x4:
		inst = MakeSneByte(Register(b), uint8(word))
	case 0x5:
		if d == 0x0 {
			inst = MakeSeReg(Register(b), Register(c))
		} else {
			inst = MakeUnknown(word)
		}
	case 0x6:
		inst = MakeLdByte(Register(b), uint8(word))
	case 0x7:
		inst = MakeAddByte(Register(b), uint8(word))
	case 0x8:
		if d == 0x4 {
			inst = MakeAddReg(Register(b), Register(c))
		} else {
			inst = MakeUnknown(word)
		}
	case 0x9:
		if d == 0x0 {
			inst = MakeSneReg(Register(b), Register(c))
		} else {
			inst = MakeUnknown(word)
		}
	case 0xA:
		inst = MakeLdI(addr)
	case 0xC:
		inst = MakeRnd(Register(b), uint8(word))
	case 0xD:
		inst = MakeDrw(Register(b), Register(c), d)
	case 0xF:
		if uint8(word) == 0x1E {
			inst = MakeAddI(Register(b))
		} else {
			inst = MakeUnknown(word)
		}
	default:
		inst = MakeUnknown(word)
	}

	return
}

// Encode is the exact inverse of Decode for every representable variant:
// Decode(inst.Encode()) == inst.
func (inst Instruction) Encode() (word uint16) {
	x := uint16(inst.X) << 8
	y := uint16(inst.Y) << 4

	switch inst.Op {
	case OP_SYS:
		// Any 0nnn word other than 00EE is a machine call; this is the
		// canonical one.
		word = 0x0123
	case OP_RET:
		word = 0x00EE
	case OP_JP:
		word = 0x1000 | uint16(inst.Addr)
	case OP_CALL:
		word = 0x2000 | uint16(inst.Addr)
	case OP_SE_BYTE:
		word = 0x3000 | x | uint16(inst.Byte)
	case OP_SNE_BYTE:
		word = 0x4000 | x | uint16(inst.Byte)
	case OP_SE_REG:
		word = 0x5000 | x | y
	case OP_LD_BYTE:
		word = 0x6000 | x | uint16(inst.Byte)
	case OP_ADD_BYTE:
		word = 0x7000 | x | uint16(inst.Byte)
	case OP_ADD_REG:
		word = 0x8004 | x | y
	case OP_SNE_REG:
		word = 0x9000 | x | y
	case OP_LD_I:
		word = 0xA000 | uint16(inst.Addr)
	case OP_RND:
		word = 0xC000 | x | uint16(inst.Byte)
	case OP_DRW:
		word = 0xD000 | x | y | uint16(inst.N&0xF)
	case OP_ADD_I:
		word = 0xF01E | x
	case OP_UNKNOWN:
		word = inst.Word
	}

	return
}

// String renders the instruction as a short assembler-style mnemonic.
func (inst Instruction) String() (text string) {
	switch inst.Op {
	case OP_SYS:
		text = "SYS (ignored)"
	case OP_RET:
		text = "RET"
	case OP_JP:
		text = fmt.Sprintf("JP %04X", uint16(inst.Addr))
	case OP_CALL:
		text = fmt.Sprintf("CALL %04X", uint16(inst.Addr))
	case OP_SE_BYTE:
		text = fmt.Sprintf("SE V%X, %02X", uint8(inst.X), inst.Byte)
	case OP_SNE_BYTE:
		text = fmt.Sprintf("SNE V%X, %02X", uint8(inst.X), inst.Byte)
	case OP_SE_REG:
		text = fmt.Sprintf("SE V%X, V%X", uint8(inst.X), uint8(inst.Y))
	case OP_SNE_REG:
		text = fmt.Sprintf("SNE V%X, V%X", uint8(inst.X), uint8(inst.Y))
	case OP_LD_BYTE:
		text = fmt.Sprintf("LD V%X, %02X", uint8(inst.X), inst.Byte)
	case OP_ADD_BYTE:
		text = fmt.Sprintf("ADD V%X, %02X", uint8(inst.X), inst.Byte)
	case OP_ADD_REG:
		text = fmt.Sprintf("ADD V%X, V%X", uint8(inst.X), uint8(inst.Y))
	case OP_LD_I:
		text = fmt.Sprintf("LD I, %04X", uint16(inst.Addr))
	case OP_RND:
		text = fmt.Sprintf("RND V%X, %02X", uint8(inst.X), inst.Byte)
	case OP_DRW:
		text = fmt.Sprintf("DRW V%X, V%X, %02X", uint8(inst.X), uint8(inst.Y), inst.N)
	case OP_ADD_I:
		text = fmt.Sprintf("ADD I, V%X", uint8(inst.X))
	case OP_UNKNOWN:
		text = fmt.Sprintf("Unknown: %04X", inst.Word)
	}

	return
}
