package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrProgramEnd     = errors.New(f("program end"))
	ErrProgramTooLong = errors.New(f("program too long"))
	ErrStackEmpty     = errors.New(f("stack empty"))
	ErrStackFull      = errors.New(f("stack full"))
	ErrSpriteRange    = errors.New(f("sprite outside memory"))
)

// ErrAddressRange reports a value that does not fit in the 12-bit address space.
type ErrAddressRange uint16

func (ea ErrAddressRange) Error() string {
	return f("address 0x%04x too large", uint16(ea))
}

func (ea ErrAddressRange) Is(err error) (ok bool) {
	_, ok = err.(ErrAddressRange)
	return
}

// ErrRegisterRange reports a register index above 0xF.
type ErrRegisterRange uint8

func (er ErrRegisterRange) Error() string {
	return f("register V%x does not exist", uint8(er))
}

func (er ErrRegisterRange) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterRange)
	return
}

// ErrOpcode reports execution of an instruction word the machine does not model.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	return f("unknown instruction 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
