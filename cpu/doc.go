// Package cpu implements the CHIP-8 machine: the instruction codec and the
// fetch-decode-execute state machine.
//
// The machine has 4096 bytes of memory with programs loaded at 0x200, sixteen
// 8-bit registers V0-VF (VF doubles as the arithmetic and draw flag), a 16-bit
// index register I, a 16-bit program counter, and a sixteen-deep return stack.
// Instructions are 16-bit big-endian words; the codec maps them to and from a
// closed set of variants, with opcodes the machine does not model represented
// as an explicit Unknown variant rather than guessed at.
package cpu
