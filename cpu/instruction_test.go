package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func r(n uint8) Register {
	return Register(n)
}

func a(n uint16) Address {
	return Address(n)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		inst Instruction
		word uint16
	}){
		{"sys", MakeSys(), 0x0123},
		{"ret", MakeRet(), 0x00EE},
		{"jp", MakeJp(a(0x234)), 0x1234},
		{"call", MakeCall(a(0x345)), 0x2345},
		{"se_byte", MakeSeByte(r(0x4), 0x56), 0x3456},
		{"sne_byte", MakeSneByte(r(0x5), 0x67), 0x4567},
		{"se_reg", MakeSeReg(r(0xA), r(0xB)), 0x5AB0},
		{"ld_byte", MakeLdByte(r(0x7), 0x89), 0x6789},
		{"add_byte", MakeAddByte(r(0x8), 0x9A), 0x789A},
		{"add_reg", MakeAddReg(r(0xA), r(0xB)), 0x8AB4},
		{"sne_reg", MakeSneReg(r(0xA), r(0xB)), 0x9AB0},
		{"ld_i", MakeLdI(a(0xBCD)), 0xABCD},
		{"rnd", MakeRnd(r(0xA), 0xBC), 0xCABC},
		{"drw", MakeDrw(r(0xA), r(0xB), 0xC), 0xDABC},
		{"add_i", MakeAddI(r(0xB)), 0xFB1E},
		{"unknown", MakeUnknown(0xE123), 0xE123},
	}

	for _, entry := range table {
		assert.Equal(entry.word, entry.inst.Encode(), entry.name)
	}
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := map[uint16]Instruction{
		0x00EE: MakeRet(),
		0x0ABC: MakeSys(),
		0x1234: MakeJp(a(0x234)),
		0x1A12: MakeJp(a(0xA12)),
		0x221A: MakeCall(a(0x21A)),
		0x3934: MakeSeByte(r(0x9), 0x34),
		0x4A56: MakeSneByte(r(0xA), 0x56),
		0x5730: MakeSeReg(r(0x7), r(0x3)),
		0x6003: MakeLdByte(r(0x0), 0x03),
		0x6D12: MakeLdByte(r(0xD), 0x12),
		0x7123: MakeAddByte(r(0x1), 0x23),
		0x8124: MakeAddReg(r(0x1), r(0x2)),
		0x9AB0: MakeSneReg(r(0xA), r(0xB)),
		0xA278: MakeLdI(a(0x278)),
		0xC123: MakeRnd(r(0x1), 0x23),
		0xD123: MakeDrw(r(0x1), r(0x2), 0x3),
		0xF51E: MakeAddI(r(0x5)),
	}

	for word, expected := range table {
		inst, err := Decode(word)
		assert.NoError(err)
		assert.Equal(expected, inst, expected.String())
	}
}

// Words whose fixed low field does not match the expected layout must decode
// to the explicit unknown variant, never to a misread one.
func TestDecode_BrokenLayout(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0x5AB1, 0x8AB0, 0x8AB5, 0x9AB3, 0xF51D, 0xF500, 0xB123, 0xE09E} {
		inst, err := Decode(word)
		assert.NoError(err)
		assert.Equal(MakeUnknown(word), inst)
	}
}

// Round trip law: Decode(Encode(x)) == x for every representable variant.
func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := []Instruction{
		MakeSys(),
		MakeRet(),
		MakeJp(a(0xABC)),
		MakeCall(a(0x300)),
		MakeSeByte(r(0x1), 0xFF),
		MakeSneByte(r(0xE), 0x00),
		MakeSeReg(r(0x0), r(0xF)),
		MakeSneReg(r(0xF), r(0x0)),
		MakeLdByte(r(0xD), 0x12),
		MakeAddByte(r(0x3), 0x80),
		MakeAddReg(r(0xD), r(0xE)),
		MakeLdI(a(0xFFF)),
		MakeRnd(r(0x7), 0x0F),
		MakeDrw(r(0x1), r(0x2), 0xF),
		MakeAddI(r(0xA)),
		MakeUnknown(0xE0A1),
	}

	for _, inst := range table {
		actual, err := Decode(inst.Encode())
		assert.NoError(err)
		assert.Equal(inst, actual, inst.String())
	}
}

func TestNewAddress(t *testing.T) {
	assert := assert.New(t)

	addr, err := NewAddress(0xFFF)
	assert.NoError(err)
	assert.Equal(a(0xFFF), addr)

	_, err = NewAddress(0x1000)
	assert.ErrorIs(err, ErrAddressRange(0))
	assert.ErrorContains(err, "0x1000")
}

func TestNewRegister(t *testing.T) {
	assert := assert.New(t)

	reg, err := NewRegister(0xF)
	assert.NoError(err)
	assert.Equal(REG_FLAG, reg)

	_, err = NewRegister(0x10)
	assert.ErrorIs(err, ErrRegisterRange(0))
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		inst Instruction
		text string
	}){
		{MakeSys(), "SYS (ignored)"},
		{MakeRet(), "RET"},
		{MakeJp(a(0xABC)), "JP 0ABC"},
		{MakeCall(a(0x300)), "CALL 0300"},
		{MakeSeByte(r(0x4), 0x56), "SE V4, 56"},
		{MakeSneByte(r(0x5), 0x67), "SNE V5, 67"},
		{MakeSeReg(r(0xA), r(0xB)), "SE VA, VB"},
		{MakeSneReg(r(0xA), r(0xB)), "SNE VA, VB"},
		{MakeLdByte(r(0x7), 0x89), "LD V7, 89"},
		{MakeAddByte(r(0x8), 0x9A), "ADD V8, 9A"},
		{MakeAddReg(r(0xA), r(0xB)), "ADD VA, VB"},
		{MakeLdI(a(0xBCD)), "LD I, 0BCD"},
		{MakeRnd(r(0xA), 0xBC), "RND VA, BC"},
		{MakeDrw(r(0x1), r(0x2), 0x3), "DRW V1, V2, 03"},
		{MakeAddI(r(0xB)), "ADD I, VB"},
		{MakeUnknown(0xE123), "Unknown: E123"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.inst.String())
	}
}

// Decode is total over all 65536 words, and every word that decodes to a
// non-SYS variant re-encodes to itself. SYS covers all 0nnn words but
// encodes to a single canonical one, so it is checked separately.
func FuzzDecode(f *testing.F) {
	f.Add(uint16(0x0000))
	f.Add(uint16(0x00EE))
	f.Add(uint16(0x1234))
	f.Add(uint16(0x8AB4))
	f.Add(uint16(0xFFFF))

	f.Fuzz(func(t *testing.T, word uint16) {
		assert := assert.New(t)

		inst, err := Decode(word)
		assert.NoError(err)

		if inst.Op == OP_SYS {
			redecoded, err := Decode(inst.Encode())
			assert.NoError(err)
			assert.Equal(inst, redecoded)
			return
		}

		assert.Equal(word, inst.Encode(), inst.String())
	})
}
