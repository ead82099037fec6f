package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		instruction word
		decoded     Instruction
		text        string
	}{
		{0x1020, Add{DR: R0, SR1: R0, Immediate: true, Imm: 0}, "ADD R0, R0, #0"},
		{0x127B, Add{DR: R1, SR1: R1, Immediate: true, Imm: 0xFFFB}, "ADD R1, R1, #-5"},
		{0x1642, Add{DR: R3, SR1: R1, SR2: R2}, "ADD R3, R1, R2"},
		{0x5042, And{DR: R0, SR1: R1, SR2: R2}, "AND R0, R1, R2"},
		{0x5260, And{DR: R1, SR1: R1, Immediate: true, Imm: 0}, "AND R1, R1, #0"},
		{0x9A7F, Not{DR: R5, SR: R1}, "NOT R5, R1"},
		{0x0E05, Branch{NZP: 0b111, Offset: 5}, "BRnzp #5"},
		{0x0BFD, Branch{NZP: 0b101, Offset: 0xFFFD}, "BRnp #-3"},
		{0x0401, Branch{NZP: 0b010, Offset: 1}, "BRz #1"},
		{0x0000, Branch{}, "NOP"},
		{0xC1C0, Jump{BaseR: R7}, "RET"},
		{0xC080, Jump{BaseR: R2}, "JMP R2"},
		{0x4802, JumpSubroutine{Long: true, Offset: 2}, "JSR #2"},
		{0x4FFF, JumpSubroutine{Long: true, Offset: 0xFFFF}, "JSR #-1"},
		{0x4140, JumpSubroutine{BaseR: R5}, "JSRR R5"},
		{0x2404, Load{DR: R2, Offset: 4}, "LD R2, #4"},
		{0xA40E, LoadIndirect{DR: R2, Offset: 14}, "LDI R2, #14"},
		{0x68FF, LoadRegister{DR: R4, BaseR: R3, Offset: 0xFFFF}, "LDR R4, R3, #-1"},
		{0xE002, LoadEffectiveAddress{DR: R0, Offset: 2}, "LEA R0, #2"},
		{0xE1FF, LoadEffectiveAddress{DR: R0, Offset: 0xFFFF}, "LEA R0, #-1"},
		{0x3E00, Store{SR: R7, Offset: 0}, "ST R7, #0"},
		{0xB20F, StoreIndirect{SR: R1, Offset: 15}, "STI R1, #15"},
		{0x72FF, StoreRegister{SR: R1, BaseR: R3, Offset: 0xFFFF}, "STR R1, R3, #-1"},
		{0xF025, Trap{Vector: TRAP_HALT}, "TRAP x25"},
		{0x8000, Unsupported{Op: OP_RTI, Word: 0x8000}, "RTI x8000"},
		{0xD123, Unsupported{Op: OP_RES, Word: 0xD123}, "RES xD123"},
	}

	for _, entry := range table {
		decoded := Decode(entry.instruction)
		assert.Equal(entry.decoded, decoded, "0x%04x", entry.instruction)
		assert.Equal(entry.text, decoded.String(), "0x%04x", entry.instruction)
	}
}

func TestDecodeOpcode(t *testing.T) {
	for w := 0; w < MemorySize; w++ {
		op := Decode(word(w)).Opcode()
		if op != Opcode(w>>12) {
			t.Fatalf("Decode(0x%04x).Opcode() = %v, want %v", w, op, Opcode(w>>12))
		}
	}
}

func TestOpcodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("BR", OP_BR.String())
	assert.Equal("TRAP", OP_TRAP.String())
	assert.Equal("Opcode(16)", Opcode(16).String())
}
