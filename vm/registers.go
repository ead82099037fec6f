package vm

import "fmt"

type word = uint16

// Register indexes the register file: R0-R7 are general purpose, PC and COND
// are internal.
type Register uint16

// general purpose registers
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC   /* program counter */
	COND /* condition flags */
	RegisterCount
)

func (r Register) String() string {
	switch {
	case r <= R7:
		return fmt.Sprintf("R%d", uint16(r))
	case r == PC:
		return "PC"
	case r == COND:
		return "COND"
	}
	return fmt.Sprintf("Register(%d)", uint16(r))
}

// Flag is the single condition code held in COND.
type Flag = word

// flags
const (
	FLAG_POS Flag = 1 << 0
	FLAG_ZRO Flag = 1 << 1
	FLAG_NEG Flag = 1 << 2
)

// Registers is the register file.
type Registers [RegisterCount]word

func (r *Registers) Get(id Register) word {
	return r[id]
}

func (r *Registers) Set(id Register, value word) {
	r[id] = value
}

// UpdateFlags sets COND from the sign of register id.
func (r *Registers) UpdateFlags(id Register) {
	if r[id] == 0 {
		r[COND] = FLAG_ZRO
	} else if r[id]>>15 != 0 {
		r[COND] = FLAG_NEG
	} else {
		r[COND] = FLAG_POS
	}
}

// SignExtend widens the low bitCount bits of x to a 16-bit two's-complement value.
func SignExtend(x word, bitCount uint) word {
	if (x>>(bitCount-1))&0b1 != 0 {
		x |= 0xFFFF << bitCount
	}
	return x
}
