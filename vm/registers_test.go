package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(word(0xFFFF), SignExtend(0b11111, 5))
	assert.Equal(word(0x000F), SignExtend(0b01111, 5))
	assert.Equal(word(0xFFF0), SignExtend(0b10000, 5))
	assert.Equal(word(0xFF00), SignExtend(0x100, 9))
	assert.Equal(word(0x00FF), SignExtend(0x0FF, 9))
	assert.Equal(word(0xFC00), SignExtend(0x400, 11))

	for n := uint(1); n <= 16; n++ {
		for x := 0; x < 1<<n; x++ {
			want := x
			if x>>(n-1)&1 != 0 {
				want = x - 1<<n
			}
			if got := SignExtend(word(x), n); got != word(int16(want)) {
				t.Fatalf("SignExtend(0x%x, %d) = 0x%04x, want 0x%04x", x, n, got, word(int16(want)))
			}
		}
	}
}

func TestUpdateFlags(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		value word
		flag  Flag
	}{
		{0x0000, FLAG_ZRO},
		{0x0001, FLAG_POS},
		{0x7FFF, FLAG_POS},
		{0x8000, FLAG_NEG},
		{0xFFFF, FLAG_NEG},
	}

	for _, entry := range table {
		var reg Registers
		for r := R0; r <= R7; r++ {
			reg.Set(r, entry.value)
			reg.Set(COND, 0)
			reg.UpdateFlags(r)
			assert.Equal(entry.flag, reg.Get(COND), "R%d=0x%04x", r, entry.value)
		}
	}
}

func TestRegisterString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("R0", R0.String())
	assert.Equal("R7", R7.String())
	assert.Equal("PC", PC.String())
	assert.Equal("COND", COND.String())
	assert.Equal("Register(12)", Register(12).String())
}
