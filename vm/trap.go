package vm

import (
	"io"
	"log"

	"github.com/pkg/errors"
)

const (
	TRAP_GETC  word = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   word = 0x21 /* output a character */
	TRAP_PUTS  word = 0x22 /* output a word string */
	TRAP_IN    word = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP word = 0x24 /* output a byte string */
	TRAP_HALT  word = 0x25 /* halt the program */
)

// keyEOF is stored in R0 when the host input is exhausted.
const keyEOF word = 0xFFFF

func (cpu *cpu) trap(vector word) error {
	reg := &cpu.registers
	out := cpu.console

	switch vector {
	case TRAP_GETC:
		c, err := cpu.getc()
		if err != nil {
			return errors.Wrapf(err, "trap GETC")
		}
		reg[R0] = c
		reg.UpdateFlags(R0)

	case TRAP_OUT:
		if _, err := out.Write([]byte{byte(reg[R0])}); err != nil {
			return errors.Wrapf(err, "trap OUT")
		}
		return cpu.flush("OUT")

	case TRAP_PUTS:
		for addr := reg[R0]; ; addr++ {
			c := cpu.memory.peek(addr)
			if c == 0 {
				break
			}
			if _, err := out.Write([]byte{byte(c)}); err != nil {
				return errors.Wrapf(err, "trap PUTS")
			}
		}
		return cpu.flush("PUTS")

	case TRAP_IN:
		if _, err := out.Write([]byte("Enter a character: ")); err != nil {
			return errors.Wrapf(err, "trap IN")
		}
		if err := cpu.flush("IN"); err != nil {
			return err
		}
		c, err := cpu.getc()
		if err != nil {
			return errors.Wrapf(err, "trap IN")
		}
		if _, err := out.Write([]byte{byte(c)}); err != nil {
			return errors.Wrapf(err, "trap IN")
		}
		reg[R0] = c
		reg.UpdateFlags(R0)
		return cpu.flush("IN")

	case TRAP_PUTSP:
		for addr := reg[R0]; ; addr++ {
			w := cpu.memory.peek(addr)
			if w == 0 {
				break
			}
			chars := []byte{byte(w)}
			if w>>8 != 0 {
				chars = append(chars, byte(w>>8))
			}
			if _, err := out.Write(chars); err != nil {
				return errors.Wrapf(err, "trap PUTSP")
			}
		}
		return cpu.flush("PUTSP")

	case TRAP_HALT:
		if _, err := out.Write([]byte("HALT\n")); err != nil {
			return errors.Wrapf(err, "trap HALT")
		}
		cpu.stop()
		return cpu.flush("HALT")

	default:
		log.Printf("0x%04x TRAP: unknown vector 0x%02x ignored", reg[PC]-1, vector)
	}

	return nil
}

// getc blocks for one character of host input.
func (cpu *cpu) getc() (word, error) {
	c, err := cpu.console.ReadByte()
	if err == io.EOF {
		return keyEOF, nil
	}
	if err != nil {
		return 0, err
	}
	return word(c), nil
}

func (cpu *cpu) flush(name string) error {
	return errors.Wrapf(cpu.console.Flush(), "trap %s", name)
}
