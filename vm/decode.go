package vm

import (
	"fmt"
	"strings"
)

// Opcode is the top 4 bits of an instruction word.
type Opcode word

// opcodes
const (
	OP_BR   Opcode = iota /* branch */
	OP_ADD                /* add */
	OP_LD                 /* load */
	OP_ST                 /* store */
	OP_JSR                /* jump register */
	OP_AND                /* bitwise and */
	OP_LDR                /* load register */
	OP_STR                /* store register */
	OP_RTI                /* unused */
	OP_NOT                /* bitwise not */
	OP_LDI                /* load indirect */
	OP_STI                /* store indirect */
	OP_JMP                /* jump */
	OP_RES                /* reserved (unused) */
	OP_LEA                /* load effective address */
	OP_TRAP               /* execute trap */
)

var opcodeNames = [...]string{
	"BR", "ADD", "LD", "ST", "JSR", "AND", "LDR", "STR",
	"RTI", "NOT", "LDI", "STI", "JMP", "RES", "LEA", "TRAP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", word(op))
}

// Instruction is one decoded instruction word. The concrete type is one of
// the structs below, each carrying only the fields its format uses.
type Instruction interface {
	Opcode() Opcode
	String() string
}

// Add is DR = SR1 + SR2, or DR = SR1 + Imm when Immediate is set.
type Add struct {
	DR, SR1, SR2 Register
	Immediate    bool
	Imm          word // sign extended imm5
}

type And struct {
	DR, SR1, SR2 Register
	Immediate    bool
	Imm          word // sign extended imm5
}

type Not struct {
	DR, SR Register
}

// Branch adds Offset to PC when NZP & COND is non-zero.
type Branch struct {
	NZP    word
	Offset word
}

// Jump covers JMP and RET (BaseR == R7).
type Jump struct {
	BaseR Register
}

// JumpSubroutine covers JSR (Long) and JSRR.
type JumpSubroutine struct {
	Long   bool
	Offset word // sign extended PCoffset11, when Long
	BaseR  Register
}

type Load struct {
	DR     Register
	Offset word
}

type LoadIndirect struct {
	DR     Register
	Offset word
}

type LoadRegister struct {
	DR, BaseR Register
	Offset    word
}

type LoadEffectiveAddress struct {
	DR     Register
	Offset word
}

type Store struct {
	SR     Register
	Offset word
}

type StoreIndirect struct {
	SR     Register
	Offset word
}

type StoreRegister struct {
	SR, BaseR Register
	Offset    word
}

type Trap struct {
	Vector word
}

// Unsupported is RTI or RES.
type Unsupported struct {
	Op   Opcode
	Word word
}

func (Add) Opcode() Opcode                  { return OP_ADD }
func (And) Opcode() Opcode                  { return OP_AND }
func (Not) Opcode() Opcode                  { return OP_NOT }
func (Branch) Opcode() Opcode               { return OP_BR }
func (Jump) Opcode() Opcode                 { return OP_JMP }
func (JumpSubroutine) Opcode() Opcode       { return OP_JSR }
func (Load) Opcode() Opcode                 { return OP_LD }
func (LoadIndirect) Opcode() Opcode         { return OP_LDI }
func (LoadRegister) Opcode() Opcode         { return OP_LDR }
func (LoadEffectiveAddress) Opcode() Opcode { return OP_LEA }
func (Store) Opcode() Opcode                { return OP_ST }
func (StoreIndirect) Opcode() Opcode        { return OP_STI }
func (StoreRegister) Opcode() Opcode        { return OP_STR }
func (Trap) Opcode() Opcode                 { return OP_TRAP }
func (u Unsupported) Opcode() Opcode        { return u.Op }

func field(instruction word, shift, width uint) word {
	return (instruction >> shift) & (1<<width - 1)
}

func reg(instruction word, shift uint) Register {
	return Register(field(instruction, shift, 3))
}

// Decode splits an instruction word into its opcode and operand fields.
func Decode(instruction word) Instruction {
	op := Opcode(instruction >> 12)

	switch op {
	case OP_ADD, OP_AND:
		dr := reg(instruction, 9)
		sr1 := reg(instruction, 6)
		immFlag := field(instruction, 5, 1) == 1
		sr2 := reg(instruction, 0)
		imm5 := SignExtend(field(instruction, 0, 5), 5)
		if op == OP_ADD {
			if immFlag {
				return Add{DR: dr, SR1: sr1, Immediate: true, Imm: imm5}
			}
			return Add{DR: dr, SR1: sr1, SR2: sr2}
		}
		if immFlag {
			return And{DR: dr, SR1: sr1, Immediate: true, Imm: imm5}
		}
		return And{DR: dr, SR1: sr1, SR2: sr2}

	case OP_NOT:
		return Not{DR: reg(instruction, 9), SR: reg(instruction, 6)}

	case OP_BR:
		return Branch{NZP: field(instruction, 9, 3), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_JMP:
		return Jump{BaseR: reg(instruction, 6)}

	case OP_JSR:
		if field(instruction, 11, 1) == 1 {
			return JumpSubroutine{Long: true, Offset: SignExtend(field(instruction, 0, 11), 11)}
		}
		return JumpSubroutine{BaseR: reg(instruction, 6)}

	case OP_LD:
		return Load{DR: reg(instruction, 9), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_LDI:
		return LoadIndirect{DR: reg(instruction, 9), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_LDR:
		return LoadRegister{DR: reg(instruction, 9), BaseR: reg(instruction, 6), Offset: SignExtend(field(instruction, 0, 6), 6)}

	case OP_LEA:
		return LoadEffectiveAddress{DR: reg(instruction, 9), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_ST:
		return Store{SR: reg(instruction, 9), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_STI:
		return StoreIndirect{SR: reg(instruction, 9), Offset: SignExtend(field(instruction, 0, 9), 9)}

	case OP_STR:
		return StoreRegister{SR: reg(instruction, 9), BaseR: reg(instruction, 6), Offset: SignExtend(field(instruction, 0, 6), 6)}

	case OP_TRAP:
		return Trap{Vector: field(instruction, 0, 8)}
	}

	// OP_RTI, OP_RES
	return Unsupported{Op: op, Word: instruction}
}

// disassembly

func imm(v word) string {
	return fmt.Sprintf("#%d", int16(v))
}

func (i Add) String() string {
	if i.Immediate {
		return fmt.Sprintf("ADD %v, %v, %s", i.DR, i.SR1, imm(i.Imm))
	}
	return fmt.Sprintf("ADD %v, %v, %v", i.DR, i.SR1, i.SR2)
}

func (i And) String() string {
	if i.Immediate {
		return fmt.Sprintf("AND %v, %v, %s", i.DR, i.SR1, imm(i.Imm))
	}
	return fmt.Sprintf("AND %v, %v, %v", i.DR, i.SR1, i.SR2)
}

func (i Not) String() string {
	return fmt.Sprintf("NOT %v, %v", i.DR, i.SR)
}

func (i Branch) String() string {
	if i.NZP == 0 {
		return "NOP"
	}
	var sb strings.Builder
	sb.WriteString("BR")
	if i.NZP&FLAG_NEG != 0 {
		sb.WriteByte('n')
	}
	if i.NZP&FLAG_ZRO != 0 {
		sb.WriteByte('z')
	}
	if i.NZP&FLAG_POS != 0 {
		sb.WriteByte('p')
	}
	return fmt.Sprintf("%s %s", sb.String(), imm(i.Offset))
}

func (i Jump) String() string {
	if i.BaseR == R7 {
		return "RET"
	}
	return fmt.Sprintf("JMP %v", i.BaseR)
}

func (i JumpSubroutine) String() string {
	if i.Long {
		return fmt.Sprintf("JSR %s", imm(i.Offset))
	}
	return fmt.Sprintf("JSRR %v", i.BaseR)
}

func (i Load) String() string {
	return fmt.Sprintf("LD %v, %s", i.DR, imm(i.Offset))
}

func (i LoadIndirect) String() string {
	return fmt.Sprintf("LDI %v, %s", i.DR, imm(i.Offset))
}

func (i LoadRegister) String() string {
	return fmt.Sprintf("LDR %v, %v, %s", i.DR, i.BaseR, imm(i.Offset))
}

func (i LoadEffectiveAddress) String() string {
	return fmt.Sprintf("LEA %v, %s", i.DR, imm(i.Offset))
}

func (i Store) String() string {
	return fmt.Sprintf("ST %v, %s", i.SR, imm(i.Offset))
}

func (i StoreIndirect) String() string {
	return fmt.Sprintf("STI %v, %s", i.SR, imm(i.Offset))
}

func (i StoreRegister) String() string {
	return fmt.Sprintf("STR %v, %v, %s", i.SR, i.BaseR, imm(i.Offset))
}

func (i Trap) String() string {
	return fmt.Sprintf("TRAP x%02X", i.Vector)
}

func (i Unsupported) String() string {
	return fmt.Sprintf("%v x%04X", i.Op, i.Word)
}
