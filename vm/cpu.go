package vm

import (
	"fmt"
	"log"
)

// State is the run state of the executor.
type State int

const (
	StateRunning State = iota
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateHalted:
		return "HALTED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type cpu struct {
	state     State
	memory    *Memory
	registers Registers
	console   Console
	trace     bool
}

func newCpu(memory *Memory, console Console) *cpu {
	cpu := &cpu{
		state:   StateRunning,
		memory:  memory,
		console: console,
	}
	cpu.registers[PC] = UserSpaceStart
	cpu.registers[COND] = FLAG_ZRO
	return cpu
}

func (cpu *cpu) stop() {
	cpu.state = StateHalted
}

// step fetches the word at PC, advances PC and executes the instruction.
func (cpu *cpu) step() error {
	if cpu.state == StateHalted {
		return ErrHalted
	}

	addr := cpu.registers[PC]
	instruction := cpu.memory.Read(addr)
	cpu.registers[PC]++

	decoded := Decode(instruction)
	if cpu.trace {
		log.Printf("0x%04x %v", addr, decoded)
	}

	return cpu.execute(addr, decoded)
}

func (cpu *cpu) execute(addr word, instruction Instruction) error {
	reg := &cpu.registers

	switch i := instruction.(type) {
	case Add:
		if i.Immediate {
			reg[i.DR] = reg[i.SR1] + i.Imm
		} else {
			reg[i.DR] = reg[i.SR1] + reg[i.SR2]
		}
		reg.UpdateFlags(i.DR)

	case And:
		if i.Immediate {
			reg[i.DR] = reg[i.SR1] & i.Imm
		} else {
			reg[i.DR] = reg[i.SR1] & reg[i.SR2]
		}
		reg.UpdateFlags(i.DR)

	case Not:
		reg[i.DR] = ^reg[i.SR]
		reg.UpdateFlags(i.DR)

	case Branch:
		if i.NZP&reg[COND] != 0 {
			reg[PC] += i.Offset
		}

	case Jump:
		reg[PC] = reg[i.BaseR]

	case JumpSubroutine:
		// R7 is written first, so JSRR R7 lands on the return address
		reg[R7] = reg[PC]
		if i.Long {
			reg[PC] += i.Offset
		} else {
			reg[PC] = reg[i.BaseR]
		}

	case Load:
		// accumulates into DR rather than replacing it
		reg[i.DR] += cpu.memory.Read(reg[PC] + i.Offset)
		reg.UpdateFlags(i.DR)

	case LoadIndirect:
		reg[i.DR] = cpu.memory.Read(cpu.memory.Read(reg[PC] + i.Offset))
		reg.UpdateFlags(i.DR)

	case LoadRegister:
		reg[i.DR] = cpu.memory.Read(reg[i.BaseR] + i.Offset)
		reg.UpdateFlags(i.DR)

	case LoadEffectiveAddress:
		reg[i.DR] = reg[PC] + i.Offset
		reg.UpdateFlags(i.DR)

	case Store:
		cpu.memory.Write(reg[PC]+i.Offset, reg[i.SR])

	case StoreIndirect:
		cpu.memory.Write(cpu.memory.Read(reg[PC]+i.Offset), reg[i.SR])

	case StoreRegister:
		cpu.memory.Write(reg[i.BaseR]+i.Offset, reg[i.SR])

	case Trap:
		reg[R7] = reg[PC]
		return cpu.trap(i.Vector)

	case Unsupported:
		cpu.stop()
		return &UnsupportedOpcodeError{Op: i.Op, Word: i.Word, Addr: addr}

	default:
		panic(fmt.Sprintf("vm: unhandled instruction %T", instruction))
	}

	return nil
}
