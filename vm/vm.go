package vm

import (
	"context"
)

// VM is one emulated machine: memory, register file and the executor bound
// to a host console.
type VM struct {
	memory *Memory
	cpu    *cpu
}

// NewVM returns a machine with zeroed memory, PC at UserSpaceStart and COND
// set to ZERO.
func NewVM(console Console) *VM {
	mem := NewMemory(console)
	return &VM{
		memory: mem,
		cpu:    newCpu(mem, console),
	}
}

// SetTrace enables per-instruction logging.
func (vm *VM) SetTrace(trace bool) {
	vm.cpu.trace = trace
}

// LoadImageFiles loads each image in order; later images overwrite earlier
// ones where they overlap.
func (vm *VM) LoadImageFiles(paths ...string) error {
	for _, path := range paths {
		if err := vm.memory.LoadImageFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Memory returns the machine's address space.
func (vm *VM) Memory() *Memory {
	return vm.memory
}

// Registers returns the live register file.
func (vm *VM) Registers() *Registers {
	return &vm.cpu.registers
}

// State reports whether the machine is running or halted.
func (vm *VM) State() State {
	return vm.cpu.state
}

// Step executes a single instruction.
func (vm *VM) Step() error {
	return vm.cpu.step()
}

// Run executes until HALT, a fault, or ctx is done.
func (vm *VM) Run(ctx context.Context) error {
	for vm.cpu.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.cpu.step(); err != nil {
			return err
		}
	}
	return nil
}

// Stop halts the machine; the next Step returns ErrHalted.
func (vm *VM) Stop() {
	vm.cpu.stop()
}
