package vm

const MemorySize = 1 << 16

const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

// Keyboard is the host input device behind KBSR and KBDR.
type Keyboard interface {
	// KeyAvailable reports, without blocking, whether a key is waiting.
	KeyAvailable() bool
	ReadByte() (byte, error)
}

// Memory is the 64K word address space. Addresses are uint16, so every
// address is valid and arithmetic on them wraps.
type Memory struct {
	cells    [MemorySize]word
	keyboard Keyboard
}

func NewMemory(keyboard Keyboard) *Memory {
	return &Memory{keyboard: keyboard}
}

// Read returns the word at addr. Reading KBSR polls the keyboard and latches
// a pending key into KBDR with the status ready bit set, or clears KBSR.
func (mem *Memory) Read(addr word) word {
	if addr == KBSR {
		mem.pollKeyboard()
	}
	return mem.cells[addr]
}

func (mem *Memory) Write(addr, value word) {
	mem.cells[addr] = value
}

// peek returns the stored word at addr without device side effects.
func (mem *Memory) peek(addr word) word {
	return mem.cells[addr]
}

func (mem *Memory) pollKeyboard() {
	if mem.keyboard != nil && mem.keyboard.KeyAvailable() {
		c, err := mem.keyboard.ReadByte()
		if err == nil {
			mem.cells[KBSR] = 1 << 15
			mem.cells[KBDR] = word(c)
			return
		}
	}
	mem.cells[KBSR] = 0
}
