package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// bufferConsole is a Console over in-memory input and output.
type bufferConsole struct {
	input   *bytes.Reader
	output  bytes.Buffer
	flushes int
}

func newBufferConsole(input string) *bufferConsole {
	return &bufferConsole{input: bytes.NewReader([]byte(input))}
}

func (c *bufferConsole) KeyAvailable() bool          { return c.input.Len() > 0 }
func (c *bufferConsole) ReadByte() (byte, error)     { return c.input.ReadByte() }
func (c *bufferConsole) Write(p []byte) (int, error) { return c.output.Write(p) }
func (c *bufferConsole) Flush() error                { c.flushes++; return nil }

// newTestVM places program at UserSpaceStart.
func newTestVM(t *testing.T, input string, program ...word) (*VM, *bufferConsole) {
	t.Helper()

	console := newBufferConsole(input)
	vm := NewVM(console)
	for n, w := range program {
		vm.Memory().Write(UserSpaceStart+word(n), w)
	}
	return vm, console
}

func stepN(t *testing.T, vm *VM, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.NoError(t, vm.Step())
	}
}
