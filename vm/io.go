package vm

import (
	"bufio"
	"io"
	"log"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Console is the host character device used by the keyboard registers and
// the trap routines.
type Console interface {
	Keyboard
	io.Writer
	Flush() error
}

// Terminal is a Console over a host tty (or any file, when stdin is redirected).
type Terminal struct {
	in  *bufio.Reader
	fd  int
	out *bufio.Writer

	mu                     sync.Mutex
	raw                    bool
	originalTerminalConfig unix.Termios
}

func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		fd:  int(in.Fd()),
		out: bufio.NewWriter(out),
	}
}

// KeyAvailable polls the input descriptor with a zero timeout.
func (t *Terminal) KeyAvailable() bool {
	if t.in.Buffered() > 0 {
		return true
	}

	var readfds unix.FdSet
	readfds.Zero()
	readfds.Set(t.fd)
	timeout := unix.Timeval{}

	n, err := unix.Select(t.fd+1, &readfds, nil, nil, &timeout)
	if err != nil {
		return false
	}
	return n > 0
}

func (t *Terminal) ReadByte() (byte, error) {
	return t.in.ReadByte()
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// EnableRawMode turns off canonical input and echo. It does nothing when the
// input is not a terminal.
func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !term.IsTerminal(t.fd) {
		log.Printf("input is not a terminal, leaving it as is")
		return nil
	}

	log.Printf("enabling raw mode...")
	if err := termios.Tcgetattr(uintptr(t.fd), &t.originalTerminalConfig); err != nil {
		return errors.Wrapf(err, "tcgetattr")
	}
	newTermios := t.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &newTermios); err != nil {
		return errors.Wrapf(err, "tcsetattr")
	}
	t.raw = true
	return nil
}

// DisableRawMode restores the settings saved by EnableRawMode.
// It is safe to call from several goroutines; only the first call restores.
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.raw {
		return nil
	}

	log.Printf("disabling raw mode...")
	t.raw = false
	return errors.Wrapf(termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &t.originalTerminalConfig), "tcsetattr")
}
