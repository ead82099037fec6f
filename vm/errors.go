package vm

import (
	"github.com/pkg/errors"

	"github.com/aryanA101a/lc3vm/internal/translate"
)

var f = translate.From

var (
	ErrHalted = errors.New(f("machine halted"))
)

// ImageLoadError reports an image file that could not be read.
type ImageLoadError struct {
	Path string
	Err  error
}

func (err *ImageLoadError) Error() string {
	return f("load image %v: %v", err.Path, err.Err)
}

func (err *ImageLoadError) Unwrap() error {
	return err.Err
}

// UnsupportedOpcodeError is the fault raised by RTI and RES.
type UnsupportedOpcodeError struct {
	Op   Opcode
	Word word
	Addr word
}

func (err *UnsupportedOpcodeError) Error() string {
	return f("0x%04x: unsupported opcode %v (0x%04x)", err.Addr, err.Op, err.Word)
}

func (err *UnsupportedOpcodeError) Is(target error) (ok bool) {
	_, ok = target.(*UnsupportedOpcodeError)
	return
}
