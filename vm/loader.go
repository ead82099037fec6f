package vm

import (
	"bufio"
	"encoding/binary"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

// LoadImage reads a program image from r into memory. The first big-endian
// word is the origin; the remaining words are stored from the origin upward
// until the stream ends or the address space runs out. A trailing odd byte is
// ignored. It returns the origin and the number of program words loaded.
func (mem *Memory) LoadImage(r io.Reader) (origin word, count int, err error) {
	br := bufio.NewReader(r)
	var buf [2]byte

	if _, err = io.ReadFull(br, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, 0, nil
		}
		return 0, 0, errors.Wrapf(err, "origin")
	}
	origin = binary.BigEndian.Uint16(buf[:])

	maxRead := MemorySize - int(origin)
	for count < maxRead {
		if _, err = io.ReadFull(br, buf[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return origin, count, nil
			}
			return origin, count, errors.Wrapf(err, "word %v", count)
		}
		mem.cells[int(origin)+count] = binary.BigEndian.Uint16(buf[:])
		count++
	}

	return origin, count, nil
}

// LoadImageFile loads the image at path, wrapping any failure in an
// *ImageLoadError.
func (mem *Memory) LoadImageFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &ImageLoadError{Path: path, Err: err}
	}
	defer file.Close()

	origin, count, err := mem.LoadImage(file)
	if err != nil {
		return &ImageLoadError{Path: path, Err: err}
	}

	log.Printf("%s: loaded %v words at 0x%04x", path, count, origin)
	return nil
}
