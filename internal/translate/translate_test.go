package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("HALT", From("HALT"))
	assert.Equal("Failed to load image: a.obj", From("Failed to load image: %s", "a.obj"))
	assert.Equal("bad opcode 0x8000", From("bad opcode 0x%04x", 0x8000))
}
