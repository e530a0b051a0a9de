package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Use("en-US"))
	assert.Equal("opcode 7 at 12", From("opcode %v at %v", 7, 12))
	assert.Equal("plain", From("plain"))
}

func TestUse_Invalid(t *testing.T) {
	assert := assert.New(t)

	assert.Error(Use("not a language tag!"))
	assert.Equal("still works", From("still works"))
}
