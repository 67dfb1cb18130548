package accessflag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectField(t *testing.T) {
	assert.Equal(t, "public static final", Project(Public|Static|Final, ContextField))
	assert.Equal(t, "private volatile", Project(Private|0x40, ContextField))
	assert.Equal(t, "private transient", Project(Private|0x80, ContextField))
}

func TestProjectMethod(t *testing.T) {
	assert.Equal(t, "public bridge", Project(Public|0x40, ContextMethod))
	assert.Equal(t, "public varargs synthetic", Project(Public|0x80|Synthetic, ContextMethod))
}

func TestProjectDeterministicOrder(t *testing.T) {
	flags := Enum | Public | Abstract
	assert.Equal(t, "public abstract enum", Project(flags, ContextClass))
}

func TestProjectEmpty(t *testing.T) {
	assert.Equal(t, "", Project(0, ContextField))
}
