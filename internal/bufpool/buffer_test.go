package bufpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferWriteAndReset(t *testing.T) {
	buf := newBuffer(8)
	_, err := buf.WriteString(".class public Lfoo;\n")
	require.NoError(t, err)
	assert.Equal(t, ".class public Lfoo;\n", string(buf.Bytes()))

	buf.Reset()
	assert.Equal(t, 0, buf.Len())
}

func TestPoolGetPutRoundTrip(t *testing.T) {
	p := NewPool(16, 64)
	buf := p.Get()
	require.NotNil(t, buf)
	buf.WriteString("hello")
	p.Put(buf)

	buf2 := p.Get()
	assert.Equal(t, 0, buf2.Len(), "pooled buffer must come back reset")
}

func TestPoolDiscardsOversizedBuffer(t *testing.T) {
	p := NewPool(4, 8)
	buf := p.Get()
	buf.B = make([]byte, 0, 1024) // simulate growth past the threshold
	p.Put(buf)                    // should be discarded, not pooled

	buf2 := p.Get()
	require.NotNil(t, buf2)
	assert.Less(t, cap(buf2.B), 1024)
}

func TestMethodAndClassDefaultPools(t *testing.T) {
	m := GetMethodBuffer()
	require.NotNil(t, m)
	PutMethodBuffer(m)

	c := GetClassBuffer()
	require.NotNil(t, c)
	PutClassBuffer(c)
}
