// Package bufpool pools the byte buffers disasm uses to accumulate a
// class's rendered smali text before handing it to a sink. Adapted from
// internal/pool's ByteBufferPool: same Get/Put shape, resized for
// smali source text instead of metric blobs.
package bufpool

import (
	"io"
	"sync"
)

const (
	// MethodBufferDefaultSize sizes a buffer for one method's rendered
	// body: header lines, a handful of instructions, a footer.
	MethodBufferDefaultSize = 1024 * 2 // 2KiB
	// MethodBufferMaxThreshold discards buffers grown past this rather
	// than returning them to the pool, so one pathologically large
	// method doesn't inflate steady-state memory for every method after it.
	MethodBufferMaxThreshold = 1024 * 256 // 256KiB

	// ClassBufferDefaultSize sizes a buffer for a whole class: its
	// .class/.super header plus every field and method.
	ClassBufferDefaultSize  = 1024 * 16  // 16KiB
	ClassBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// Buffer is a growable byte buffer reused across class/method renders.
type Buffer struct {
	B []byte
}

func newBuffer(defaultSize int) *Buffer {
	return &Buffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte { return b.B }

// Reset empties the buffer, retaining its allocated memory.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// WriteString appends s, growing the buffer as needed.
func (b *Buffer) WriteString(s string) (int, error) {
	b.B = append(b.B, s...)
	return len(s), nil
}

// Write appends data, growing the buffer as needed.
func (b *Buffer) Write(data []byte) (int, error) {
	b.B = append(b.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.B = append(b.B, c)
	return nil
}

// WriteTo writes the buffer's contents to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.B)
	return int64(n), err
}

// Pool is a sync.Pool of Buffers, discarding any buffer grown past
// maxThreshold instead of returning it for reuse.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return newBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns buf to the pool, discarding it instead if it grew past the
// pool's maxThreshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var (
	methodPool = NewPool(MethodBufferDefaultSize, MethodBufferMaxThreshold)
	classPool  = NewPool(ClassBufferDefaultSize, ClassBufferMaxThreshold)
)

// GetMethodBuffer retrieves a Buffer from the default method-sized pool.
func GetMethodBuffer() *Buffer { return methodPool.Get() }

// PutMethodBuffer returns buf to the default method-sized pool.
func PutMethodBuffer(buf *Buffer) { methodPool.Put(buf) }

// GetClassBuffer retrieves a Buffer from the default class-sized pool.
func GetClassBuffer() *Buffer { return classPool.Get() }

// PutClassBuffer returns buf to the default class-sized pool.
func PutClassBuffer(buf *Buffer) { classPool.Put(buf) }
