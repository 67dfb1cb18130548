// Package sink defines the per-class output contract disasm writes
// rendered smali text into, plus optional compressed decorators.
// Adapted from the teacher's compress.Codec split (Compressor/Decompressor
// over a whole []byte buffer) into a streaming io.Writer decorator, since
// a class's smali text is written incrementally rather than assembled in
// one buffer first.
package sink

import "io"

// Factory opens a fresh io.WriteCloser for one class, named by its
// descriptor (e.g. "Lcom/example/Foo;"). Disasm calls Open once per class
// from its worker pool; distinct classes never share a sink, so a Factory
// implementation need not serialize concurrent Opens against each other
// unless its own bookkeeping requires it.
type Factory interface {
	Open(classDescriptor string) (io.WriteCloser, error)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(classDescriptor string) (io.WriteCloser, error)

// Open calls f.
func (f FactoryFunc) Open(classDescriptor string) (io.WriteCloser, error) {
	return f(classDescriptor)
}

// Kind selects the compression algorithm a CompressingFactory applies to
// every sink it opens. Mirrors the teacher's format.CompressionType enum.
type Kind int

const (
	// KindNone passes bytes through unmodified.
	KindNone Kind = iota
	// KindZstd wraps the sink in a streaming github.com/klauspost/compress/zstd writer.
	KindZstd
	// KindLZ4 wraps the sink in a streaming github.com/pierrec/lz4/v4 writer.
	KindLZ4
	// KindS2 wraps the sink in a streaming github.com/klauspost/compress/s2 writer.
	KindS2
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindZstd:
		return "zstd"
	case KindLZ4:
		return "lz4"
	case KindS2:
		return "s2"
	default:
		return "unknown"
	}
}

// CompressingFactory wraps an inner Factory, compressing everything
// written to each class's sink with the configured Kind.
type CompressingFactory struct {
	inner Factory
	kind  Kind
}

// NewCompressingFactory builds a CompressingFactory delegating sink
// creation to inner and compressing every write with kind. KindNone
// returns inner's sinks unwrapped.
func NewCompressingFactory(inner Factory, kind Kind) *CompressingFactory {
	return &CompressingFactory{inner: inner, kind: kind}
}

// Open opens inner's sink for classDescriptor and wraps it per f.kind.
func (f *CompressingFactory) Open(classDescriptor string) (io.WriteCloser, error) {
	w, err := f.inner.Open(classDescriptor)
	if err != nil {
		return nil, err
	}
	return wrap(w, f.kind)
}

func wrap(w io.WriteCloser, kind Kind) (io.WriteCloser, error) {
	switch kind {
	case KindNone:
		return w, nil
	case KindZstd:
		return newZstdWriteCloser(w)
	case KindLZ4:
		return newLZ4WriteCloser(w), nil
	case KindS2:
		return newS2WriteCloser(w), nil
	default:
		return nil, errUnknownKind(kind)
	}
}

type errUnknownKind Kind

func (e errUnknownKind) Error() string {
	return "sink: unknown compression kind " + Kind(e).String()
}
