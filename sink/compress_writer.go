package sink

import (
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// closingLayer closes both the compression layer and the underlying
// io.WriteCloser it wraps, in that order (flush the codec before closing
// its destination).
type closingLayer struct {
	io.Writer
	layerCloser func() error
	dest        io.WriteCloser
}

func (c *closingLayer) Close() error {
	if err := c.layerCloser(); err != nil {
		c.dest.Close()
		return err
	}
	return c.dest.Close()
}

func newZstdWriteCloser(dest io.WriteCloser) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(dest, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &closingLayer{Writer: enc, layerCloser: enc.Close, dest: dest}, nil
}

func newLZ4WriteCloser(dest io.WriteCloser) io.WriteCloser {
	w := lz4.NewWriter(dest)
	return &closingLayer{Writer: w, layerCloser: w.Close, dest: dest}
}

func newS2WriteCloser(dest io.WriteCloser) io.WriteCloser {
	w := s2.NewWriter(dest)
	return &closingLayer{Writer: w, layerCloser: w.Close, dest: dest}
}
