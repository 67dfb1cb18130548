package sink

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFactoryRoundTrip(t *testing.T) {
	f := NewMemoryFactory()
	w, err := f.Open("Lfoo/Bar;")
	require.NoError(t, err)

	_, err = w.Write([]byte(".class public Lfoo/Bar;\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, ok := f.Bytes("Lfoo/Bar;")
	require.True(t, ok)
	assert.Equal(t, ".class public Lfoo/Bar;\n", string(got))
	assert.Equal(t, []string{"Lfoo/Bar;"}, f.Classes())
}

func TestMemoryFactoryRejectsDuplicateOpen(t *testing.T) {
	f := NewMemoryFactory()
	_, err := f.Open("Lfoo/Bar;")
	require.NoError(t, err)

	_, err = f.Open("Lfoo/Bar;")
	require.Error(t, err)
}

func TestCompressingFactoryNoneIsPassthrough(t *testing.T) {
	inner := NewMemoryFactory()
	cf := NewCompressingFactory(inner, KindNone)

	w, err := cf.Open("Lfoo/Bar;")
	require.NoError(t, err)
	_, err = w.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, _ := inner.Bytes("Lfoo/Bar;")
	assert.Equal(t, "plain text", string(got))
}

func TestCompressingFactoryZstdRoundTrip(t *testing.T) {
	inner := NewMemoryFactory()
	cf := NewCompressingFactory(inner, KindZstd)

	w, err := cf.Open("Lfoo/Bar;")
	require.NoError(t, err)
	payload := []byte(".method public bar()V\n.end method\n")
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	compressed, _ := inner.Bytes("Lfoo/Bar;")
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	out, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestCompressingFactoryLZ4RoundTrip(t *testing.T) {
	inner := NewMemoryFactory()
	cf := NewCompressingFactory(inner, KindLZ4)

	w, err := cf.Open("Lfoo/Bar;")
	require.NoError(t, err)
	payload := []byte(".method public bar()V\n.end method\n")
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	compressed, _ := inner.Bytes("Lfoo/Bar;")
	r := lz4.NewReader(bytes.NewReader(compressed))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestCompressingFactoryS2RoundTrip(t *testing.T) {
	inner := NewMemoryFactory()
	cf := NewCompressingFactory(inner, KindS2)

	w, err := cf.Open("Lfoo/Bar;")
	require.NoError(t, err)
	payload := []byte(".method public bar()V\n.end method\n")
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	compressed, _ := inner.Bytes("Lfoo/Bar;")
	out, err := s2.Decode(nil, compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "zstd", KindZstd.String())
	assert.Equal(t, "lz4", KindLZ4.String())
	assert.Equal(t, "s2", KindS2.String())
}
