package dex2smali

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/dex2smali/dex"
	"github.com/arloliu/dex2smali/pool"
	"github.com/arloliu/dex2smali/sink"
)

// minimalDex builds a *dex.Dex directly (bypassing the byte-level Parse
// path, already covered by package dex's own tests) with one trivial
// class, enough to exercise this package's wrapper plumbing.
func minimalDex() *dex.Dex {
	return &dex.Dex{
		Strings:   []string{"Lfoo/Bar;", "Ljava/lang/Object;"},
		Types:     []string{"Lfoo/Bar;", "Ljava/lang/Object;"},
		ClassDefs: []pool.ClassDef{{ClassIdx: 0, AccessFlags: 0x1, SuperclassIdx: 1, SourceFileIdx: 0xFFFFFFFF}},
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDisassembleWrapsDriver(t *testing.T) {
	d := minimalDex()
	factory := sink.NewMemoryFactory()

	summary, err := Disassemble(context.Background(), d, factory)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ClassCount)
	assert.Equal(t, 1, summary.SucceededCount)

	out, ok := factory.Bytes("Lfoo/Bar;")
	require.True(t, ok)
	assert.Contains(t, string(out), ".class public Lfoo/Bar;\n")
}

func TestDisassembleBytesPropagatesParseError(t *testing.T) {
	_, err := DisassembleBytes(context.Background(), []byte{1, 2, 3}, sink.NewMemoryFactory())
	assert.Error(t, err)
}

func TestDisassembleToMemoryPropagatesParseError(t *testing.T) {
	_, _, err := DisassembleToMemory(context.Background(), []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDisassembleWithFileFactoryWritesFiles(t *testing.T) {
	d := minimalDex()
	dir := t.TempDir()

	factory := sink.NewFileFactory(dir)
	summary, err := Disassemble(context.Background(), d, factory)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SucceededCount)

	got, err := os.ReadFile(filepath.Join(dir, "foo", "Bar.smali"))
	require.NoError(t, err)
	assert.Contains(t, string(got), ".class public Lfoo/Bar;\n")
}
