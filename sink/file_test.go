package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassDescriptorToPath(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("com/example/Foo.smali"), ClassDescriptorToPath("Lcom/example/Foo;"))
	assert.Equal(t, "Foo.smali", ClassDescriptorToPath("LFoo;"))
}

func TestFileFactoryWritesUnderRoot(t *testing.T) {
	dir := t.TempDir()
	f := NewFileFactory(dir)

	w, err := f.Open("Lcom/example/Foo;")
	require.NoError(t, err)

	_, err = w.Write([]byte(".class public Lcom/example/Foo;\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(dir, "com", "example", "Foo.smali"))
	require.NoError(t, err)
	assert.Equal(t, ".class public Lcom/example/Foo;\n", string(got))
}
