package sink

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileFactory opens one .smali file per class under a root directory,
// mirroring baksmali's output layout: a class descriptor's package
// segments become nested directories and the leading "L"/trailing ";"
// are stripped to form the file name, but only for that purpose — the
// descriptor text written into the smali body itself is left intact.
type FileFactory struct {
	root string
}

// NewFileFactory builds a FileFactory rooted at dir. dir is created (with
// any missing parents) lazily, on the first Open call.
func NewFileFactory(dir string) *FileFactory {
	return &FileFactory{root: dir}
}

// Open creates (and truncates) the .smali file for classDescriptor,
// creating any missing parent directories along the way.
func (f *FileFactory) Open(classDescriptor string) (io.WriteCloser, error) {
	rel := ClassDescriptorToPath(classDescriptor)
	full := filepath.Join(f.root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}

	return os.Create(full)
}

// ClassDescriptorToPath converts a class descriptor like
// "Lcom/example/Foo;" into the relative file path
// "com/example/Foo.smali", per the driver's output-naming rule: the
// leading "L" and trailing ";" are stripped, and each "/" segment
// becomes a directory component.
func ClassDescriptorToPath(classDescriptor string) string {
	d := classDescriptor
	d = strings.TrimPrefix(d, "L")
	d = strings.TrimSuffix(d, ";")
	return filepath.FromSlash(d) + ".smali"
}
