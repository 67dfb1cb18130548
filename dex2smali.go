// Package dex2smali parses Android DEX (Dalvik Executable) files and
// disassembles their classes into smali text.
//
// dex2smali is optimized for whole-file batch disassembly: it parses a
// DEX file's pools once, then fans every class_def_item out across a
// bounded worker pool, writing each class's smali text through a
// pluggable sink.Factory (in-memory, on-disk, or compressed).
//
// # Core Features
//
//   - Full DEX pool parsing (strings, types, protos, fields, methods,
//     method handles, call sites) with best-effort diagnostics rather
//     than hard failures on a single bad entry
//   - Per-class_def_item disassembly: access flags, superclass, fields,
//     methods, and instruction bodies rendered as smali text
//   - Two-pass branch-target labeling (spec.md §4.4/§4.6)
//   - Concurrent disassembly across classes over a lock-free, read-only
//     Dex; only the shared descriptor cache takes a lock (package disasm)
//   - Pluggable output sinks, including streaming Zstd/LZ4/S2 compression
//     (package sink)
//
// # Basic Usage
//
// Parsing and disassembling a DEX file to individual .smali files:
//
//	import "github.com/arloliu/dex2smali"
//
//	raw, _ := os.ReadFile("classes.dex")
//	summary, err := dex2smali.DisassembleBytes(context.Background(), raw, sink.NewFileFactory("out"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, diag := range summary.Diagnostics {
//	    fmt.Fprintln(os.Stderr, diag)
//	}
//
// For finer control (custom worker count, a shared parsed *dex.Dex reused
// across multiple runs, an in-memory sink for testing), use the dex,
// disasm, and sink packages directly.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dex and
// disasm packages, simplifying the most common use case: parse one DEX
// file, disassemble every class, done. For advanced usage, use the
// underlying packages directly.
package dex2smali

import (
	"context"

	"github.com/arloliu/dex2smali/dex"
	"github.com/arloliu/dex2smali/disasm"
	"github.com/arloliu/dex2smali/sink"
)

// Parse parses buf as a DEX file, returning the aggregate pool view used
// by Disassemble and by the disasm/dex packages directly. A malformed
// header aborts with an error; malformed individual pool entries are
// instead recorded on the returned Dex's Diagnostics field (spec.md §7).
func Parse(buf []byte) (*dex.Dex, error) {
	return dex.Parse(buf)
}

// Disassemble runs a disassembly pass over an already-parsed d, writing
// every class's smali text through a sink obtained from factory. It is a
// thin wrapper over disasm.NewDriver().Disassemble, useful when the same
// *dex.Dex is disassembled more than once (e.g. to both a file factory
// and a memory factory) without re-parsing.
func Disassemble(ctx context.Context, d *dex.Dex, factory sink.Factory, opts ...disasm.Option) (disasm.Summary, error) {
	return disasm.NewDriver().Disassemble(ctx, d, factory, opts...)
}

// DisassembleBytes parses buf as a DEX file and disassembles every class
// in one call. This is the most common entry point; it combines Parse and
// Disassemble for callers that don't need the intermediate *dex.Dex.
func DisassembleBytes(ctx context.Context, buf []byte, factory sink.Factory, opts ...disasm.Option) (disasm.Summary, error) {
	d, err := Parse(buf)
	if err != nil {
		return disasm.Summary{}, err
	}

	return Disassemble(ctx, d, factory, opts...)
}

// DisassembleToMemory parses buf and disassembles every class into an
// in-memory sink.MemoryFactory, handy for tests and tools that want the
// rendered smali text directly rather than writing files.
func DisassembleToMemory(ctx context.Context, buf []byte, opts ...disasm.Option) (*sink.MemoryFactory, disasm.Summary, error) {
	factory := sink.NewMemoryFactory()
	summary, err := DisassembleBytes(ctx, buf, factory, opts...)

	return factory, summary, err
}

// DisassembleToDir parses buf and disassembles every class to individual
// .smali files under dir, following the package-segment layout described
// by sink.ClassDescriptorToPath. When compression is Kind other than
// sink.KindNone, each written file is compressed with that codec.
func DisassembleToDir(ctx context.Context, buf []byte, dir string, compression sink.Kind, opts ...disasm.Option) (disasm.Summary, error) {
	var factory sink.Factory = sink.NewFileFactory(dir)
	if compression != sink.KindNone {
		factory = sink.NewCompressingFactory(factory, compression)
	}

	return DisassembleBytes(ctx, buf, factory, opts...)
}
