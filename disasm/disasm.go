// Package disasm is the per-class orchestration driver: it resolves a
// class's name, walks its fields and methods, and emits the
// `.class`/`.super`/`.field`/`.method` envelope with each method's
// instruction body, following spec.md §4.7. Grounded on the concurrency
// model of spec.md §5 — class processing is independent and read-only
// against a shared, immutable Dex, so classes fan out across a bounded
// worker pool and read the Dex without locking; the one shared mutable
// piece, the descriptor-rendering cache, guards itself with a mutex.
package disasm

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/arloliu/dex2smali/dex"
	"github.com/arloliu/dex2smali/internal/deschash"
	"github.com/arloliu/dex2smali/internal/options"
	"github.com/arloliu/dex2smali/sink"
)

// Diagnostic records a per-class or per-method finding that was
// downgraded to "skip and continue" rather than aborting the whole run,
// per spec.md §7.
type Diagnostic struct {
	ClassDescriptor string
	Stage           string // "class", "super", "class_data", "field", "method", "code_item", "sink", "cancelled"
	Detail          string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s", d.ClassDescriptor, d.Stage, d.Detail)
}

// Summary reports the outcome of a Disassemble call.
type Summary struct {
	ClassCount     int
	SucceededCount int
	SkippedCount   int
	Diagnostics    []Diagnostic
}

// Config holds Driver-wide settings, configured via Option.
type Config struct {
	workerCount int
	logStderr   bool
}

// Option configures a disassembly run.
type Option = options.Option[*Config]

// WithWorkerCount overrides the number of classes processed concurrently.
// Non-positive values are ignored (the default, runtime.GOMAXPROCS(0),
// applies instead).
func WithWorkerCount(n int) Option {
	return options.NoError(func(c *Config) {
		if n > 0 {
			c.workerCount = n
		}
	})
}

// WithoutStderrLogging suppresses the default behavior of writing every
// Diagnostic to os.Stderr once the run finishes (spec.md §7's "diagnostics are
// written to the standard error stream" still happens by default; this
// opts a caller out when it only wants the returned Summary).
func WithoutStderrLogging() Option {
	return options.NoError(func(c *Config) {
		c.logStderr = false
	})
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		workerCount: runtime.GOMAXPROCS(0),
		logStderr:   true,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Driver runs a disassembly pass over a parsed Dex. It holds no state of
// its own; every call to Disassemble is independent.
type Driver struct{}

// NewDriver creates a Driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Disassemble walks every class_def_item in d, rendering each to smali
// text via a sink obtained from factory, fanning work out across a
// bounded worker pool. A per-class failure is recorded as a Diagnostic
// and does not stop sibling classes (spec.md §5/§7).
func (drv *Driver) Disassemble(ctx context.Context, d *dex.Dex, factory sink.Factory, opts ...Option) (Summary, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Summary{}, err
	}

	classes := d.ClassDefs
	results := make([][]Diagnostic, len(classes))

	sem := make(chan struct{}, cfg.workerCount)
	var wg sync.WaitGroup
	cache := deschash.New()

	for i := range classes {
		if err := ctx.Err(); err != nil {
			results[i] = []Diagnostic{{Stage: "cancelled", Detail: err.Error()}}
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = renderClass(d, classes[i], factory, cache)
		}(i)
	}
	wg.Wait()

	summary := Summary{ClassCount: len(classes)}
	for _, diags := range results {
		if len(diags) == 0 {
			summary.SucceededCount++
		} else {
			summary.SkippedCount++
		}
		summary.Diagnostics = append(summary.Diagnostics, diags...)
	}
	if cfg.logStderr {
		logDiagnostics(summary.Diagnostics)
	}

	return summary, nil
}

func logDiagnostics(diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
