package wasmhost

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/dmitrymomot/lengthcheck/pkg/logger"
)

// Export names the guest must provide.
const (
	ExportMemory         = "memory"
	ExportAllocate       = "allocate"
	ExportDeallocate     = "deallocate"
	ExportValidateLength = "validate_length"
)

// Module is an instantiated validate_length guest.
type Module struct {
	mu     sync.Mutex
	closed bool

	log      *slog.Logger
	runtime  wazero.Runtime
	memory   api.Memory
	allocate api.Function
	free     api.Function
	validate api.Function
}

// Load reads a module from path and instantiates it with New.
func Load(ctx context.Context, path string, opts ...Option) (*Module, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wasmhost: read %s: %w", path, err)
	}
	return New(ctx, wasm, opts...)
}

// New compiles and instantiates wasm and resolves the exports the host calls.
// The returned Module owns its runtime and must be closed.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Module, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := o.log.With(logger.Component("wasmhost"))

	r := wazero.NewRuntime(ctx)

	m, err := instantiate(ctx, r, wasm, o)
	if err != nil {
		if cerr := r.Close(ctx); cerr != nil {
			log.WarnContext(ctx, "close runtime after failed instantiate", logger.Error(cerr))
		}
		log.ErrorContext(ctx, "wasm module rejected", logger.Error(err), logger.Bytes(len(wasm)))
		return nil, err
	}
	m.log = log

	log.DebugContext(ctx, "wasm module instantiated", logger.Bytes(len(wasm)))
	return m, nil
}

func instantiate(ctx context.Context, r wazero.Runtime, wasm []byte, o *options) (*Module, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return nil, fmt.Errorf("%w: wasi: %w", ErrInstantiate, err)
	}

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}

	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize").
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)
	if o.stdout != nil {
		cfg = cfg.WithStdout(o.stdout)
	}
	if o.stderr != nil {
		cfg = cfg.WithStderr(o.stderr)
	}

	mod, err := r.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstantiate, err)
	}

	m := &Module{runtime: r}
	if m.memory = mod.ExportedMemory(ExportMemory); m.memory == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingExport, ExportMemory)
	}
	for _, export := range []struct {
		name string
		fn   *api.Function
	}{
		{ExportAllocate, &m.allocate},
		{ExportDeallocate, &m.free},
		{ExportValidateLength, &m.validate},
	} {
		if *export.fn = mod.ExportedFunction(export.name); *export.fn == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingExport, export.name)
		}
	}
	return m, nil
}

// ValidateLength reports whether the guest accepts text. The predicate itself
// cannot fail; a non-nil error always describes a failure at the module
// boundary.
func (m *Module) ValidateLength(ctx context.Context, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrClosed
	}
	if uint64(len(text)) > math.MaxUint32 {
		return false, fmt.Errorf("%w: %d bytes exceeds 32-bit address space", ErrAllocate, len(text))
	}

	size := uint32(len(text))
	var ptr uint32
	if size > 0 {
		p, err := m.call(ctx, m.allocate, ExportAllocate, uint64(size))
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrAllocate, err)
		}
		if p == 0 {
			return false, fmt.Errorf("%w: guest returned null for %d bytes", ErrAllocate, size)
		}
		ptr = p
		defer m.release(ctx, ptr)

		if !m.memory.WriteString(ptr, text) {
			return false, fmt.Errorf("%w: %d bytes at %#x", ErrMemoryWrite, size, ptr)
		}
	}

	res, err := m.call(ctx, m.validate, ExportValidateLength, uint64(ptr), uint64(size))
	if err != nil {
		return false, err
	}
	return res != 0, nil
}

// call invokes fn and returns its single i32 result.
func (m *Module) call(ctx context.Context, fn api.Function, name string, params ...uint64) (uint32, error) {
	res, err := fn.Call(ctx, params...)
	if err != nil {
		m.log.ErrorContext(ctx, "wasm call failed", logger.Export(name), logger.Error(err))
		return 0, fmt.Errorf("%w %s: %w", ErrCall, name, err)
	}
	if len(res) != 1 {
		return 0, fmt.Errorf("%w: %s returned %d values", ErrUnexpectedResult, name, len(res))
	}
	return api.DecodeU32(res[0]), nil
}

func (m *Module) release(ctx context.Context, ptr uint32) {
	if _, err := m.free.Call(ctx, uint64(ptr)); err != nil {
		m.log.ErrorContext(ctx, "wasm call failed", logger.Export(ExportDeallocate), logger.Error(err))
	}
}

// Close releases the runtime and every resource of the module. It is safe to
// call more than once.
func (m *Module) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if err := m.runtime.Close(ctx); err != nil {
		return fmt.Errorf("wasmhost: close runtime: %w", err)
	}
	m.log.DebugContext(ctx, "wasm module closed")
	return nil
}
