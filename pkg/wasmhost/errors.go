package wasmhost

import "errors"

var (
	// ErrCompile is returned when the module bytes are not valid WebAssembly.
	ErrCompile = errors.New("wasmhost: compile module")

	// ErrInstantiate is returned when the module or its WASI imports cannot be instantiated.
	ErrInstantiate = errors.New("wasmhost: instantiate module")

	// ErrMissingExport is returned when the module lacks one of the exports the host calls.
	ErrMissingExport = errors.New("wasmhost: missing export")

	// ErrAllocate is returned when the guest cannot provide a buffer for the input.
	ErrAllocate = errors.New("wasmhost: allocate guest buffer")

	// ErrMemoryWrite is returned when the input does not fit at the address the guest returned.
	ErrMemoryWrite = errors.New("wasmhost: write guest memory")

	// ErrCall is returned when an exported function traps or fails.
	ErrCall = errors.New("wasmhost: call export")

	// ErrUnexpectedResult is returned when an export returns an unexpected number of values.
	ErrUnexpectedResult = errors.New("wasmhost: unexpected result")

	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("wasmhost: module closed")
)
