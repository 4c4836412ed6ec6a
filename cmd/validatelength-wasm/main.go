//go:build wasip1

// Command validatelength-wasm is a WebAssembly reactor exporting
// validate_length to a host.
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o validate_length.wasm ./cmd/validatelength-wasm
//
// The host writes the text's UTF-8 bytes into a buffer from allocate, calls
// validate_length with the buffer address and byte count, then releases the
// buffer with deallocate.
package main

import (
	"unsafe"

	"github.com/dmitrymomot/lengthcheck/pkg/validator"
)

// buffers keeps host-owned allocations reachable until deallocate.
var buffers = map[uint32][]byte{}

//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
	buffers[ptr] = buf
	return ptr
}

//go:wasmexport deallocate
func deallocate(ptr uint32) {
	delete(buffers, ptr)
}

//go:wasmexport validate_length
func validateLength(ptr, size uint32) uint32 {
	if validator.ValidateLength(view(ptr, size)) {
		return 1
	}
	return 0
}

func view(ptr, size uint32) string {
	if size == 0 {
		return ""
	}
	return unsafe.String((*byte)(unsafe.Pointer(uintptr(ptr))), size)
}

func main() {}
