// Package wasmhost runs a compiled validate_length WebAssembly module and
// calls it from Go.
//
// The guest must export linear memory as "memory" and three functions:
//
//	allocate(size i32) -> ptr i32
//	validate_length(ptr i32, len i32) -> i32   // 1 = true, 0 = false
//	deallocate(ptr i32)
//
// The host copies the UTF-8 bytes of the text into a buffer obtained from
// allocate, calls validate_length, and releases the buffer. Modules built
// from cmd/validatelength-wasm satisfy this contract; "_initialize" is run at
// instantiation when the guest exports it.
//
//	mod, err := wasmhost.Load(ctx, "validate_length.wasm")
//	if err != nil {
//	    return err
//	}
//	defer mod.Close(ctx)
//
//	ok, err := mod.ValidateLength(ctx, "123456789") // true, nil
//
// A Module serializes calls internally and may be shared between goroutines.
package wasmhost
