// Package wasmtest assembles small WebAssembly modules that implement the
// validate_length guest ABI, for tests that must not depend on a wasip1 build.
//
// Module{AllocPtr: 1024}.Bytes() is equivalent to:
//
//	(module
//	  (memory (export "memory") 1)
//	  (func (export "allocate") (param i32) (result i32) i32.const 1024)
//	  (func (export "deallocate") (param i32))
//	  (func (export "validate_length") (param i32 i32) (result i32)
//	    local.get 1 i32.const 10 i32.lt_u))
package wasmtest

const (
	opEnd         = 0x0b
	opUnreachable = 0x00
	opLocalGet    = 0x20
	opI32Const    = 0x41
	opI32LtU      = 0x49
	typeFunc      = 0x60
	typeI32       = 0x7f
	kindFunc      = 0x00
	kindMemory    = 0x02

	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionExport   = 7
	sectionCode     = 10
)

// Module describes a fixture guest.
type Module struct {
	// AllocPtr is the constant address returned by allocate.
	AllocPtr int32
	// Trap makes validate_length execute "unreachable".
	Trap bool
	// NoMemory keeps the memory unexported.
	NoMemory bool
	// SkipAlloc leaves allocate unexported.
	SkipAlloc bool
	// SkipValidate leaves validate_length unexported.
	SkipValidate bool
	// NoResult declares validate_length as (i32 i32) -> ().
	NoResult bool
}

// Guest returns a well-behaved module allocating at address 1024.
func Guest() []byte {
	return Module{AllocPtr: 1024}.Bytes()
}

// MissingImport returns a module importing env.missing, which no host provides.
func MissingImport() []byte {
	return concat(
		header,
		section(sectionType, vec([]byte{typeFunc, 0, 0})),
		section(sectionImport, vec(concat(name("env"), name("missing"), []byte{kindFunc, 0}))),
	)
}

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// Bytes encodes the module.
func (m Module) Bytes() []byte {
	types := vec(
		[]byte{typeFunc, 1, typeI32, 1, typeI32},          // 0: (i32) -> i32
		[]byte{typeFunc, 1, typeI32, 0},                   // 1: (i32) -> ()
		[]byte{typeFunc, 2, typeI32, typeI32, 1, typeI32}, // 2: (i32 i32) -> i32
		[]byte{typeFunc, 2, typeI32, typeI32, 0},          // 3: (i32 i32) -> ()
	)

	validateType := byte(2)
	validate := []byte{opLocalGet, 1, opI32Const, 10, opI32LtU}
	switch {
	case m.Trap:
		validate = []byte{opUnreachable}
	case m.NoResult:
		validateType, validate = 3, nil
	}
	funcs := vec([]byte{0}, []byte{1}, []byte{validateType})

	code := vec(
		body(concat([]byte{opI32Const}, sleb(m.AllocPtr))...),
		body(),
		body(validate...),
	)

	var exports [][]byte
	if !m.NoMemory {
		exports = append(exports, export("memory", kindMemory, 0))
	}
	if !m.SkipAlloc {
		exports = append(exports, export("allocate", kindFunc, 0))
	}
	exports = append(exports, export("deallocate", kindFunc, 1))
	if !m.SkipValidate {
		exports = append(exports, export("validate_length", kindFunc, 2))
	}

	return concat(
		header,
		section(sectionType, types),
		section(sectionFunction, funcs),
		section(sectionMemory, vec([]byte{0x00, 0x01})), // one memory, min 1 page
		section(sectionExport, vec(exports...)),
		section(sectionCode, code),
	)
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func vec(items ...[]byte) []byte {
	return concat(uleb(uint32(len(items))), concat(items...))
}

func section(id byte, payload []byte) []byte {
	return concat([]byte{id}, uleb(uint32(len(payload))), payload)
}

func name(s string) []byte {
	return concat(uleb(uint32(len(s))), []byte(s))
}

func export(n string, kind byte, idx uint32) []byte {
	return concat(name(n), []byte{kind}, uleb(idx))
}

func body(code ...byte) []byte {
	b := concat([]byte{0x00}, code, []byte{opEnd})
	return concat(uleb(uint32(len(b))), b)
}
