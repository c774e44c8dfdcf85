package wasm

// Import/Export descriptor kinds identify the type of imported or exported item.
const (
	KindFunc   byte = 0 // Function import/export
	KindTable  byte = 1 // Table import/export
	KindMemory byte = 2 // Memory import/export
	KindGlobal byte = 3 // Global import/export
	KindTag    byte = 4 // Tag import/export (exception handling)
)

// Value type encodings as defined in the WebAssembly binary format.
// Core types use 0x7F-0x7B, reference types use 0x73-0x63.
const (
	ValI32     ValType = 0x7F // 32-bit integer
	ValI64     ValType = 0x7E // 64-bit integer
	ValF32     ValType = 0x7D // 32-bit float
	ValF64     ValType = 0x7C // 64-bit float
	ValV128    ValType = 0x7B // 128-bit vector (SIMD)
	ValFuncRef ValType = 0x70 // Function reference
	ValExtern  ValType = 0x6F // External reference

	// GC proposal reference types
	ValRefNull       ValType = 0x63 // (ref null ht) - nullable reference with heap type
	ValRef           ValType = 0x64 // (ref ht) - non-nullable reference with heap type
	ValNullFuncRef   ValType = 0x73 // nullfuncref - null function reference
	ValNullExternRef ValType = 0x72 // nullexternref - null external reference
	ValNullRef       ValType = 0x71 // nullref - bottom type for internal hierarchy
	ValEqRef         ValType = 0x6D // eqref - equality-comparable reference
	ValI31Ref        ValType = 0x6C // i31ref - 31-bit integer reference
	ValStructRef     ValType = 0x6B // structref - struct reference
	ValArrayRef      ValType = 0x6A // arrayref - array reference
	ValAnyRef        ValType = 0x6E // anyref - any internal reference
)

// Opcodes for the minimal core this interpreter executes: local/global
// access, scalar constants, ref.null/ref.func, and the 0xFB GC prefix.
// Everything control-flow/numeric/memory/SIMD/atomic that the teacher's
// full decoder handled is out of scope (see the Scope section of the root
// gcwasm package doc).
const (
	OpEnd    byte = 0x0B
	OpReturn byte = 0x0F

	OpLocalGet  byte = 0x20
	OpLocalSet  byte = 0x21
	OpLocalTee  byte = 0x22
	OpGlobalGet byte = 0x23

	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44

	OpRefNull byte = 0xD0
	OpRefFunc byte = 0xD2

	// OpPrefixGC introduces a LEB128 sub-opcode selecting one of the
	// GCStruct*/GCArray*/GCRef*/GCI31* operations below.
	OpPrefixGC byte = 0xFB
)

// GC (0xFB-prefixed) sub-opcodes. Numbering matches the GC proposal; only
// the struct/array/cast/i31 subset the interpreter dispatches is kept.
const (
	GCStructNew        uint32 = 0x00
	GCStructNewDefault uint32 = 0x01
	GCStructGet        uint32 = 0x02
	GCStructGetS       uint32 = 0x03
	GCStructGetU       uint32 = 0x04
	GCStructSet        uint32 = 0x05
	GCArrayNew         uint32 = 0x06
	GCArrayGet         uint32 = 0x0B
	GCArrayGetS        uint32 = 0x0C
	GCArrayGetU        uint32 = 0x0D
	GCArraySet         uint32 = 0x0E
	GCRefTest          uint32 = 0x14
	GCRefTestNull      uint32 = 0x15
	GCRefCast          uint32 = 0x16
	GCRefCastNull      uint32 = 0x17
	GCRefI31           uint32 = 0x1C
	GCI31GetS          uint32 = 0x1D
	GCI31GetU          uint32 = 0x1E
)

// Abstract heap-type sentinels, encoded as negative s33 immediates on
// ref.test/ref.cast/ref.null. Concrete heap types are non-negative module
// type indices. subtype.HeapType mirrors these values independently of
// the wire encoding (see subtype/subtype.go).
const (
	HeapTypeFunc     int64 = -16 // 0x70 - function reference
	HeapTypeExtern   int64 = -17 // 0x6F - external reference
	HeapTypeAny      int64 = -18 // 0x6E - any reference
	HeapTypeEq       int64 = -19 // 0x6D - eq reference
	HeapTypeI31      int64 = -20 // 0x6C - i31 reference
	HeapTypeStruct   int64 = -21 // 0x6B - struct reference
	HeapTypeArray    int64 = -22 // 0x6A - array reference
	HeapTypeNone     int64 = -15 // 0x71 - none (bottom of internal)
	HeapTypeNoExtern int64 = -14 // 0x72 - noextern (bottom of external)
	HeapTypeNoFunc   int64 = -13 // 0x73 - nofunc (bottom of func)
)

// Type-section composite-type encoding bytes, used by CompKindFunc/
// CompKindStruct/CompKindArray in types.go.
const (
	FuncTypeByte   byte = 0x60
	StructTypeByte byte = 0x5F
	ArrayTypeByte  byte = 0x5E
)

// MemoryMaxPages32/64 bound a linear memory's declared page limits.
const (
	MemoryMaxPages32 uint64 = 1 << 16 // 4 GiB address space / 64 KiB pages
	MemoryMaxPages64 uint64 = 1 << 48
)
