// Package gcwasm is the root of a WebAssembly runtime core supporting the GC
// proposal (typed references, struct/array objects, i31ref, subtype casts)
// and the Component Model Canonical ABI's scalar and string lift/lower.
//
// # Architecture
//
//	gcwasm/           Memory/Allocator interfaces and LinearMemory
//	├── value/        operand-stack word encoding (null / i31 / GC ref)
//	├── heap/         GC heap: alloc, mark-sweep collection, free list
//	├── subtype/      abstract + concrete heap-type matching
//	├── canon/        Canonical ABI scalar and string lift/lower
//	├── wasm/         decoded module AST: types, instructions, LEB128
//	├── wit/          WIT interface text lexer (collaborator)
//	├── store/        function/memory/table/global registry
//	├── instance/     binds a decoded module to a Store
//	├── interp/       executes GC + a minimal control/numeric core
//	└── cmd/gcwasm/   demo CLI
//
// # Scope
//
// The bytecode interpreter's general arithmetic dispatch, a WIT resolver
// beyond tokenizing, CLI polish, and file loaders are explicitly out of
// scope; this module implements exactly what's needed to allocate and trace
// GC objects, check subtyping, and lift/lower Canonical ABI scalars and
// strings through a Store-managed Instance.
//
// # Thread Safety
//
// A Store is single-threaded cooperative: one interpreter executes one call
// stack at a time, and a host callback may reenter the interpreter on that
// same stack. Parallel Stores share nothing and need no synchronization
// between them.
package gcwasm
