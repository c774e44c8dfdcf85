// Package wasm provides the typed module model, instruction codec, type
// table, and structural validator this runtime operates on.
//
// Binary module decoding is treated as an external concern: callers are
// expected to hand this package an already-decoded *Module (for example
// one built by instance's tests, or by cmd/gcwasm's hand-built demos).
// What this package owns instead is everything downstream of that:
//
// # Module Structure
//
// A Module holds all the index spaces a decoder would have populated:
//
//	module.TypeDefs   []TypeDef     // Function and GC type definitions
//	module.Funcs      []uint32      // Type indices for functions
//	module.Tables     []TableType   // Table definitions
//	module.Memories   []MemoryType  // Memory definitions
//	module.Globals    []Global      // Global definitions
//	module.Imports    []Import      // Imported definitions
//	module.Exports    []Export      // Exported definitions
//	module.Code       []FuncBody    // Function bodies
//	module.Data       []DataSegment // Data segments
//	module.Elements   []Element     // Element segments
//
// # Type Table
//
// TypeInfo resolves a flat type index (expanding recursive groups) to its
// struct/array classification and optional supertype (ok is false for
// func types and out-of-range indices), the shape
// subtype.TypeTable needs to run cast and ref.test checks:
//
//	info, ok := module.TypeInfo(typeIdx)
//
// # Instructions
//
// Decode a function body's bytecode into typed instructions:
//
//	instructions, err := wasm.DecodeInstructions(code)
//	for _, instr := range instructions {
//	    fmt.Printf("%#x\n", instr.Opcode)
//	}
//
// Encode instructions back to bytecode:
//
//	encoded := wasm.EncodeInstructions(instructions)
//
// # Validation
//
// Validate module structure before instantiating it:
//
//	if err := module.Validate(); err != nil {
//	    log.Printf("invalid module: %v", err)
//	}
//
// Validation checks:
//   - Type indices are in bounds
//   - Function, table, memory, and global indices are in bounds
//   - Export names refer to defined indices
//   - Start function takes no parameters and returns no results
//   - Data/code counts are consistent
//
// # LEB128 Encoding
//
// The package provides LEB128 utilities used by the instruction codec:
//
//	u, err := wasm.ReadLEB128u(r)  // Unsigned; r is an io.ByteReader
//	s, err := wasm.ReadLEB128s(r)  // Signed
package wasm
