package store

import (
	gcwasm "github.com/wippyai/gcwasm-core"
	"github.com/wippyai/gcwasm-core/heap"
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

// VM is the interface through which a host function reaches the calling
// Store's heap, memories, globals, and tables, mirroring the "vm_pointer,
// context" host callback ABI (spec §6). Arguments and results do not pass
// through it: HostFunc receives and returns them as word slices. The
// interpreter implements it;
// store only depends on this narrow view to avoid an import cycle.
type VM interface {
	Heap() *heap.Heap
	Memory(idx uint32) (gcwasm.Memory, error)
	Global(idx uint32) (*Global, error)
	Table(idx uint32) (*Table, error)
}

// HostFunc is a host callback: given the calling VM and the function's
// argument words (already popped off the operand stack in order), it
// returns the result words or an error. An error is reported to the
// caller as a HostError, which surfaces as a trap (spec §7).
type HostFunc func(vm VM, args []value.Word) ([]value.Word, error)

// WasmBody holds a decoded Wasm function's executable content: its
// locals and code, plus an owning instance handle so call targets with
// local.get/call semantics can resolve relative to the right module, and
// a slot for cached side data (spec §9, "Cached IR / branch table").
// Nothing in this module fills BranchTable; it stays nil unless the
// caller sets it.
type WasmBody struct {
	InstanceHandle uint32
	LocalTypes     []wasm.ValType
	Code           []wasm.Instruction
	BranchTable    []uint32 // label -> instruction index; not populated by the interpreter
}

// Function is the Store's tagged union of callable entities: a Wasm
// function with decoded body, or a host callback (spec §3, "Store
// Entities").
type Function struct {
	Signature wasm.FuncType
	IsHost    bool
	Wasm      *WasmBody
	Host      HostFunc
}
