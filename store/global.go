package store

import (
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

// Global carries a (value, type, mutability) triple (spec §3).
type Global struct {
	Value   value.Word
	Type    wasm.ValType
	Mutable bool
}

// Set writes a new value, trapping if the global is immutable.
func (g *Global) Set(w value.Word) error {
	if !g.Mutable {
		return errors.Trap(errors.PhaseStore, "global.set on immutable global")
	}
	g.Value = w
	return nil
}

// DataSegment is a passive or already-applied data segment; Dropped marks
// it as no longer usable by memory.init (spec §3).
type DataSegment struct {
	Data    []byte
	Dropped bool
}

// ElemSegment is a passive or already-applied element segment.
type ElemSegment struct {
	Elements []value.Word
	Dropped  bool
}
