package store

import (
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/value"
)

// Table holds optional references; an empty slot is value.Null (spec §3,
// "Store Entities").
type Table struct {
	ElemKind byte // wasm.ValFuncRef, wasm.ValExtern, or a GC reference valtype
	Max      *uint32
	elements []value.Word
}

// NewTable creates a table of the given initial size, all slots None.
func NewTable(elemKind byte, size uint32, max *uint32) *Table {
	return &Table{ElemKind: elemKind, Max: max, elements: make([]value.Word, size)}
}

func (t *Table) Size() uint32 { return uint32(len(t.elements)) }

// Get returns the slot at idx, which may be value.Null ("None") without
// error — only an out-of-range index traps.
func (t *Table) Get(idx uint32) (value.Word, error) {
	if int(idx) >= len(t.elements) {
		return value.Null, errors.Trap(errors.PhaseStore, "table index %d out of range (size %d)", idx, len(t.elements))
	}
	return t.elements[idx], nil
}

// Lookup is like Get but additionally traps with "undefined_element" when
// the slot is None, per spec §4.5.
func (t *Table) Lookup(idx uint32) (value.Word, error) {
	w, err := t.Get(idx)
	if err != nil {
		return value.Null, err
	}
	if w.IsNull() {
		return value.Null, errors.Trap(errors.PhaseStore, "undefined_element: table index %d is None", idx)
	}
	return w, nil
}

func (t *Table) Set(idx uint32, w value.Word) error {
	if int(idx) >= len(t.elements) {
		return errors.Trap(errors.PhaseStore, "table index %d out of range (size %d)", idx, len(t.elements))
	}
	t.elements[idx] = w
	return nil
}

// Grow appends n slots initialized to init and returns the previous size,
// failing if the new size would exceed Max.
func (t *Table) Grow(n uint32, init value.Word) (uint32, error) {
	prev := uint32(len(t.elements))
	newSize := prev + n
	if t.Max != nil && newSize > *t.Max {
		return 0, errors.OutOfBounds(errors.PhaseStore, "table grow", prev, n, *t.Max)
	}
	for i := uint32(0); i < n; i++ {
		t.elements = append(t.elements, init)
	}
	return prev, nil
}
