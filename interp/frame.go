package interp

import (
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/value"
)

// Frame is one call's operand stack and locals (spec §3, "Operand stack
// value" lifecycle: bounded by the stack frame it's pushed on).
type Frame struct {
	stack  []value.Word
	locals []value.Word
}

func newFrame(locals []value.Word) *Frame {
	return &Frame{locals: locals}
}

func (f *Frame) push(w value.Word) { f.stack = append(f.stack, w) }

func (f *Frame) pop() (value.Word, error) {
	if len(f.stack) == 0 {
		return value.Null, errors.Trap(errors.PhaseInterp, "operand stack underflow")
	}
	w := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return w, nil
}

func (f *Frame) local(idx uint32) (value.Word, error) {
	if int(idx) >= len(f.locals) {
		return value.Null, errors.Trap(errors.PhaseInterp, "local index %d out of range", idx)
	}
	return f.locals[idx], nil
}

func (f *Frame) setLocal(idx uint32, w value.Word) error {
	if int(idx) >= len(f.locals) {
		return errors.Trap(errors.PhaseInterp, "local index %d out of range", idx)
	}
	f.locals[idx] = w
	return nil
}

// roots returns every word on the operand stack and in locals, the set of
// per-frame GC roots (spec §4.1 step 2).
func (f *Frame) roots() []value.Word {
	roots := make([]value.Word, 0, len(f.stack)+len(f.locals))
	roots = append(roots, f.stack...)
	roots = append(roots, f.locals...)
	return roots
}
