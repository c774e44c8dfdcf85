package interp

import (
	"github.com/wippyai/gcwasm-core/heap"
	"github.com/wippyai/gcwasm-core/subtype"
	"github.com/wippyai/gcwasm-core/value"
)

// classify determines the dynamic shape of w against the heap for
// ref.test/ref.cast, per spec §4.2. A word that is neither null, i31, nor
// a GC reference is assumed to be a funcref: this interpreter doesn't
// track static operand types outside the GC type system, and nothing in
// scope produces externref or raw-integer operands that reach ref.test.
func classify(h *heap.Heap, w value.Word) (subtype.Classification, error) {
	switch {
	case w.IsNull():
		return subtype.Classification{Null: true}, nil
	case w.IsI31():
		return subtype.Classification{I31: true}, nil
	case w.IsGCRef():
		addr, err := value.DecodeRef(w)
		if err != nil {
			return subtype.Classification{}, err
		}
		obj, err := h.Get(addr)
		if err != nil {
			return subtype.Classification{}, err
		}
		kind := subtype.ObjectStruct
		if obj.Kind == heap.KindArray {
			kind = subtype.ObjectArray
		}
		return subtype.Classification{ObjKind: kind, ObjType: obj.TypeIdx}, nil
	default:
		return subtype.Classification{FuncRef: true}, nil
	}
}
