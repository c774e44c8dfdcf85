package interp

import (
	gcwasm "github.com/wippyai/gcwasm-core"
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/heap"
	"github.com/wippyai/gcwasm-core/store"
	"github.com/wippyai/gcwasm-core/subtype"
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

// Interpreter executes one call stack at a time against a Store (spec
// §5's single-threaded cooperative model). It implements store.VM so
// host functions can manipulate the same Store's state.
type Interpreter struct {
	store   *store.Store
	modules map[uint32]*wasm.Module

	current *Frame // non-nil only while a Wasm function is executing, for VM access by reentrant host calls
}

// New creates an interpreter bound to s.
func New(s *store.Store) *Interpreter {
	return &Interpreter{store: s, modules: make(map[uint32]*wasm.Module)}
}

// RegisterModule associates a decoded module with the instance handle its
// functions carry in WasmBody.InstanceHandle, so Call can resolve type
// indices (spec §9, "Module/Store back-references").
func (it *Interpreter) RegisterModule(instanceHandle uint32, m *wasm.Module) {
	it.modules[instanceHandle] = m
}

func (it *Interpreter) Heap() *heap.Heap { return it.store.Heap() }

func (it *Interpreter) Memory(idx uint32) (gcwasm.Memory, error) { return it.store.Memory(idx) }

func (it *Interpreter) Global(idx uint32) (*store.Global, error) { return it.store.Global(idx) }

func (it *Interpreter) Table(idx uint32) (*store.Table, error) { return it.store.Table(idx) }

// Call invokes the function at handle with args, running it to
// completion (a Wasm function falls off the end of its code, or an
// explicit return) and returning its result words.
func (it *Interpreter) Call(handle uint32, args []value.Word) ([]value.Word, error) {
	fn, err := it.store.Function(handle)
	if err != nil {
		return nil, err
	}
	if fn.IsHost {
		results, err := fn.Host(it, args)
		if err != nil {
			return nil, errors.HostError(err)
		}
		return results, nil
	}
	return it.callWasm(fn, args)
}

func (it *Interpreter) callWasm(fn *store.Function, args []value.Word) ([]value.Word, error) {
	body := fn.Wasm
	module := it.modules[body.InstanceHandle]

	locals := make([]value.Word, len(args)+len(body.LocalTypes))
	copy(locals, args)

	frame := newFrame(locals)
	prev := it.current
	it.current = frame
	defer func() { it.current = prev }()

	if it.store.Heap().ShouldCollect() {
		it.collect(frame)
	}

	if _, err := it.run(frame, module, body.Code); err != nil {
		return nil, err
	}

	n := len(fn.Signature.Results)
	if n > len(frame.stack) {
		return nil, errors.Trap(errors.PhaseInterp, "function fell off end with %d values on stack, want %d results", len(frame.stack), n)
	}
	return frame.stack[len(frame.stack)-n:], nil
}

// collect runs a GC cycle rooted at the current frame, globals, and
// tables (spec §4.1 step 2's root set, minus other active frames which
// this single-call-at-a-time interpreter doesn't track across the stack).
func (it *Interpreter) collect(frame *Frame) {
	roots := frame.roots()
	for _, g := range it.store.Globals {
		roots = append(roots, g.Value)
	}
	for _, t := range it.store.Tables {
		for i := uint32(0); i < t.Size(); i++ {
			w, _ := t.Get(i)
			roots = append(roots, w)
		}
	}
	it.store.Heap().Collect(roots)
}

// run executes code in order and reports an explicit return through its
// bool result rather than by panic/recover; the instruction set handled
// here has no nested blocks to unwind through.
func (it *Interpreter) run(frame *Frame, module *wasm.Module, code []wasm.Instruction) (bool, error) {
	for _, instr := range code {
		done, err := it.step(frame, module, instr)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
	return false, nil
}

func (it *Interpreter) step(frame *Frame, module *wasm.Module, instr wasm.Instruction) (bool, error) {
	switch instr.Opcode {
	case wasm.OpEnd:
		return false, nil

	case wasm.OpReturn:
		return true, nil

	case wasm.OpLocalGet:
		imm := instr.Imm.(wasm.LocalImm)
		w, err := frame.local(imm.LocalIdx)
		if err != nil {
			return false, err
		}
		frame.push(w)

	case wasm.OpLocalSet:
		imm := instr.Imm.(wasm.LocalImm)
		w, err := frame.pop()
		if err != nil {
			return false, err
		}
		if err := frame.setLocal(imm.LocalIdx, w); err != nil {
			return false, err
		}

	case wasm.OpLocalTee:
		imm := instr.Imm.(wasm.LocalImm)
		w, err := frame.pop()
		if err != nil {
			return false, err
		}
		frame.push(w)
		if err := frame.setLocal(imm.LocalIdx, w); err != nil {
			return false, err
		}

	case wasm.OpI32Const:
		imm := instr.Imm.(wasm.I32Imm)
		frame.push(value.Word(uint64(uint32(imm.Value))))

	case wasm.OpRefNull:
		frame.push(value.Null)

	case wasm.OpPrefixGC:
		imm := instr.Imm.(wasm.GCImm)
		if err := it.stepGC(frame, module, imm); err != nil {
			return false, err
		}

	default:
		return false, errors.Trap(errors.PhaseInterp, "unsupported opcode %#x", instr.Opcode)
	}
	return false, nil
}

func (it *Interpreter) stepGC(frame *Frame, module *wasm.Module, imm wasm.GCImm) error {
	h := it.store.Heap()

	switch imm.SubOpcode {
	case wasm.GCStructNew:
		st := module.StructTypeByIdx(imm.TypeIdx)
		if st == nil {
			return errors.ValidationError(errors.PhaseInterp, "struct.new: type %d is not a struct type", imm.TypeIdx)
		}
		fields := make([]value.Word, len(st.Fields))
		for i := len(fields) - 1; i >= 0; i-- {
			w, err := frame.pop()
			if err != nil {
				return err
			}
			fields[i] = w
		}
		frame.push(h.EncodeRef(h.AllocStruct(imm.TypeIdx, fields)))

	case wasm.GCStructNewDefault:
		st := module.StructTypeByIdx(imm.TypeIdx)
		if st == nil {
			return errors.ValidationError(errors.PhaseInterp, "struct.new_default: type %d is not a struct type", imm.TypeIdx)
		}
		frame.push(h.EncodeRef(h.AllocStruct(imm.TypeIdx, make([]value.Word, len(st.Fields)))))

	case wasm.GCStructGet, wasm.GCStructGetS, wasm.GCStructGetU:
		ref, err := frame.pop()
		if err != nil {
			return err
		}
		addr, err := h.DecodeRef(ref)
		if err != nil {
			return err
		}
		obj, err := h.Get(addr)
		if err != nil {
			return err
		}
		if int(imm.FieldIdx) >= len(obj.Fields) {
			return errors.Trap(errors.PhaseInterp, "struct.get: field %d out of range", imm.FieldIdx)
		}
		frame.push(obj.Fields[imm.FieldIdx])

	case wasm.GCStructSet:
		val, err := frame.pop()
		if err != nil {
			return err
		}
		ref, err := frame.pop()
		if err != nil {
			return err
		}
		addr, err := h.DecodeRef(ref)
		if err != nil {
			return err
		}
		obj, err := h.Get(addr)
		if err != nil {
			return err
		}
		if int(imm.FieldIdx) >= len(obj.Fields) {
			return errors.Trap(errors.PhaseInterp, "struct.set: field %d out of range", imm.FieldIdx)
		}
		obj.Fields[imm.FieldIdx] = val

	case wasm.GCArrayNew:
		n, err := frame.pop()
		if err != nil {
			return err
		}
		initVal, err := frame.pop()
		if err != nil {
			return err
		}
		frame.push(h.EncodeRef(h.AllocArray(imm.TypeIdx, uint32(n), initVal)))

	case wasm.GCArrayGet, wasm.GCArrayGetS, wasm.GCArrayGetU:
		idxW, err := frame.pop()
		if err != nil {
			return err
		}
		ref, err := frame.pop()
		if err != nil {
			return err
		}
		addr, err := h.DecodeRef(ref)
		if err != nil {
			return err
		}
		obj, err := h.Get(addr)
		if err != nil {
			return err
		}
		idx := uint32(idxW)
		if int(idx) >= len(obj.Fields) {
			return errors.Trap(errors.PhaseInterp, "array.get: index %d out of range (len %d)", idx, len(obj.Fields))
		}
		frame.push(obj.Fields[idx])

	case wasm.GCArraySet:
		val, err := frame.pop()
		if err != nil {
			return err
		}
		idxW, err := frame.pop()
		if err != nil {
			return err
		}
		ref, err := frame.pop()
		if err != nil {
			return err
		}
		addr, err := h.DecodeRef(ref)
		if err != nil {
			return err
		}
		obj, err := h.Get(addr)
		if err != nil {
			return err
		}
		idx := uint32(idxW)
		if int(idx) >= len(obj.Fields) {
			return errors.Trap(errors.PhaseInterp, "array.set: index %d out of range (len %d)", idx, len(obj.Fields))
		}
		obj.Fields[idx] = val

	case wasm.GCRefTest, wasm.GCRefTestNull:
		v, err := frame.pop()
		if err != nil {
			return err
		}
		c, err := classify(h, v)
		if err != nil {
			return err
		}
		target := subtype.HeapType(imm.HeapType)
		ok := subtype.Matches(module, target, c)
		if c.Null && imm.SubOpcode == wasm.GCRefTestNull {
			ok = true
		}
		if ok {
			frame.push(value.Word(1))
		} else {
			frame.push(value.Word(0))
		}

	case wasm.GCRefCast, wasm.GCRefCastNull:
		v, err := frame.pop()
		if err != nil {
			return err
		}
		c, err := classify(h, v)
		if err != nil {
			return err
		}
		if c.Null && imm.SubOpcode == wasm.GCRefCastNull {
			frame.push(v)
			break
		}
		target := subtype.HeapType(imm.HeapType)
		if !subtype.Matches(module, target, c) {
			return errors.Trap(errors.PhaseInterp, "ref.cast: value does not match heap type %d", imm.HeapType)
		}
		frame.push(v)

	case wasm.GCRefI31:
		v, err := frame.pop()
		if err != nil {
			return err
		}
		frame.push(value.EncodeI31(uint32(v)))

	case wasm.GCI31GetS:
		v, err := frame.pop()
		if err != nil {
			return err
		}
		n, err := value.DecodeI31Signed(v)
		if err != nil {
			return err
		}
		frame.push(value.Word(uint64(uint32(n))))

	case wasm.GCI31GetU:
		v, err := frame.pop()
		if err != nil {
			return err
		}
		n, err := value.DecodeI31Unsigned(v)
		if err != nil {
			return err
		}
		frame.push(value.Word(uint64(n)))

	default:
		return errors.Trap(errors.PhaseInterp, "unsupported GC sub-opcode %#x", imm.SubOpcode)
	}
	return nil
}
