package instance

import (
	"math"

	gcwasm "github.com/wippyai/gcwasm-core"
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/interp"
	"github.com/wippyai/gcwasm-core/store"
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

const pageSize = 65536

// Instance is one module's index spaces resolved into Store handles.
type Instance struct {
	Handle uint32
	Name   string
	Module *wasm.Module

	FuncHandles   []uint32
	MemHandles    []uint32
	TableHandles  []uint32
	GlobalHandles []uint32
}

// Instantiate resolves m's imports against s, allocates its own entities,
// applies active segments, registers its functions with it, and runs the
// start function if present. handle becomes the WasmBody.InstanceHandle
// every one of this module's functions carries, and name is the module
// name under which its exports become importable by later Instantiate
// calls.
func Instantiate(s *store.Store, it *interp.Interpreter, handle uint32, name string, m *wasm.Module) (*Instance, error) {
	in := &Instance{Handle: handle, Name: name, Module: m}

	if err := m.Validate(); err != nil {
		return nil, errors.ValidationError(errors.PhaseInstance, "module %q: %v", name, err)
	}

	if err := in.resolveImports(s); err != nil {
		return nil, err
	}
	if err := in.allocateMemories(s); err != nil {
		return nil, err
	}
	if err := in.allocateTables(s); err != nil {
		return nil, err
	}
	if err := in.allocateGlobals(s); err != nil {
		return nil, err
	}
	if err := in.allocateFunctions(s); err != nil {
		return nil, err
	}

	it.RegisterModule(handle, m)

	if err := in.applyDataSegments(s); err != nil {
		return nil, err
	}
	if err := in.applyElemSegments(s); err != nil {
		return nil, err
	}
	if err := in.bindExports(s); err != nil {
		return nil, err
	}

	if m.Start != nil {
		if int(*m.Start) >= len(in.FuncHandles) {
			return nil, errors.ValidationError(errors.PhaseInstance, "start function index %d out of range", *m.Start)
		}
		if _, err := it.Call(in.FuncHandles[*m.Start], nil); err != nil {
			return nil, err
		}
	}

	return in, nil
}

func (in *Instance) resolveImports(s *store.Store) error {
	for _, imp := range in.Module.Imports {
		switch imp.Desc.Kind {
		case wasm.KindFunc:
			h, err := s.LookupImport(imp.Module, imp.Name, wasm.KindFunc)
			if err != nil {
				return err
			}
			in.FuncHandles = append(in.FuncHandles, h)
		case wasm.KindMemory:
			h, err := s.LookupImport(imp.Module, imp.Name, wasm.KindMemory)
			if err != nil {
				return err
			}
			in.MemHandles = append(in.MemHandles, h)
		case wasm.KindTable:
			h, err := s.LookupImport(imp.Module, imp.Name, wasm.KindTable)
			if err != nil {
				return err
			}
			in.TableHandles = append(in.TableHandles, h)
		case wasm.KindGlobal:
			h, err := s.LookupImport(imp.Module, imp.Name, wasm.KindGlobal)
			if err != nil {
				return err
			}
			in.GlobalHandles = append(in.GlobalHandles, h)
		}
	}
	return nil
}

func (in *Instance) allocateMemories(s *store.Store) error {
	for _, mt := range in.Module.Memories {
		mem := gcwasm.NewLinearMemory(uint32(mt.Limits.Min) * pageSize)
		in.MemHandles = append(in.MemHandles, s.AddMemory(mem))
	}
	return nil
}

func (in *Instance) allocateTables(s *store.Store) error {
	for _, tt := range in.Module.Tables {
		var max *uint32
		if tt.Limits.Max != nil {
			v := uint32(*tt.Limits.Max)
			max = &v
		}
		t := store.NewTable(tt.ElemType, uint32(tt.Limits.Min), max)
		in.TableHandles = append(in.TableHandles, s.AddTable(t))
	}
	return nil
}

func (in *Instance) allocateGlobals(s *store.Store) error {
	for _, g := range in.Module.Globals {
		w, err := in.evalConstExpr(s, g.Init)
		if err != nil {
			return err
		}
		gg := &store.Global{Value: w, Type: g.Type.ValType, Mutable: g.Type.Mutable}
		in.GlobalHandles = append(in.GlobalHandles, s.AddGlobal(gg))
	}
	return nil
}

func (in *Instance) allocateFunctions(s *store.Store) error {
	numImportedFuncs := len(in.FuncHandles)
	for i, typeIdx := range in.Module.Funcs {
		sig := in.Module.GetFuncType(uint32(numImportedFuncs + i))
		if sig == nil {
			return errors.ValidationError(errors.PhaseInstance, "function %d: type %d not found", i, typeIdx)
		}
		body := in.Module.Code[i]
		code, err := wasm.DecodeInstructions(body.Code)
		if err != nil {
			return errors.ValidationError(errors.PhaseInstance, "function %d: %v", i, err)
		}
		h := s.AddFunction(store.Function{
			Signature: *sig,
			Wasm: &store.WasmBody{
				InstanceHandle: in.Handle,
				LocalTypes:     flattenLocals(body.Locals),
				Code:           code,
			},
		})
		in.FuncHandles = append(in.FuncHandles, h)
	}
	return nil
}

func flattenLocals(entries []wasm.LocalEntry) []wasm.ValType {
	total := 0
	for _, e := range entries {
		total += int(e.Count)
	}
	locals := make([]wasm.ValType, 0, total)
	for _, e := range entries {
		for i := uint32(0); i < e.Count; i++ {
			locals = append(locals, e.ValType)
		}
	}
	return locals
}

func (in *Instance) applyDataSegments(s *store.Store) error {
	for _, d := range in.Module.Data {
		if d.Flags == 1 { // passive
			s.AddDataSegment(&store.DataSegment{Data: d.Init})
			continue
		}
		off, err := in.evalConstExpr(s, d.Offset)
		if err != nil {
			return err
		}
		if int(d.MemIdx) >= len(in.MemHandles) {
			return errors.ValidationError(errors.PhaseInstance, "data segment: memory %d out of range", d.MemIdx)
		}
		mem, err := s.Memory(in.MemHandles[d.MemIdx])
		if err != nil {
			return err
		}
		if err := mem.Write(uint32(off), d.Init); err != nil {
			return err
		}
	}
	return nil
}

func (in *Instance) applyElemSegments(s *store.Store) error {
	for _, e := range in.Module.Elements {
		refs := make([]value.Word, len(e.FuncIdxs))
		for i, fi := range e.FuncIdxs {
			if int(fi) >= len(in.FuncHandles) {
				return errors.ValidationError(errors.PhaseInstance, "element segment: function %d out of range", fi)
			}
			refs[i] = value.Word(uint64(in.FuncHandles[fi]))
		}

		switch e.Flags {
		case 1, 3, 5, 7: // passive or declarative: recorded, not placed into a table
			s.AddElemSegment(&store.ElemSegment{Elements: refs})
		default: // active
			off, err := in.evalConstExpr(s, e.Offset)
			if err != nil {
				return err
			}
			if int(e.TableIdx) >= len(in.TableHandles) {
				return errors.ValidationError(errors.PhaseInstance, "element segment: table %d out of range", e.TableIdx)
			}
			table, err := s.Table(in.TableHandles[e.TableIdx])
			if err != nil {
				return err
			}
			for i, ref := range refs {
				if err := table.Set(uint32(off)+uint32(i), ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (in *Instance) bindExports(s *store.Store) error {
	for _, exp := range in.Module.Exports {
		switch exp.Kind {
		case wasm.KindFunc:
			if int(exp.Idx) >= len(in.FuncHandles) {
				return errors.ValidationError(errors.PhaseInstance, "export %q: function %d out of range", exp.Name, exp.Idx)
			}
			s.Bind(in.Name, exp.Name, wasm.KindFunc, in.FuncHandles[exp.Idx])
		case wasm.KindMemory:
			if int(exp.Idx) >= len(in.MemHandles) {
				return errors.ValidationError(errors.PhaseInstance, "export %q: memory %d out of range", exp.Name, exp.Idx)
			}
			s.Bind(in.Name, exp.Name, wasm.KindMemory, in.MemHandles[exp.Idx])
		case wasm.KindTable:
			if int(exp.Idx) >= len(in.TableHandles) {
				return errors.ValidationError(errors.PhaseInstance, "export %q: table %d out of range", exp.Name, exp.Idx)
			}
			s.Bind(in.Name, exp.Name, wasm.KindTable, in.TableHandles[exp.Idx])
		case wasm.KindGlobal:
			if int(exp.Idx) >= len(in.GlobalHandles) {
				return errors.ValidationError(errors.PhaseInstance, "export %q: global %d out of range", exp.Name, exp.Idx)
			}
			s.Bind(in.Name, exp.Name, wasm.KindGlobal, in.GlobalHandles[exp.Idx])
		}
	}
	return nil
}

// ExportedFunc returns the Store handle of the exported function name, for
// direct use with Interpreter.Call.
func (in *Instance) ExportedFunc(s *store.Store, name string) (uint32, error) {
	return s.LookupImport(in.Name, name, wasm.KindFunc)
}

// evalConstExpr evaluates the narrow constant-expression grammar core Wasm
// allows in global initializers and segment offsets (spec §9 treats this as
// settled: only scalar consts, ref.null, ref.func, and global.get of an
// imported global are needed by the module shapes in scope).
func (in *Instance) evalConstExpr(s *store.Store, raw []byte) (value.Word, error) {
	instrs, err := wasm.DecodeInstructions(raw)
	if err != nil {
		return value.Null, errors.ValidationError(errors.PhaseInstance, "const expr: %v", err)
	}
	if len(instrs) == 0 {
		return value.Null, errors.ValidationError(errors.PhaseInstance, "const expr: empty")
	}

	switch instrs[0].Opcode {
	case wasm.OpI32Const:
		imm := instrs[0].Imm.(wasm.I32Imm)
		return value.Word(uint64(uint32(imm.Value))), nil

	case wasm.OpI64Const:
		imm := instrs[0].Imm.(wasm.I64Imm)
		return value.Word(uint64(imm.Value)), nil

	case wasm.OpF32Const:
		imm := instrs[0].Imm.(wasm.F32Imm)
		return value.Word(uint64(math.Float32bits(imm.Value))), nil

	case wasm.OpF64Const:
		imm := instrs[0].Imm.(wasm.F64Imm)
		return value.Word(math.Float64bits(imm.Value)), nil

	case wasm.OpRefNull:
		return value.Null, nil

	case wasm.OpRefFunc:
		imm := instrs[0].Imm.(wasm.RefFuncImm)
		if int(imm.FuncIdx) >= len(in.FuncHandles) {
			return value.Null, errors.ValidationError(errors.PhaseInstance, "const expr: function %d out of range", imm.FuncIdx)
		}
		return value.Word(uint64(in.FuncHandles[imm.FuncIdx])), nil

	case wasm.OpGlobalGet:
		imm := instrs[0].Imm.(wasm.GlobalImm)
		if int(imm.GlobalIdx) >= len(in.GlobalHandles) {
			return value.Null, errors.ValidationError(errors.PhaseInstance, "const expr: global %d out of range", imm.GlobalIdx)
		}
		g, err := s.Global(in.GlobalHandles[imm.GlobalIdx])
		if err != nil {
			return value.Null, err
		}
		return g.Value, nil

	default:
		return value.Null, errors.ValidationError(errors.PhaseInstance, "const expr: unsupported opcode %#x", instrs[0].Opcode)
	}
}
