package instance

import (
	"testing"

	"github.com/wippyai/gcwasm-core/interp"
	"github.com/wippyai/gcwasm-core/store"
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

func buildModule(t *testing.T) *wasm.Module {
	t.Helper()

	structDef := wasm.TypeDef{
		Kind: wasm.TypeDefKindSub,
		Sub: &wasm.SubType{
			Final: true,
			CompType: wasm.CompType{Kind: wasm.CompKindStruct, Struct: &wasm.StructType{
				Fields: []wasm.FieldType{
					{Type: wasm.StorageType{Kind: wasm.StorageKindVal, ValType: wasm.ValI32}, Mutable: true},
					{Type: wasm.StorageType{Kind: wasm.StorageKindVal, ValType: wasm.ValI32}, Mutable: true},
				},
			}},
		},
	}
	getterType := wasm.TypeDef{Kind: wasm.TypeDefKindFunc, Func: &wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}}
	voidType := wasm.TypeDef{Kind: wasm.TypeDefKindFunc, Func: &wasm.FuncType{}}

	getterCode := wasm.EncodeInstructions([]wasm.Instruction{
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructNew, TypeIdx: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructGet, TypeIdx: 0, FieldIdx: 1}},
		{Opcode: wasm.OpEnd},
	})
	startCode := wasm.EncodeInstructions([]wasm.Instruction{{Opcode: wasm.OpEnd}})

	startIdx := uint32(1)

	return &wasm.Module{
		TypeDefs: []wasm.TypeDef{structDef, getterType, voidType},
		Funcs:    []uint32{1, 2},
		Code: []wasm.FuncBody{
			{Code: getterCode},
			{Code: startCode},
		},
		Memories: []wasm.MemoryType{{Limits: wasm.Limits{Min: 1}}},
		Data: []wasm.DataSegment{
			{
				Flags:  0,
				MemIdx: 0,
				Offset: wasm.EncodeInstructions([]wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}}}),
				Init:   []byte("hi"),
			},
		},
		Globals: []wasm.Global{
			{
				Type: wasm.GlobalType{ValType: wasm.ValI32, Mutable: true},
				Init: wasm.EncodeInstructions([]wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 7}}}),
			},
		},
		Exports: []wasm.Export{
			{Name: "structGet", Kind: wasm.KindFunc, Idx: 0},
			{Name: "g", Kind: wasm.KindGlobal, Idx: 0},
			{Name: "mem", Kind: wasm.KindMemory, Idx: 0},
		},
		Start: &startIdx,
	}
}

func TestInstantiateAndCallExport(t *testing.T) {
	m := buildModule(t)
	s := store.NewWithDefaults()
	it := interp.New(s)

	in, err := Instantiate(s, it, 0, "main", m)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	handle, err := in.ExportedFunc(s, "structGet")
	if err != nil {
		t.Fatalf("ExportedFunc: %v", err)
	}
	results, err := it.Call(handle, []value.Word{value.Word(10), value.Word(20)})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if results[0] != value.Word(20) {
		t.Errorf("result = %v, want 20", results[0])
	}
}

func TestInstantiateAppliesDataSegment(t *testing.T) {
	m := buildModule(t)
	s := store.NewWithDefaults()
	it := interp.New(s)

	if _, err := Instantiate(s, it, 0, "main", m); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	memHandle, err := s.LookupImport("main", "mem", wasm.KindMemory)
	if err != nil {
		t.Fatalf("lookup mem: %v", err)
	}
	mem, err := s.Memory(memHandle)
	if err != nil {
		t.Fatalf("Memory: %v", err)
	}
	got, err := mem.Read(0, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("memory data = %q, want %q", got, "hi")
	}
}

func TestInstantiateEvaluatesGlobalInit(t *testing.T) {
	m := buildModule(t)
	s := store.NewWithDefaults()
	it := interp.New(s)

	if _, err := Instantiate(s, it, 0, "main", m); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	globalHandle, err := s.LookupImport("main", "g", wasm.KindGlobal)
	if err != nil {
		t.Fatalf("lookup g: %v", err)
	}
	g, err := s.Global(globalHandle)
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if g.Value != value.Word(7) {
		t.Errorf("global value = %v, want 7", g.Value)
	}
}

func TestInstantiateMissingImportFails(t *testing.T) {
	m := buildModule(t)
	m.Imports = []wasm.Import{{Module: "env", Name: "missing", Desc: wasm.ImportDesc{Kind: wasm.KindFunc}}}

	s := store.NewWithDefaults()
	it := interp.New(s)

	if _, err := Instantiate(s, it, 0, "main", m); err == nil {
		t.Error("expected link error for unresolved import")
	}
}
