package main

import (
	"github.com/wippyai/gcwasm-core/value"
	"github.com/wippyai/gcwasm-core/wasm"
)

// demoModule is a tiny hand-built module (no binary decoder is in scope —
// spec §1 treats the decoder as external) exporting a single "run" function,
// paired with the argument words to invoke it with.
type demoModule struct {
	module *wasm.Module
	args   []value.Word
}

func demos() map[string]demoModule {
	return map[string]demoModule{
		"struct": structDemo(),
		"array":  arrayDemo(),
		"i31":    i31Demo(),
	}
}

// structDemo builds `type 0 = struct{mut i32, mut i32}` and a function
// `(i32, i32) -> i32` that allocates a struct from both params and reads
// back field 1.
func structDemo() demoModule {
	structType := wasm.TypeDef{
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
	funcType := wasm.TypeDef{Kind: wasm.TypeDefKindFunc, Func: &wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}}
	code := wasm.EncodeInstructions([]wasm.Instruction{
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructNew, TypeIdx: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructGet, TypeIdx: 0, FieldIdx: 1}},
		{Opcode: wasm.OpEnd},
	})
	return demoModule{
		module: &wasm.Module{
			TypeDefs: []wasm.TypeDef{structType, funcType},
			Funcs:    []uint32{1},
			Code:     []wasm.FuncBody{{Code: code}},
			Exports:  []wasm.Export{{Name: "run", Kind: wasm.KindFunc, Idx: 0}},
		},
		args: []value.Word{value.Word(10), value.Word(20)},
	}
}

// arrayDemo builds `type 0 = array mut i32` and a function
// `(i32, i32) -> i32` that allocates an array of the given length filled
// with the given value and reads back element 0.
func arrayDemo() demoModule {
	arrayType := wasm.TypeDef{
		Kind: wasm.TypeDefKindSub,
		Sub: &wasm.SubType{
			Final: true,
			CompType: wasm.CompType{Kind: wasm.CompKindArray, Array: &wasm.ArrayType{
				Element: wasm.FieldType{Type: wasm.StorageType{Kind: wasm.StorageKindVal, ValType: wasm.ValI32}, Mutable: true},
			}},
		},
	}
	funcType := wasm.TypeDef{Kind: wasm.TypeDefKindFunc, Func: &wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}}
	code := wasm.EncodeInstructions([]wasm.Instruction{
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayNew, TypeIdx: 0}},
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayGet, TypeIdx: 0}},
		{Opcode: wasm.OpEnd},
	})
	return demoModule{
		module: &wasm.Module{
			TypeDefs: []wasm.TypeDef{arrayType, funcType},
			Funcs:    []uint32{1},
			Code:     []wasm.FuncBody{{Code: code}},
			Exports:  []wasm.Export{{Name: "run", Kind: wasm.KindFunc, Idx: 0}},
		},
		args: []value.Word{value.Word(42), value.Word(3)},
	}
}

// i31Demo builds a function `(i32) -> i32` that round-trips its argument
// through ref.i31/i31.get_s.
func i31Demo() demoModule {
	funcType := wasm.TypeDef{Kind: wasm.TypeDefKindFunc, Func: &wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}}
	code := wasm.EncodeInstructions([]wasm.Instruction{
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefI31}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCI31GetS}},
		{Opcode: wasm.OpEnd},
	})
	return demoModule{
		module: &wasm.Module{
			TypeDefs: []wasm.TypeDef{funcType},
			Funcs:    []uint32{0},
			Code:     []wasm.FuncBody{{Code: code}},
			Exports:  []wasm.Export{{Name: "run", Kind: wasm.KindFunc, Idx: 0}},
		},
		args: []value.Word{value.Word(0xFFFFFFFF)},
	}
}
