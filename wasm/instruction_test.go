package wasm_test

import (
	"bytes"
	"testing"

	"github.com/wippyai/gcwasm-core/wasm"
)

func roundTrip(t *testing.T, tt wasm.Instruction) wasm.Instruction {
	t.Helper()
	encoded := wasm.EncodeInstructions([]wasm.Instruction{tt})
	decoded, err := wasm.DecodeInstructions(encoded)
	if err != nil {
		t.Fatalf("opcode 0x%02x: decode error: %v", tt.Opcode, err)
	}
	if len(decoded) != 1 {
		t.Fatalf("opcode 0x%02x: expected 1 instruction, got %d", tt.Opcode, len(decoded))
	}
	return decoded[0]
}

func TestEndReturnHaveNoImmediate(t *testing.T) {
	for _, op := range []byte{wasm.OpEnd, wasm.OpReturn} {
		decoded := roundTrip(t, wasm.Instruction{Opcode: op})
		if decoded.Opcode != op {
			t.Errorf("opcode mismatch: got 0x%02x, want 0x%02x", decoded.Opcode, op)
		}
	}
}

func TestLocalGlobalInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpLocalSet, Imm: wasm.LocalImm{LocalIdx: 1}},
		{Opcode: wasm.OpLocalTee, Imm: wasm.LocalImm{LocalIdx: 2}},
		{Opcode: wasm.OpGlobalGet, Imm: wasm.GlobalImm{GlobalIdx: 0}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("opcode 0x%02x: got %+v, want %+v", tt.Opcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestConstantInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 42}},
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: -1}},
		{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: 0x7FFFFFFFFFFFFFFF}},
		{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: -0x8000000000000000}},
		{Opcode: wasm.OpF32Const, Imm: wasm.F32Imm{Value: 3.14}},
		{Opcode: wasm.OpF64Const, Imm: wasm.F64Imm{Value: 2.71828}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("opcode 0x%02x: got %+v, want %+v", tt.Opcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestRefInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{HeapType: -16}},
		{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{HeapType: -17}},
		{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{HeapType: 5}},
		{Opcode: wasm.OpRefFunc, Imm: wasm.RefFuncImm{FuncIdx: 42}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("opcode 0x%02x: got %+v, want %+v", tt.Opcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestGCStructInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructNew, TypeIdx: 3}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructNewDefault, TypeIdx: 3}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructGet, TypeIdx: 3, FieldIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructGetS, TypeIdx: 3, FieldIdx: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructGetU, TypeIdx: 3, FieldIdx: 0}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCStructSet, TypeIdx: 3, FieldIdx: 2}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("sub-opcode 0x%02x: got %+v, want %+v", tt.Imm.(wasm.GCImm).SubOpcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestGCArrayInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayNew, TypeIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayGet, TypeIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayGetS, TypeIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArrayGetU, TypeIdx: 1}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCArraySet, TypeIdx: 1}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("sub-opcode 0x%02x: got %+v, want %+v", tt.Imm.(wasm.GCImm).SubOpcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestGCCastInstructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefTest, HeapType: wasm.HeapTypeI31}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefTestNull, HeapType: wasm.HeapTypeStruct}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefCast, HeapType: wasm.HeapTypeArray}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefCastNull, HeapType: wasm.HeapTypeAny}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("sub-opcode 0x%02x: got %+v, want %+v", tt.Imm.(wasm.GCImm).SubOpcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestGCI31Instructions(t *testing.T) {
	tests := []wasm.Instruction{
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCRefI31}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCI31GetS}},
		{Opcode: wasm.OpPrefixGC, Imm: wasm.GCImm{SubOpcode: wasm.GCI31GetU}},
	}

	for _, tt := range tests {
		decoded := roundTrip(t, tt)
		if decoded.Imm != tt.Imm {
			t.Errorf("sub-opcode 0x%02x: got %+v, want %+v", tt.Imm.(wasm.GCImm).SubOpcode, decoded.Imm, tt.Imm)
		}
	}
}

func TestEncodeInstructionsTo(t *testing.T) {
	instrs := []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 10}},
		{Opcode: wasm.OpLocalGet, Imm: wasm.LocalImm{LocalIdx: 0}},
		{Opcode: wasm.OpEnd},
	}

	var buf bytes.Buffer
	wasm.EncodeInstructionsTo(&buf, instrs)

	decoded, err := wasm.DecodeInstructions(buf.Bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(decoded))
	}
}

func TestUnknownOpcode(t *testing.T) {
	data := []byte{0xFF}
	_, err := wasm.DecodeInstructions(data)
	if err == nil {
		t.Error("expected error for unknown opcode 0xFF")
	}
}

func TestUnknownGCSubOpcode(t *testing.T) {
	// 0xFB (OpPrefixGC) followed by sub-opcode 0x7F, which names no kept op.
	data := []byte{wasm.OpPrefixGC, 0x7F}
	_, err := wasm.DecodeInstructions(data)
	if err == nil {
		t.Error("expected error for unknown GC sub-opcode")
	}
}
