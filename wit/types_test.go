package wit

import (
	"testing"

	"github.com/wippyai/gcwasm-core/canon"
)

func TestParseFuncSigSimple(t *testing.T) {
	sig, err := ParseFuncSig("func add(a: s32, b: s32) -> s32")
	if err != nil {
		t.Fatalf("ParseFuncSig: %v", err)
	}
	if sig.Name != "add" {
		t.Fatalf("Name = %q, want add", sig.Name)
	}
	if len(sig.Params) != 2 || sig.Params[0].Type != TypeS32 || sig.Params[1].Type != TypeS32 {
		t.Fatalf("Params = %+v", sig.Params)
	}
	if len(sig.Results) != 1 || sig.Results[0].Type != TypeS32 {
		t.Fatalf("Results = %+v", sig.Results)
	}
}

func TestParseFuncSigNoResult(t *testing.T) {
	sig, err := ParseFuncSig("func log(msg: string)")
	if err != nil {
		t.Fatalf("ParseFuncSig: %v", err)
	}
	if len(sig.Params) != 1 || sig.Params[0].Type != TypeString {
		t.Fatalf("Params = %+v", sig.Params)
	}
	if len(sig.Results) != 0 {
		t.Fatalf("Results = %+v, want none", sig.Results)
	}
}

func TestParseFuncSigNoParams(t *testing.T) {
	sig, err := ParseFuncSig("func now() -> u64")
	if err != nil {
		t.Fatalf("ParseFuncSig: %v", err)
	}
	if len(sig.Params) != 0 {
		t.Fatalf("Params = %+v, want none", sig.Params)
	}
	if len(sig.Results) != 1 || sig.Results[0].Type != TypeU64 {
		t.Fatalf("Results = %+v", sig.Results)
	}
}

func TestParseFuncSigUnknownType(t *testing.T) {
	if _, err := ParseFuncSig("func f(a: widget)"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestParseFuncSigMissingColon(t *testing.T) {
	if _, err := ParseFuncSig("func f(a s32)"); err == nil {
		t.Fatal("expected error for missing colon")
	}
}

func TestParseFuncSigTrailingTokens(t *testing.T) {
	if _, err := ParseFuncSig("func f() garbage"); err == nil {
		t.Fatal("expected error for trailing tokens")
	}
}

func TestBaseTypeCanonKind(t *testing.T) {
	if _, ok := TypeString.CanonKind(); ok {
		t.Fatal("TypeString should not map to a canon.Kind")
	}
	if k, ok := TypeU32.CanonKind(); !ok || k != canon.KindU32 {
		t.Fatalf("TypeU32.CanonKind() = (%v, %v), want (canon.KindU32, true)", k, ok)
	}
}
