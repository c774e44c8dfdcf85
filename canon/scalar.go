package canon

import (
	"math"

	"github.com/wippyai/gcwasm-core/canon/internal/abi"
	"github.com/wippyai/gcwasm-core/errors"
)

// Kind identifies a Canonical ABI scalar type.
type Kind uint8

const (
	KindBool Kind = iota
	KindS8
	KindU8
	KindS16
	KindU16
	KindS32
	KindU32
	KindS64
	KindU64
	KindF32
	KindF64
	KindChar
)

// FlatType is the flat core Wasm type a scalar Kind decomposes to.
type FlatType uint8

const (
	FlatI32 FlatType = iota
	FlatI64
	FlatF32
	FlatF64
)

// Char is a Unicode scalar value. It is a distinct type from int32/rune so
// LowerScalar can tell a char apart from a plain s32 by its Go type alone.
type Char rune

// FlatTypeOf returns the flat core type k lowers to.
func FlatTypeOf(k Kind) FlatType {
	switch k {
	case KindS64, KindU64:
		return FlatI64
	case KindF32:
		return FlatF32
	case KindF64:
		return FlatF64
	default:
		return FlatI32
	}
}

// LiftScalar interprets word as a value of kind k, checking that srcFlat
// matches the flat type k decomposes to (spec §4.3: "reject mismatched
// flat types with a type-mismatch error"). Wider i32 sources are
// truncated to the declared width before sign/zero extension; the result
// is one of bool, int8, uint8, int16, uint16, int32, uint32, int64,
// uint64, float32, float64, or Char (for KindChar).
func LiftScalar(k Kind, srcFlat FlatType, word uint64) (any, error) {
	if want := FlatTypeOf(k); want != srcFlat {
		return nil, errors.ValidationError(errors.PhaseCanon, "lift scalar: flat type mismatch for kind %d: want %v, got %v", k, want, srcFlat)
	}

	switch k {
	case KindBool:
		return word&1 != 0, nil
	case KindS8:
		return int8(uint8(word)), nil
	case KindU8:
		return uint8(word), nil
	case KindS16:
		return int16(uint16(word)), nil
	case KindU16:
		return uint16(word), nil
	case KindS32:
		return int32(uint32(word)), nil
	case KindU32:
		return uint32(word), nil
	case KindS64:
		return int64(word), nil
	case KindU64:
		return word, nil
	case KindF32:
		return math.Float32frombits(abi.CanonicalizeF32(uint32(word))), nil
	case KindF64:
		return math.Float64frombits(abi.CanonicalizeF64(word)), nil
	case KindChar:
		r := rune(uint32(word))
		if !abi.ValidateChar(r) {
			return nil, errors.EncodingError("lift char: codepoint %#x is not a Unicode scalar value", uint32(word))
		}
		return Char(r), nil
	default:
		return nil, errors.ValidationError(errors.PhaseCanon, "lift scalar: unknown kind %d", k)
	}
}

// LowerScalar encodes v, whose Go type must match one the Kind constants
// produce, into its flat core representation.
func LowerScalar(v any) (Kind, FlatType, uint64, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return KindBool, FlatI32, 1, nil
		}
		return KindBool, FlatI32, 0, nil
	case int8:
		return KindS8, FlatI32, uint64(uint32(int32(x))), nil
	case uint8:
		return KindU8, FlatI32, uint64(x), nil
	case int16:
		return KindS16, FlatI32, uint64(uint32(int32(x))), nil
	case uint16:
		return KindU16, FlatI32, uint64(x), nil
	case int32:
		return KindS32, FlatI32, uint64(uint32(x)), nil
	case uint32:
		return KindU32, FlatI32, uint64(x), nil
	case int64:
		return KindS64, FlatI64, uint64(x), nil
	case uint64:
		return KindU64, FlatI64, x, nil
	case float32:
		return KindF32, FlatF32, uint64(abi.CanonicalizeF32(math.Float32bits(x))), nil
	case float64:
		return KindF64, FlatF64, abi.CanonicalizeF64(math.Float64bits(x)), nil
	case Char:
		if !abi.ValidateChar(rune(x)) {
			return 0, 0, 0, errors.EncodingError("lower char: codepoint %#x is not a Unicode scalar value", uint32(x))
		}
		return KindChar, FlatI32, uint64(uint32(x)), nil
	default:
		return 0, 0, 0, errors.ValidationError(errors.PhaseCanon, "lower scalar: unsupported Go type %T", v)
	}
}
