package value

import "github.com/wippyai/gcwasm-core/errors"

// Word is a single operand-stack slot: a 64-bit value that may be a null
// reference, an i31 reference, a GC heap reference, or a raw integer/funcref/
// externref whose interpretation is determined by static type rather than by
// a tag bit.
type Word uint64

const (
	i31Tag        = uint64(1) << 63
	gcTag         = uint64(1) << 32
	payload31Mask = uint64(0x7FFFFFFF)
)

// Null is the zero word; it denotes the null reference for every reference
// type.
const Null Word = 0

// IsNull reports whether w is the null reference.
func (w Word) IsNull() bool { return w == Null }

// IsI31 reports whether w is tagged as an i31 reference.
func (w Word) IsI31() bool { return uint64(w)&i31Tag != 0 }

// IsGCRef reports whether w is tagged as a GC heap reference (and is
// therefore not null and not i31).
func (w Word) IsGCRef() bool {
	u := uint64(w)
	return u&i31Tag == 0 && u&gcTag != 0
}

// EncodeI31 packs the low 31 bits of n into an i31 reference word. Only the
// low 31 bits of n are kept; bit 31 is dropped and neither decoder can
// recover it.
func EncodeI31(n uint32) Word {
	return Word(i31Tag | (uint64(n) & payload31Mask))
}

// DecodeI31Signed extracts the i31 payload and sign-extends it as a 31-bit
// two's-complement integer. Traps if w is not i31-tagged (including null).
func DecodeI31Signed(w Word) (int32, error) {
	if !w.IsI31() {
		return 0, errors.Trap(errors.PhaseValue, "i31.get_s on non-i31 reference")
	}
	payload := uint32(uint64(w) & payload31Mask)
	// Sign-extend bit 30 (the top bit of the 31-bit payload) across bit 31.
	if payload&(1<<30) != 0 {
		payload |= 1 << 31
	}
	return int32(payload), nil
}

// DecodeI31Unsigned extracts the i31 payload as an unsigned 31-bit integer
// (bits 31..63 are zero in the result). Traps if w is not i31-tagged.
func DecodeI31Unsigned(w Word) (uint32, error) {
	if !w.IsI31() {
		return 0, errors.Trap(errors.PhaseValue, "i31.get_u on non-i31 reference")
	}
	return uint32(uint64(w) & payload31Mask), nil
}

// EncodeRef packs a heap address into a GC reference word. addr is the
// slot index in the owning heap; the stored payload is addr+1 so that zero
// remains reserved for null.
func EncodeRef(addr uint32) Word {
	return Word(gcTag | uint64(addr+1))
}

// DecodeRef extracts the heap address from a GC reference word. Traps on
// null or on an i31-tagged word, per §4.1's contract for decode_ref.
func DecodeRef(w Word) (uint32, error) {
	if w.IsNull() {
		return 0, errors.Trap(errors.PhaseValue, "decode_ref of null reference")
	}
	if w.IsI31() {
		return 0, errors.Trap(errors.PhaseValue, "decode_ref of i31 reference")
	}
	if !w.IsGCRef() {
		return 0, errors.Trap(errors.PhaseValue, "decode_ref of non-GC reference")
	}
	return uint32(uint64(w)&0xFFFFFFFF) - 1, nil
}
