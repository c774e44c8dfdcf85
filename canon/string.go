package canon

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/gcwasm-core/canon/internal/abi"
	"github.com/wippyai/gcwasm-core/errors"
)

// LiftStringUTF8 returns mem's bytes at [ptr, ptr+byteLen) as a string,
// after validating bounds and UTF-8 well-formedness (spec §4.4). The
// result is a copy: it does not alias linear memory, so later writes to
// mem do not change it.
func LiftStringUTF8(mem memReader, ptr, byteLen uint32) (string, error) {
	if byteLen > abi.MaxStringSize {
		return "", errors.EncodingError("lift utf8 string: length %d exceeds max string size", byteLen)
	}
	b, err := mem.Read(ptr, byteLen)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.EncodingError("lift utf8 string: invalid UTF-8 at offset %d, length %d", ptr, byteLen)
	}
	return string(b), nil
}

// LiftStringUTF16 decodes codeUnitLen little-endian UTF-16 code units
// starting at ptr into an owned UTF-8 string, rejecting unmatched
// surrogates (spec §4.4).
func LiftStringUTF16(mem memReader, ptr, codeUnitLen uint32) (string, error) {
	if ptr%2 != 0 {
		return "", errors.EncodingError("lift utf16 string: pointer %d is not 2-byte aligned", ptr)
	}
	byteLen, ok := abi.SafeMulU32(codeUnitLen, 2)
	if !ok {
		return "", errors.OutOfBounds(errors.PhaseCanon, "utf16 string", ptr, codeUnitLen, 0)
	}
	raw, err := mem.Read(ptr, byteLen)
	if err != nil {
		return "", err
	}

	units := make([]uint16, codeUnitLen)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}

	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+1 >= len(units) {
				return "", errors.EncodingError("lift utf16 string: unpaired high surrogate at unit %d", i)
			}
			lo := units[i+1]
			if lo < 0xDC00 || lo > 0xDFFF {
				return "", errors.EncodingError("lift utf16 string: high surrogate at unit %d not followed by low surrogate", i)
			}
			r := (rune(u-0xD800) << 10) + rune(lo-0xDC00) + 0x10000
			runes = append(runes, r)
			i++
		case u >= 0xDC00 && u <= 0xDFFF: // unmatched low surrogate
			return "", errors.EncodingError("lift utf16 string: lone low surrogate at unit %d", i)
		default:
			runes = append(runes, rune(u))
		}
	}
	return string(runes), nil
}

// LowerStringUTF8 copies str verbatim into mem at offset and returns
// (offset, byte length).
func LowerStringUTF8(mem memWriter, offset uint32, str string) (uint32, uint32, error) {
	b := []byte(str)
	if err := mem.Write(offset, b); err != nil {
		return 0, 0, err
	}
	return offset, uint32(len(b)), nil
}

// LowerStringUTF16 encodes str's Unicode scalar values as little-endian
// UTF-16 starting at offset, writing surrogate pairs for codepoints
// outside the BMP, and returns (offset, code unit count).
func LowerStringUTF16(mem memWriter, offset uint32, str string) (uint32, uint32, error) {
	if offset%2 != 0 {
		return 0, 0, errors.EncodingError("lower utf16 string: offset %d is not 2-byte aligned", offset)
	}

	pos := offset
	count := uint32(0)
	for _, r := range str {
		if r < 0x10000 {
			if err := writeU16LE(mem, pos, uint16(r)); err != nil {
				return 0, 0, err
			}
			pos += 2
			count++
			continue
		}
		hi, lo := utf16.EncodeRune(r)
		if err := writeU16LE(mem, pos, uint16(hi)); err != nil {
			return 0, 0, err
		}
		pos += 2
		if err := writeU16LE(mem, pos, uint16(lo)); err != nil {
			return 0, 0, err
		}
		pos += 2
		count += 2
	}
	return offset, count, nil
}

func writeU16LE(mem memWriter, offset uint32, v uint16) error {
	return mem.Write(offset, []byte{byte(v), byte(v >> 8)})
}

// memReader and memWriter are the slices of gcwasm.Memory the string
// lift/lower functions need; defined here instead of importing gcwasm to
// avoid a canon -> gcwasm -> canon import cycle should gcwasm ever need
// canon for CLI-level round-tripping.
type memReader interface {
	Read(offset, length uint32) ([]byte, error)
}

type memWriter interface {
	Write(offset uint32, data []byte) error
}
