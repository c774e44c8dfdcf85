package gcwasm

import (
	"encoding/binary"

	"github.com/wippyai/gcwasm-core/errors"
)

// LinearMemory is a bounds-checked, growable byte buffer implementing Memory.
// It backs the Canonical ABI string tests and the demo CLI; a real embedder
// would instead wrap whatever byte slice its own module instance exposes.
type LinearMemory struct {
	buf []byte
}

// NewLinearMemory allocates a zeroed buffer of the given size in bytes.
func NewLinearMemory(size uint32) *LinearMemory {
	return &LinearMemory{buf: make([]byte, size)}
}

func (m *LinearMemory) Size() uint32 { return uint32(len(m.buf)) }

func (m *LinearMemory) bounds(offset, length uint32) error {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.buf)) {
		return errors.OutOfBounds(errors.PhaseCanon, "linear memory", offset, length, uint32(len(m.buf)))
	}
	return nil
}

func (m *LinearMemory) Read(offset, length uint32) ([]byte, error) {
	if err := m.bounds(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:offset+length])
	return out, nil
}

func (m *LinearMemory) Write(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.buf[offset:], data)
	return nil
}

func (m *LinearMemory) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.buf[offset], nil
}

func (m *LinearMemory) ReadU16(offset uint32) (uint16, error) {
	if err := m.bounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.buf[offset:]), nil
}

func (m *LinearMemory) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.buf[offset:]), nil
}

func (m *LinearMemory) ReadU64(offset uint32) (uint64, error) {
	if err := m.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.buf[offset:]), nil
}

func (m *LinearMemory) WriteU8(offset uint32, value uint8) error {
	if err := m.bounds(offset, 1); err != nil {
		return err
	}
	m.buf[offset] = value
	return nil
}

func (m *LinearMemory) WriteU16(offset uint32, value uint16) error {
	if err := m.bounds(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.buf[offset:], value)
	return nil
}

func (m *LinearMemory) WriteU32(offset uint32, value uint32) error {
	if err := m.bounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.buf[offset:], value)
	return nil
}

func (m *LinearMemory) WriteU64(offset uint32, value uint64) error {
	if err := m.bounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.buf[offset:], value)
	return nil
}

// Grow appends n pages (64KiB each, per the core Wasm spec) and returns the
// previous size in pages. This repo does not implement grow failure beyond
// the trivial allocation failure case — "linear-memory grow beyond spec" is
// a non-goal.
func (m *LinearMemory) Grow(pages uint32) uint32 {
	const pageSize = 65536
	prev := uint32(len(m.buf)) / pageSize
	m.buf = append(m.buf, make([]byte, uint64(pages)*pageSize)...)
	return prev
}
