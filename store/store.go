package store

import (
	gcwasm "github.com/wippyai/gcwasm-core"
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/heap"
	"github.com/wippyai/gcwasm-core/wasm"
	"go.uber.org/zap"
)

// Binding is one (module, name, tag) -> handle entry in the Store's flat
// import/export table (spec §3).
type Binding struct {
	Module string
	Name   string
	Tag    byte // wasm.KindFunc, KindTable, KindMemory, or KindGlobal
	Handle uint32
}

// Store is the process-wide registry of functions, memories, tables,
// globals, segments, and import/export bindings (spec §4.5). It owns a
// single GC Heap shared by every instance registered into it, consistent
// with the single-threaded-cooperative concurrency model (spec §5).
type Store struct {
	Functions    []Function
	Memories     []*gcwasm.LinearMemory
	Tables       []*Table
	Globals      []*Global
	DataSegments []*DataSegment
	ElemSegments []*ElemSegment
	Bindings     []Binding

	heap *heap.Heap
}

// Config configures Store behavior.
type Config struct {
	Heap heap.Config
}

// DefaultConfig returns the default Store configuration.
func DefaultConfig() Config {
	return Config{Heap: heap.DefaultConfig()}
}

// New creates an empty Store with a fresh GC heap built from cfg.
func New(cfg Config) *Store {
	return &Store{heap: heap.New(cfg.Heap)}
}

// NewWithDefaults creates an empty Store using DefaultConfig.
func NewWithDefaults() *Store {
	return New(DefaultConfig())
}

func (s *Store) Heap() *heap.Heap { return s.heap }

// AddFunction registers a function and returns its handle.
func (s *Store) AddFunction(fn Function) uint32 {
	s.Functions = append(s.Functions, fn)
	return uint32(len(s.Functions) - 1)
}

func (s *Store) Function(idx uint32) (*Function, error) {
	if int(idx) >= len(s.Functions) {
		return nil, errors.Trap(errors.PhaseStore, "function index %d out of range", idx)
	}
	return &s.Functions[idx], nil
}

// AddMemory registers a memory and returns its handle.
func (s *Store) AddMemory(m *gcwasm.LinearMemory) uint32 {
	s.Memories = append(s.Memories, m)
	return uint32(len(s.Memories) - 1)
}

func (s *Store) Memory(idx uint32) (gcwasm.Memory, error) {
	if int(idx) >= len(s.Memories) {
		return nil, errors.Trap(errors.PhaseStore, "memory index %d out of range", idx)
	}
	return s.Memories[idx], nil
}

// AddTable registers a table and returns its handle.
func (s *Store) AddTable(t *Table) uint32 {
	s.Tables = append(s.Tables, t)
	return uint32(len(s.Tables) - 1)
}

func (s *Store) Table(idx uint32) (*Table, error) {
	if int(idx) >= len(s.Tables) {
		return nil, errors.Trap(errors.PhaseStore, "table index %d out of range", idx)
	}
	return s.Tables[idx], nil
}

// AddGlobal registers a global and returns its handle.
func (s *Store) AddGlobal(g *Global) uint32 {
	s.Globals = append(s.Globals, g)
	return uint32(len(s.Globals) - 1)
}

func (s *Store) Global(idx uint32) (*Global, error) {
	if int(idx) >= len(s.Globals) {
		return nil, errors.Trap(errors.PhaseStore, "global index %d out of range", idx)
	}
	return s.Globals[idx], nil
}

// AddDataSegment registers a data segment and returns its handle.
func (s *Store) AddDataSegment(d *DataSegment) uint32 {
	s.DataSegments = append(s.DataSegments, d)
	return uint32(len(s.DataSegments) - 1)
}

// AddElemSegment registers an element segment and returns its handle.
func (s *Store) AddElemSegment(e *ElemSegment) uint32 {
	s.ElemSegments = append(s.ElemSegments, e)
	return uint32(len(s.ElemSegments) - 1)
}

// Bind adds an import/export binding.
func (s *Store) Bind(module, name string, tag byte, handle uint32) {
	s.Bindings = append(s.Bindings, Binding{Module: module, Name: name, Tag: tag, Handle: handle})
}

// LookupImport linearly searches bindings for one matching module, name,
// and tag, failing with a LinkError when none matches (spec §4.5).
func (s *Store) LookupImport(module, name string, tag byte) (uint32, error) {
	for _, b := range s.Bindings {
		if b.Module == module && b.Name == name && b.Tag == tag {
			return b.Handle, nil
		}
	}
	Logger().Warn("import not found", zap.String("module", module), zap.String("name", name), zap.Uint8("tag", tag))
	return 0, errors.LinkError("import not found: %s.%s (tag %d)", module, name, tag)
}

// ExposeHostFunction registers a host callback as a function and binds it
// into the export table under (module, name) with tag func, returning its
// function handle (spec §4.5).
func (s *Store) ExposeHostFunction(module, name string, sig wasm.FuncType, fn HostFunc) uint32 {
	handle := s.AddFunction(Function{Signature: sig, IsHost: true, Host: fn})
	s.Bind(module, name, wasm.KindFunc, handle)
	Logger().Debug("host function exposed", zap.String("module", module), zap.String("name", name))
	return handle
}
