package heap

import (
	"github.com/wippyai/gcwasm-core/errors"
	"github.com/wippyai/gcwasm-core/value"
	"go.uber.org/zap"
)

// Kind distinguishes the two object shapes a slot may hold.
type Kind uint8

const (
	KindStruct Kind = iota
	KindArray
)

// DefaultCollectThreshold is the number of allocations since the last
// collection at which ShouldCollect starts returning true.
const DefaultCollectThreshold = 1024

// Object is a live struct or array on the heap. Fields holds the struct's
// field words in declaration order, or the array's elements in index
// order; both are raw operand-stack words (spec §3's "GC Heap Object").
type Object struct {
	Kind    Kind
	TypeIdx uint32
	Fields  []value.Word

	marked bool
}

// slot is either occupied (obj != nil) or free, in which case nextFree
// holds the 1-based index of the next entry in the free list (0 = none).
// This mirrors resource.LocalBackend's entries/freeList split: a flat
// slice plus a LIFO stack of reclaimed indices, except the free pointer
// is intrusive here rather than living in a side slice.
type slot struct {
	obj      *Object
	nextFree uint32
}

// Heap is an append-only slot array with LIFO free-list reuse and a
// mark-sweep collector (spec §4.1).
type Heap struct {
	slots        []slot
	freeHead     uint32 // 1-based; 0 means the free list is empty
	allocSinceGC uint32
	threshold    uint32
}

// Config configures heap behavior.
type Config struct {
	// CollectThreshold is the number of allocations since the last
	// collection at which ShouldCollect starts returning true. Zero
	// selects DefaultCollectThreshold.
	CollectThreshold uint32
}

// DefaultConfig returns the default heap configuration.
func DefaultConfig() Config {
	return Config{CollectThreshold: DefaultCollectThreshold}
}

// New creates an empty heap with the given configuration.
func New(cfg Config) *Heap {
	threshold := cfg.CollectThreshold
	if threshold == 0 {
		threshold = DefaultCollectThreshold
	}
	return &Heap{threshold: threshold}
}

// NewWithDefaults creates an empty heap using DefaultConfig.
func NewWithDefaults() *Heap {
	return New(DefaultConfig())
}

func (h *Heap) alloc(obj *Object) uint32 {
	h.allocSinceGC++
	if h.freeHead != 0 {
		idx := h.freeHead - 1
		h.freeHead = h.slots[idx].nextFree
		h.slots[idx] = slot{obj: obj}
		return idx
	}
	h.slots = append(h.slots, slot{obj: obj})
	return uint32(len(h.slots) - 1)
}

// AllocStruct allocates a struct object with the given field words.
func (h *Heap) AllocStruct(typeIdx uint32, fields []value.Word) uint32 {
	cp := make([]value.Word, len(fields))
	copy(cp, fields)
	return h.alloc(&Object{Kind: KindStruct, TypeIdx: typeIdx, Fields: cp})
}

// AllocArray allocates an array of length elements, each initialized to init.
func (h *Heap) AllocArray(typeIdx uint32, length uint32, init value.Word) uint32 {
	elems := make([]value.Word, length)
	for i := range elems {
		elems[i] = init
	}
	return h.alloc(&Object{Kind: KindArray, TypeIdx: typeIdx, Fields: elems})
}

// AllocArrayWith allocates an array whose elements are exactly values.
func (h *Heap) AllocArrayWith(typeIdx uint32, values []value.Word) uint32 {
	cp := make([]value.Word, len(values))
	copy(cp, values)
	return h.alloc(&Object{Kind: KindArray, TypeIdx: typeIdx, Fields: cp})
}

// Get returns the live object at addr. It traps on an out-of-range or
// freed address.
func (h *Heap) Get(addr uint32) (*Object, error) {
	if int(addr) >= len(h.slots) {
		return nil, errors.Trap(errors.PhaseHeap, "heap address %d out of range (len=%d)", addr, len(h.slots))
	}
	obj := h.slots[addr].obj
	if obj == nil {
		return nil, errors.Trap(errors.PhaseHeap, "heap address %d refers to a freed slot", addr)
	}
	return obj, nil
}

// EncodeRef packs addr into an operand-stack word.
func (h *Heap) EncodeRef(addr uint32) value.Word { return value.EncodeRef(addr) }

// DecodeRef extracts a heap address from a GC reference word. It traps on
// null or i31-tagged input, per value.DecodeRef.
func (h *Heap) DecodeRef(w value.Word) (uint32, error) { return value.DecodeRef(w) }

// ShouldCollect reports whether the number of allocations since the last
// collection has reached the configured threshold.
func (h *Heap) ShouldCollect() bool { return h.allocSinceGC >= h.threshold }

// Collect runs one mark-sweep cycle rooted at roots (the operand stack,
// active locals, globals, and table entries — spec §4.1 step 2). Only
// roots tagged as GC references (Word.IsGCRef) are traced; null, i31 and
// raw scalar words are ignored.
func (h *Heap) Collect(roots []value.Word) {
	before := h.Stats()
	defer func() {
		after := h.Stats()
		Logger().Debug("gc cycle",
			zap.Int("live_before", before.Live),
			zap.Int("live_after", after.Live),
			zap.Int("freed", before.Live-after.Live),
		)
	}()

	for i := range h.slots {
		if h.slots[i].obj != nil {
			h.slots[i].obj.marked = false
		}
	}

	var queue []uint32
	mark := func(w value.Word) {
		if !w.IsGCRef() {
			return
		}
		addr, err := value.DecodeRef(w)
		if err != nil {
			return
		}
		if int(addr) >= len(h.slots) {
			return
		}
		obj := h.slots[addr].obj
		if obj == nil || obj.marked {
			return
		}
		obj.marked = true
		queue = append(queue, addr)
	}

	for _, r := range roots {
		mark(r)
	}

	for len(queue) > 0 {
		addr := queue[0]
		queue = queue[1:]
		obj := h.slots[addr].obj
		if obj == nil {
			continue
		}
		for _, field := range obj.Fields {
			mark(field)
		}
	}

	for i := range h.slots {
		if h.slots[i].obj != nil && !h.slots[i].obj.marked {
			h.slots[i] = slot{obj: nil, nextFree: h.freeHead}
			h.freeHead = uint32(i) + 1
		}
	}

	h.allocSinceGC = 0
}

// Stats summarizes heap occupancy, primarily for logging and the demo CLI.
type Stats struct {
	Slots        int
	Live         int
	Free         int
	AllocSinceGC uint32
}

func (h *Heap) Stats() Stats {
	s := Stats{Slots: len(h.slots), AllocSinceGC: h.allocSinceGC}
	for i := range h.slots {
		if h.slots[i].obj != nil {
			s.Live++
		} else {
			s.Free++
		}
	}
	return s
}
