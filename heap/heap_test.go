package heap

import (
	"testing"

	"github.com/wippyai/gcwasm-core/value"
)

func TestAllocStructAndGet(t *testing.T) {
	h := NewWithDefaults()
	addr := h.AllocStruct(0, []value.Word{value.EncodeI31(10), value.EncodeI31(20)})
	obj, err := h.Get(addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj.Kind != KindStruct {
		t.Errorf("Kind = %v, want KindStruct", obj.Kind)
	}
	got, err := value.DecodeI31Signed(obj.Fields[1])
	if err != nil || got != 20 {
		t.Errorf("Fields[1] = %v (err=%v), want 20", got, err)
	}
}

func TestAllocArrayAndGet(t *testing.T) {
	h := NewWithDefaults()
	addr := h.AllocArray(0, 3, value.EncodeI31(42))
	obj, err := h.Get(addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(obj.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3", len(obj.Fields))
	}
	got, _ := value.DecodeI31Unsigned(obj.Fields[0])
	if got != 42 {
		t.Errorf("Fields[0] = %d, want 42", got)
	}
}

func TestGetOutOfRangeTraps(t *testing.T) {
	h := NewWithDefaults()
	if _, err := h.Get(0); err == nil {
		t.Error("Get on empty heap did not trap")
	}
}

func TestShouldCollectThreshold(t *testing.T) {
	h := New(Config{CollectThreshold: 2})
	h.AllocStruct(0, nil)
	if h.ShouldCollect() {
		t.Error("ShouldCollect true before threshold reached")
	}
	h.AllocStruct(0, nil)
	if !h.ShouldCollect() {
		t.Error("ShouldCollect false at threshold")
	}
}

// TestGCSweepReclaimsGarbage is spec scenario 7: A -> B -> C reachable,
// D garbage; collect(roots={A}) keeps A, B, C and frees D's slot for reuse.
func TestGCSweepReclaimsGarbage(t *testing.T) {
	h := NewWithDefaults()

	addrC := h.AllocStruct(0, nil)
	addrB := h.AllocStruct(0, []value.Word{h.EncodeRef(addrC)})
	addrA := h.AllocStruct(0, []value.Word{h.EncodeRef(addrB)})
	addrD := h.AllocStruct(0, nil)

	h.Collect([]value.Word{h.EncodeRef(addrA)})

	for _, addr := range []uint32{addrA, addrB, addrC} {
		if _, err := h.Get(addr); err != nil {
			t.Errorf("Get(%d) failed after collect: %v", addr, err)
		}
	}
	if _, err := h.Get(addrD); err == nil {
		t.Errorf("Get(%d) (garbage) succeeded after collect", addrD)
	}

	reused := h.AllocStruct(0, nil)
	if reused != addrD {
		t.Errorf("next allocation returned slot %d, want reused slot %d", reused, addrD)
	}
}

func TestFreeListReuseLIFO(t *testing.T) {
	h := NewWithDefaults()
	a := h.AllocStruct(0, nil)
	_ = a
	b := h.AllocStruct(0, nil)

	h.Collect(nil) // nothing rooted: both a and b become garbage

	first := h.AllocStruct(0, nil)
	second := h.AllocStruct(0, nil)
	if first != b || second != a {
		t.Errorf("LIFO reuse order = (%d, %d), want (%d, %d)", first, second, b, a)
	}
}

func TestCollectResetsAllocSinceGC(t *testing.T) {
	h := New(Config{CollectThreshold: 5})
	h.AllocStruct(0, nil)
	h.AllocStruct(0, nil)
	h.Collect(nil)
	if h.ShouldCollect() {
		t.Error("ShouldCollect true immediately after Collect")
	}
}

func TestCollectIgnoresI31AndNullRoots(t *testing.T) {
	h := NewWithDefaults()
	addr := h.AllocStruct(0, nil)
	h.Collect([]value.Word{value.Null, value.EncodeI31(7)})
	if _, err := h.Get(addr); err == nil {
		t.Error("unrooted object survived collection rooted only by null/i31 words")
	}
}
