package subtype

// HeapType identifies a ref-typed instruction's heap-type immediate: a
// non-negative value is a concrete module type index; a negative value is
// one of the abstract sentinels below. Values match the LEB128 encodings
// used on the wire (wasm.HeapType* constants), kept independent here so
// this package has no dependency on module decoding.
type HeapType int32

const (
	HeapNoExn    HeapType = -12
	HeapNoFunc   HeapType = -13
	HeapNoExtern HeapType = -14
	HeapNone     HeapType = -15
	HeapFunc     HeapType = -16
	HeapExtern   HeapType = -17
	HeapAny      HeapType = -18
	HeapEq       HeapType = -19
	HeapI31      HeapType = -20
	HeapStruct   HeapType = -21
	HeapArray    HeapType = -22
	HeapExn      HeapType = -23
)

// IsAbstract reports whether t is a sentinel rather than a module type index.
func (t HeapType) IsAbstract() bool { return t < 0 }

// Concrete returns t as a module type index, if it is one.
func (t HeapType) Concrete() (uint32, bool) {
	if t < 0 {
		return 0, false
	}
	return uint32(t), true
}

// ObjectKind distinguishes the two concrete composite shapes a GC
// reference may point to.
type ObjectKind uint8

const (
	ObjectStruct ObjectKind = iota
	ObjectArray
)

// TypeInfo is the piece of a module's type definition that subtyping
// needs: its composite kind and, if any, the single supertype it extends.
type TypeInfo struct {
	Kind     ObjectKind
	Super    uint32
	HasSuper bool
}

// TypeTable resolves a module type index to its TypeInfo. A module's
// decoded type section implements this.
type TypeTable interface {
	Lookup(idx uint32) (TypeInfo, bool)
}

// IsConcreteSubtype walks sub's supertype chain (first supertype only)
// looking for super. Every type is a subtype of itself. Returns false on
// an empty chain or an out-of-range index, per spec §4.2.
func IsConcreteSubtype(types TypeTable, sub, super uint32) bool {
	cur := sub
	for {
		if cur == super {
			return true
		}
		info, ok := types.Lookup(cur)
		if !ok || !info.HasSuper {
			return false
		}
		cur = info.Super
	}
}

// Classification is the caller-supplied dynamic shape of a runtime value,
// since only the heap (for GC refs) and the operand's static type (for
// funcref) can determine it; this package knows nothing about either.
type Classification struct {
	Null    bool
	I31     bool
	FuncRef bool
	// ObjKind and ObjType apply only when none of the above are set.
	ObjKind ObjectKind
	ObjType uint32
}

// Matches applies the spec §4.2 match table to a classified value against
// a target heap type.
func Matches(types TypeTable, target HeapType, v Classification) bool {
	if target == HeapAny {
		return !v.Null
	}
	if target == HeapNone {
		return false
	}
	if v.Null {
		return false
	}

	if v.I31 {
		return target == HeapI31 || target == HeapEq
	}
	if v.FuncRef {
		return target == HeapFunc
	}

	switch target {
	case HeapEq:
		return true
	case HeapStruct:
		return v.ObjKind == ObjectStruct
	case HeapArray:
		return v.ObjKind == ObjectArray
	case HeapI31:
		return false
	}

	if concrete, ok := target.Concrete(); ok {
		return IsConcreteSubtype(types, v.ObjType, concrete)
	}
	return false
}
