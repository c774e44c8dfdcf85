package subtype

import "testing"

type mapTypeTable map[uint32]TypeInfo

func (m mapTypeTable) Lookup(idx uint32) (TypeInfo, bool) {
	info, ok := m[idx]
	return info, ok
}

func TestSubtypeReflexivity(t *testing.T) {
	types := mapTypeTable{
		0: {Kind: ObjectStruct},
	}
	if !IsConcreteSubtype(types, 0, 0) {
		t.Error("IsConcreteSubtype(0, 0) = false, want true")
	}
}

func TestSubtypeTransitivity(t *testing.T) {
	// A(2) extends B(1) extends C(0).
	types := mapTypeTable{
		0: {Kind: ObjectStruct},
		1: {Kind: ObjectStruct, Super: 0, HasSuper: true},
		2: {Kind: ObjectStruct, Super: 1, HasSuper: true},
	}
	if !IsConcreteSubtype(types, 2, 0) {
		t.Error("IsConcreteSubtype(A, C) = false, want true")
	}
	if !IsConcreteSubtype(types, 2, 1) {
		t.Error("IsConcreteSubtype(A, B) = false, want true")
	}
	if IsConcreteSubtype(types, 0, 2) {
		t.Error("IsConcreteSubtype(C, A) = true, want false")
	}
}

func TestSubtypeEmptyChainNoMatch(t *testing.T) {
	types := mapTypeTable{0: {Kind: ObjectStruct}}
	if IsConcreteSubtype(types, 0, 1) {
		t.Error("IsConcreteSubtype with no super chain matched an unrelated type")
	}
}

func TestSubtypeOutOfRangeNoMatch(t *testing.T) {
	types := mapTypeTable{}
	if IsConcreteSubtype(types, 5, 0) {
		t.Error("IsConcreteSubtype on out-of-range index matched")
	}
}

func TestMatchesAny(t *testing.T) {
	types := mapTypeTable{}
	if Matches(types, HeapAny, Classification{Null: true}) {
		t.Error("null matched any")
	}
	if !Matches(types, HeapAny, Classification{I31: true}) {
		t.Error("i31 did not match any")
	}
	if !Matches(types, HeapAny, Classification{ObjKind: ObjectStruct}) {
		t.Error("struct ref did not match any")
	}
}

func TestMatchesNoneNeverMatches(t *testing.T) {
	types := mapTypeTable{}
	if Matches(types, HeapNone, Classification{I31: true}) {
		t.Error("i31 matched none")
	}
}

func TestMatchesI31(t *testing.T) {
	types := mapTypeTable{}
	v := Classification{I31: true}
	if !Matches(types, HeapI31, v) {
		t.Error("i31 did not match i31")
	}
	if !Matches(types, HeapEq, v) {
		t.Error("i31 did not match eq")
	}
	if Matches(types, HeapStruct, v) {
		t.Error("i31 matched struct")
	}
	if Matches(types, HeapFunc, v) {
		t.Error("i31 matched func")
	}
}

func TestMatchesStructAndArray(t *testing.T) {
	types := mapTypeTable{
		0: {Kind: ObjectStruct},
		1: {Kind: ObjectStruct, Super: 0, HasSuper: true},
	}
	structVal := Classification{ObjKind: ObjectStruct, ObjType: 1}
	arrayVal := Classification{ObjKind: ObjectArray, ObjType: 2}

	if !Matches(types, HeapEq, structVal) {
		t.Error("struct did not match eq")
	}
	if !Matches(types, HeapStruct, structVal) {
		t.Error("struct did not match struct")
	}
	if Matches(types, HeapArray, structVal) {
		t.Error("struct matched array")
	}
	if Matches(types, HeapI31, structVal) {
		t.Error("struct matched i31")
	}
	if !Matches(types, HeapArray, arrayVal) {
		t.Error("array did not match array")
	}

	if !Matches(types, HeapType(1), structVal) {
		t.Error("struct of concrete type 1 did not match itself")
	}
	if !Matches(types, HeapType(0), structVal) {
		t.Error("struct of concrete type 1 did not match its supertype 0")
	}
}

func TestMatchesFuncRef(t *testing.T) {
	types := mapTypeTable{}
	v := Classification{FuncRef: true}
	if !Matches(types, HeapFunc, v) {
		t.Error("funcref did not match func")
	}
	if Matches(types, HeapEq, v) {
		t.Error("funcref matched eq")
	}
}

func TestMatchesNullNeverMatchesNonAny(t *testing.T) {
	types := mapTypeTable{0: {Kind: ObjectStruct}}
	v := Classification{Null: true}
	if Matches(types, HeapEq, v) {
		t.Error("null matched eq")
	}
	if Matches(types, HeapType(0), v) {
		t.Error("null matched a concrete type")
	}
}
