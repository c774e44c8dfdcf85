package wasm

import "github.com/wippyai/gcwasm-core/subtype"

// TypeInfo resolves flat type index idx into the subtype.TypeInfo the
// subtype checker needs: composite kind plus first-supertype, expanding
// recursive type groups into the flat index space the same way
// getFuncTypeByIdx does.
func (m *Module) TypeInfo(idx uint32) (subtype.TypeInfo, bool) {
	sub := m.subTypeByIdx(idx)
	if sub == nil {
		return subtype.TypeInfo{}, false
	}
	info := subtype.TypeInfo{}
	switch sub.CompType.Kind {
	case CompKindStruct:
		info.Kind = subtype.ObjectStruct
	case CompKindArray:
		info.Kind = subtype.ObjectArray
	default:
		return subtype.TypeInfo{}, false
	}
	if len(sub.Parents) > 0 {
		info.Super = sub.Parents[0]
		info.HasSuper = true
	}
	return info, true
}

// Lookup implements subtype.TypeTable.
func (m *Module) Lookup(idx uint32) (subtype.TypeInfo, bool) { return m.TypeInfo(idx) }

func (m *Module) subTypeByIdx(typeIdx uint32) *SubType {
	flatIdx := uint32(0)
	for i := range m.TypeDefs {
		td := &m.TypeDefs[i]
		switch td.Kind {
		case TypeDefKindFunc:
			flatIdx++
		case TypeDefKindSub:
			if flatIdx == typeIdx {
				return td.Sub
			}
			flatIdx++
		case TypeDefKindRec:
			for j := range td.Rec.Types {
				if flatIdx == typeIdx {
					return &td.Rec.Types[j]
				}
				flatIdx++
			}
		}
	}
	return nil
}

// StructTypeByIdx returns the struct type definition at idx, or nil if idx
// does not name a struct type.
func (m *Module) StructTypeByIdx(idx uint32) *StructType {
	sub := m.subTypeByIdx(idx)
	if sub == nil || sub.CompType.Kind != CompKindStruct {
		return nil
	}
	return sub.CompType.Struct
}

// ArrayTypeByIdx returns the array type definition at idx, or nil if idx
// does not name an array type.
func (m *Module) ArrayTypeByIdx(idx uint32) *ArrayType {
	sub := m.subTypeByIdx(idx)
	if sub == nil || sub.CompType.Kind != CompKindArray {
		return nil
	}
	return sub.CompType.Array
}
