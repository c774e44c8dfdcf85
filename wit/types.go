package wit

import (
	"fmt"

	"github.com/wippyai/gcwasm-core/canon"
	"github.com/wippyai/gcwasm-core/errors"
)

// BaseType is one of WIT's primitive types. Only the scalar and string
// primitives are recognized; records, variants, lists, options, and results
// are out of scope.
type BaseType int

const (
	TypeBool BaseType = iota
	TypeS8
	TypeU8
	TypeS16
	TypeU16
	TypeS32
	TypeU32
	TypeS64
	TypeU64
	TypeF32
	TypeF64
	TypeChar
	TypeString
)

var baseTypeNames = map[string]BaseType{
	"bool":    TypeBool,
	"s8":      TypeS8,
	"u8":      TypeU8,
	"s16":     TypeS16,
	"u16":     TypeU16,
	"s32":     TypeS32,
	"u32":     TypeU32,
	"s64":     TypeS64,
	"u64":     TypeU64,
	"float32": TypeF32,
	"f32":     TypeF32,
	"float64": TypeF64,
	"f64":     TypeF64,
	"char":    TypeChar,
	"string":  TypeString,
}

// CanonKind maps t to its canon.Kind, if it has one. String has no
// canon.Kind: it lowers to a pointer/length pair handled by canon's string
// functions rather than a single scalar.
func (t BaseType) CanonKind() (canon.Kind, bool) {
	switch t {
	case TypeBool:
		return canon.KindBool, true
	case TypeS8:
		return canon.KindS8, true
	case TypeU8:
		return canon.KindU8, true
	case TypeS16:
		return canon.KindS16, true
	case TypeU16:
		return canon.KindU16, true
	case TypeS32:
		return canon.KindS32, true
	case TypeU32:
		return canon.KindU32, true
	case TypeS64:
		return canon.KindS64, true
	case TypeU64:
		return canon.KindU64, true
	case TypeF32:
		return canon.KindF32, true
	case TypeF64:
		return canon.KindF64, true
	case TypeChar:
		return canon.KindChar, true
	default:
		return 0, false
	}
}

// Param is one named, typed function parameter or result.
type Param struct {
	Name string
	Type BaseType
}

// FuncSig is a parsed `func name(...) -> ...` signature.
type FuncSig struct {
	Name    string
	Params  []Param
	Results []Param
}

// ParseFuncSig reads a single function signature from source. It expects
// exactly one `func` item and nothing else; a leading function name, a
// parenthesized, comma-separated `name: type` parameter list, and an
// optional `-> type` single result.
func ParseFuncSig(source string) (FuncSig, error) {
	toks := Tokenize(source)
	r := &reader{toks: toks}

	if err := r.expectKeyword("func"); err != nil {
		return FuncSig{}, err
	}
	name, err := r.expectIdent()
	if err != nil {
		return FuncSig{}, err
	}
	if err := r.expect(LParen); err != nil {
		return FuncSig{}, err
	}

	var params []Param
	for !r.at(RParen) {
		p, err := r.readParam()
		if err != nil {
			return FuncSig{}, err
		}
		params = append(params, p)
		if r.at(Comma) {
			r.advance()
			continue
		}
		break
	}
	if err := r.expect(RParen); err != nil {
		return FuncSig{}, err
	}

	var results []Param
	if r.at(Arrow) {
		r.advance()
		bt, err := r.readType()
		if err != nil {
			return FuncSig{}, err
		}
		results = append(results, Param{Name: "", Type: bt})
	}

	if !r.atEOF() {
		return FuncSig{}, errors.ValidationError(errors.PhaseWit, "unexpected trailing tokens after signature")
	}

	return FuncSig{Name: name, Params: params, Results: results}, nil
}

type reader struct {
	toks []Token
	pos  int
}

func (r *reader) at(t Type) bool {
	return r.pos < len(r.toks) && r.toks[r.pos].Type == t
}

func (r *reader) atEOF() bool {
	return r.pos >= len(r.toks)
}

func (r *reader) advance() Token {
	t := r.toks[r.pos]
	r.pos++
	return t
}

func (r *reader) expect(t Type) error {
	if !r.at(t) {
		return errors.ValidationError(errors.PhaseWit, "expected %v at position %d", t, r.pos)
	}
	r.advance()
	return nil
}

func (r *reader) expectKeyword(kw string) error {
	if !r.at(Ident) || r.toks[r.pos].Value != kw {
		return errors.ValidationError(errors.PhaseWit, "expected keyword %q", kw)
	}
	r.advance()
	return nil
}

func (r *reader) expectIdent() (string, error) {
	if !r.at(Ident) {
		return "", errors.ValidationError(errors.PhaseWit, "expected identifier at position %d", r.pos)
	}
	return r.advance().Value, nil
}

func (r *reader) readType() (BaseType, error) {
	name, err := r.expectIdent()
	if err != nil {
		return 0, err
	}
	bt, ok := baseTypeNames[name]
	if !ok {
		return 0, errors.ValidationError(errors.PhaseWit, "unknown type %q", name)
	}
	return bt, nil
}

func (r *reader) readParam() (Param, error) {
	name, err := r.expectIdent()
	if err != nil {
		return Param{}, err
	}
	if err := r.expect(Colon); err != nil {
		return Param{}, fmt.Errorf("param %q: %w", name, err)
	}
	bt, err := r.readType()
	if err != nil {
		return Param{}, fmt.Errorf("param %q: %w", name, err)
	}
	return Param{Name: name, Type: bt}, nil
}
