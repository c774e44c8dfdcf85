package canon

import "testing"

func TestScalarRoundTrip(t *testing.T) {
	cases := []any{
		true, false,
		int8(-5), uint8(250),
		int16(-1000), uint16(60000),
		int32(-70000), uint32(4000000000),
		int64(-1 << 40), uint64(1 << 63),
		float32(3.5), float64(-2.25),
		Char('a'), Char('€'),
	}
	for _, v := range cases {
		k, flat, word, err := LowerScalar(v)
		if err != nil {
			t.Fatalf("LowerScalar(%v): %v", v, err)
		}
		got, err := LiftScalar(k, flat, word)
		if err != nil {
			t.Fatalf("LiftScalar after lowering %v: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %v (%T) = %v (%T)", v, v, got, got)
		}
	}
}

func TestLiftScalarFlatTypeMismatch(t *testing.T) {
	if _, err := LiftScalar(KindS64, FlatI32, 0); err == nil {
		t.Error("LiftScalar with mismatched flat type did not error")
	}
}

func TestLiftCharRejectsSurrogate(t *testing.T) {
	if _, err := LiftScalar(KindChar, FlatI32, 0xD800); err == nil {
		t.Error("LiftScalar(char, 0xD800) did not reject surrogate")
	}
}

func TestLiftCharRejectsOutOfRange(t *testing.T) {
	if _, err := LiftScalar(KindChar, FlatI32, 0x110000); err == nil {
		t.Error("LiftScalar(char, 0x110000) did not reject out-of-range codepoint")
	}
}

func TestLowerCharRejectsSurrogate(t *testing.T) {
	if _, _, _, err := LowerScalar(Char(0xDC00)); err == nil {
		t.Error("LowerScalar(char=0xDC00) did not reject surrogate")
	}
}

func TestLowerScalarUnsupportedType(t *testing.T) {
	if _, _, _, err := LowerScalar("not a scalar"); err == nil {
		t.Error("LowerScalar(string) did not error")
	}
}
