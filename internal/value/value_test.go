package value

import (
	"testing"
	"time"
)

func TestFromNativeKinds(t *testing.T) {
	cases := []struct {
		in   interface{}
		kind Kind
	}{
		{nil, KindNull},
		{int64(42), KindInt},
		{3.14, KindFloat},
		{"hello", KindText},
		{[]byte("mysql text"), KindText},
		{[]byte{0x00, 0x01, 0xff}, KindBlob},
		{true, KindBool},
		{time.Now(), KindTime},
	}
	for _, c := range cases {
		if got := FromNative(c.in).Kind(); got != c.kind {
			t.Errorf("FromNative(%v) kind = %v, want %v", c.in, got, c.kind)
		}
	}
}

func TestFromNativeUnknownFallsBackToText(t *testing.T) {
	type odd struct{ A int }
	v := FromNative(odd{A: 1})
	if v.Kind() != KindText {
		t.Fatalf("unknown native type should map to text, got %v", v.Kind())
	}
}

func TestNativeNullBindsAsNil(t *testing.T) {
	if Null.Native() != nil {
		t.Fatal("NULL must bind as nil")
	}
	if Null.String() != "NULL" {
		t.Fatalf("NULL display = %q", Null.String())
	}
}

func TestRoundTrip(t *testing.T) {
	vals := []Value{Int(7), Float(1.5), Text("x"), Bool(false)}
	for _, v := range vals {
		if got := FromNative(v.Native()); !got.Equal(v) {
			t.Errorf("round trip of %v produced %v", v, got)
		}
	}
}

func TestParseInput(t *testing.T) {
	cases := []struct {
		in   string
		hint Kind
		want Value
	}{
		{"NULL", KindText, Null},
		{"null", KindInt, Null},
		{"12", KindInt, Int(12)},
		{"2.5", KindFloat, Float(2.5)},
		{"true", KindBool, Bool(true)},
		{"abc", KindInt, Text("abc")},
		{"99", KindNull, Int(99)},
		{"hello", KindNull, Text("hello")},
	}
	for _, c := range cases {
		if got := ParseInput(c.in, c.hint); !got.Equal(c.want) {
			t.Errorf("ParseInput(%q, %v) = %v, want %v", c.in, c.hint, got, c.want)
		}
	}
}
