package value

import "testing"

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), true},
		{"false", Bool(false), true},
		{"true", Bool(true), false},
		{"zero number", Number(0), false},
		{"nonzero number", Number(1), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFalsey(); got != tt.want {
			t.Errorf("%s: IsFalsey() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqualCrossTypeIsFalse(t *testing.T) {
	if Number(0).Equal(Bool(false)) {
		t.Error("Number(0) should not equal Bool(false)")
	}
	if Null().Equal(Bool(false)) {
		t.Error("Null() should not equal Bool(false)")
	}
}

func TestEqualStringsAreIdentityBased(t *testing.T) {
	h := NewHeap()
	a := h.InternString("hello")
	b := h.InternString("hello")
	if a != b {
		t.Fatal("interning the same string twice must return the same object")
	}
	if !FromObject(a).Equal(FromObject(b)) {
		t.Error("equal interned strings should compare equal")
	}
}

func TestStringRepr(t *testing.T) {
	h := NewHeap()
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{FromObject(h.InternString("hi")), "hi"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
