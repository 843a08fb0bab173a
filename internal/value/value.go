// Package value implements Clockwork's tagged Value union, its single heap
// object subtype (String), and the open-addressing table used both to
// intern strings and to back the VM's globals map.
//
// There is no garbage collector (spec §1 Non-goals): every heap object
// created during a single interpret call is reachable from a Heap's
// intrusive object list and is only reclaimed when the Heap is released at
// VM teardown.
package value

import "strconv"

// Kind tags the active arm of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a tagged union over {null, bool, number, object}. It is passed
// by value throughout the compiler and VM, matching the size of a couple of
// machine words rather than forcing heap allocation for every number or
// boolean pushed onto the stack.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	obj     *Object
}

// Null is the sole null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number wraps a 64-bit float.
func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

// FromObject wraps a heap object handle.
func FromObject(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsBool() bool { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsString() bool { return v.kind == KindObject && v.obj.Type == ObjString }

// AsBool returns v's boolean payload, which is false for any value that is
// not KindBool; callers must check IsBool first, same discipline the VM's opcode handlers rely on after the
// compiler has already statically ruled out the wrong shape where it can.
func (v Value) AsBool() bool { return v.boolean }

func (v Value) AsNumber() float64 { return v.number }

func (v Value) AsObject() *Object { return v.obj }

// AsString returns the underlying Go string of an interned string Value.
func (v Value) AsString() string { return v.obj.str }

// IsFalsey reports whether v is treated as false by NOT and conditional
// jumps. Only Null and Bool(false) are falsey; everything else, including
// Number(0) and the empty string, is truthy.
func (v Value) IsFalsey() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return !v.boolean
	default:
		return false
	}
}

// Equal implements value-equality: same tag, same payload. Number uses
// bitwise float equality with no NaN special casing. Cross-tag comparisons
// are false, never an error. Object equality is pointer equality, which is
// sound because every string that reaches a Value has been interned.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindNumber:
		return v.number == o.number
	case KindObject:
		return v.obj == o.obj
	}
	return false
}

// String renders v the way OP_PRINT does: null/bool literally, numbers with
// the shortest round-trippable decimal, strings as their raw bytes.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObject:
		switch v.obj.Type {
		case ObjString:
			return v.obj.str
		}
	}
	return "<unknown value>"
}

// TypeName names v's kind for runtime type-error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObject:
		switch v.obj.Type {
		case ObjString:
			return "string"
		}
	}
	return "object"
}
