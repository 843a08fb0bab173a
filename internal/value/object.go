package value

// ObjType discriminates the payload a heap Object carries. String is
// presently the only subtype (spec §3); the field exists so a future
// subtype would slot into the same header rather than requiring a new
// heap-object representation.
type ObjType int

const (
	ObjString ObjType = iota
)

// Object is a heap-allocated record: a type tag, the intrusive next-pointer
// the owning Heap threads through every live object, and the String
// payload.
//
// Go's own strings are already immutable byte sequences with O(1) length,
// so Object stores its payload as a native string rather than the
// C-style "bytes + trailing NUL" layout spec §3 describes — the trailing
// NUL exists there only so a C printf("%s", ...) can find the end of the
// buffer, a concern that does not exist once fmt.Fprint is handed a Go
// string directly. The byte content and precomputed hash spec §3 requires
// are both still here; only the termination convention is dropped.
type Object struct {
	Type ObjType
	Next *Object

	str  string
	hash uint32
}

// AsString returns the Go string backing a String object.
func (o *Object) AsString() string { return o.str }

// Hash returns the object's precomputed FNV-1a hash.
func (o *Object) Hash() uint32 { return o.hash }

// fnv1a32 hashes data with 32-bit FNV-1a, matching spec §4.4's required
// hash function.
func fnv1a32(data string) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	h := uint32(offsetBasis)
	for i := 0; i < len(data); i++ {
		h ^= uint32(data[i])
		h *= prime
	}
	return h
}
