package value

// Heap owns every string object allocated during one interpret call: the
// intern table that canonicalizes them, and the intrusive linked list every
// live object is threaded onto so it can be released in one pass at VM
// teardown. Both the compiler (string literals, identifier names) and the
// VM (string concatenation) share one Heap so that interning holds across
// the compile/run boundary — the compiler's "string literal" prefix rule
// and the VM's OP_ADD string case must hand back pointer-identical objects
// for identical bytes (spec §8, property 3).
type Heap struct {
	strings Table[bool] // set of interned strings; value is an unused placeholder
	objects *Object
}

// NewHeap returns an empty Heap.
func NewHeap() *Heap {
	return &Heap{}
}

// InternString returns the canonical Object for s, allocating and
// registering a new one only if s has never been seen on this Heap before.
// A string literal appearing twice in a program, or a concatenation result
// matching an existing string, always resolves to the same *Object — which
// is what makes Value.Equal's pointer comparison correct for strings.
func (h *Heap) InternString(s string) *Object {
	hash := fnv1a32(s)
	if existing := findString(h.strings.entries, s, hash); existing != nil {
		return existing
	}

	obj := &Object{Type: ObjString, str: s, hash: hash}
	h.register(obj)
	h.strings.Set(obj, true)
	return obj
}

// register prepends obj to the intrusive object list. Only called for
// objects that survive interning — a candidate that turns out to duplicate
// an already-interned string is never registered, so it leaks no tracked
// memory (spec §5).
func (h *Heap) register(obj *Object) {
	obj.Next = h.objects
	h.objects = obj
}

// Objects returns the head of the intrusive object list, for teardown and
// for tests asserting over the live object count.
func (h *Heap) Objects() *Object { return h.objects }

// Free walks the object list and releases it. Go's GC reclaims the
// objects themselves once nothing else references them; this only breaks
// the VM's own chain, mirroring the teardown discipline §5 describes for a
// manually-managed heap.
func (h *Heap) Free() {
	for o := h.objects; o != nil; {
		next := o.Next
		o.Next = nil
		o = next
	}
	h.objects = nil
	h.strings = Table[bool]{}
}
