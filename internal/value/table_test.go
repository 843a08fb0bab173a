package value

import "testing"

func TestTableSetGetDelete(t *testing.T) {
	var tbl Table[int]
	h := NewHeap()
	a := h.InternString("a")
	b := h.InternString("b")

	if isNew := tbl.Set(a, 1); !isNew {
		t.Error("setting a fresh key should report isNew=true")
	}
	if isNew := tbl.Set(a, 2); isNew {
		t.Error("overwriting an existing key should report isNew=false")
	}

	if v, ok := tbl.Get(a); !ok || v != 2 {
		t.Errorf("Get(a) = %v, %v, want 2, true", v, ok)
	}
	if _, ok := tbl.Get(b); ok {
		t.Error("Get on an absent key should report not-found")
	}

	if ok := tbl.Delete(a); !ok {
		t.Error("Delete on a live key should report true")
	}
	if _, ok := tbl.Get(a); ok {
		t.Error("Get after Delete should report not-found")
	}
}

func TestTableGrowsAndKeepsLiveEntries(t *testing.T) {
	var tbl Table[int]
	h := NewHeap()

	var keys []*Object
	for i := 0; i < 64; i++ {
		k := h.InternString(string(rune('a' + i%26)) + string(rune('0'+i/26)))
		keys = append(keys, k)
		tbl.Set(k, i)
	}

	for i, k := range keys {
		if v, ok := tbl.Get(k); !ok || v != i {
			t.Errorf("key %d: Get() = %v, %v, want %d, true", i, v, ok, i)
		}
	}
}

func TestTableTombstoneDoesNotBreakProbing(t *testing.T) {
	var tbl Table[bool]
	h := NewHeap()
	a, b, c := h.InternString("a"), h.InternString("b"), h.InternString("c")

	tbl.Set(a, true)
	tbl.Set(b, true)
	tbl.Set(c, true)
	tbl.Delete(b)

	if _, ok := tbl.Get(c); !ok {
		t.Error("deleting b must not make c unreachable")
	}
}
