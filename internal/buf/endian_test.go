package buf

import "testing"

func TestU32LE(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}
	if U32LE([]byte{0xAA}) != 0 {
		t.Fatalf("U32LE short should be 0")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
}

func TestU32At(t *testing.T) {
	data := []byte{0, 0, 0, 0, 0x01, 0x23, 0x45, 0x67}
	got, ok := U32At(data, 4)
	if !ok || got != 0x67452301 {
		t.Fatalf("U32At = 0x%x,%v want 0x67452301,true", got, ok)
	}
	if _, ok := U32At(data, 6); ok {
		t.Fatalf("U32At should fail when out of bounds")
	}
}
