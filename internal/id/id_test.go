package id

import "testing"

func TestUUID(t *testing.T) {
	a := UUID()
	b := UUID()
	if len(a) != 36 {
		t.Errorf("UUID length = %d, want 36", len(a))
	}
	if a == b {
		t.Error("two UUIDs should not collide")
	}
}

func TestShort(t *testing.T) {
	a := Short()
	if len(a) != 16 {
		t.Errorf("Short length = %d, want 16", len(a))
	}
	if a == Short() {
		t.Error("two short IDs should not collide")
	}
}
