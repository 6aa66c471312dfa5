package utils

import "testing"

func TestHashIsStable(t *testing.T) {
	a := Hash("type=video&page=2&limit=12")
	b := Hash("type=video&page=2&limit=12")
	if a != b {
		t.Fatalf("Hash is not deterministic: %s != %s", a, b)
	}
	if a == Hash("type=video&page=3&limit=12") {
		t.Errorf("Expected different fingerprints for different inputs")
	}
	if a == "" {
		t.Errorf("Expected non-empty fingerprint")
	}
}
