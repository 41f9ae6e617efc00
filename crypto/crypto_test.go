package crypto

import (
	"bytes"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	k1 := DeriveKey("secret", "auth")
	k2 := DeriveKey("secret", "auth")
	k3 := DeriveKey("secret", "encryption")

	if len(k1) != 32 {
		t.Errorf("Expected 32-byte key, got %d bytes", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Error("DeriveKey is not deterministic for identical inputs")
	}
	if bytes.Equal(k1, k3) {
		t.Error("Different purposes produced identical keys")
	}
	if bytes.Equal(DeriveKey("other", "auth"), k1) {
		t.Error("Different secrets produced identical keys")
	}
}
