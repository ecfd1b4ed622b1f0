package hasher_test

import (
	"testing"

	"github.com/pychain/forge/adapters/hasher"
)

func TestBcrypt(t *testing.T) {
	h := hasher.NewBcrypt(4) // min cost keeps the test fast

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Compare(hash, "secret") {
		t.Error("hash must match its own plaintext")
	}
	if h.Compare(hash, "wrong") {
		t.Error("hash must not match a different plaintext")
	}
}

func TestBcrypt_CostFallback(t *testing.T) {
	// Out-of-range cost falls back to the default instead of failing.
	h := hasher.NewBcrypt(99)

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Compare(hash, "secret") {
		t.Error("fallback hasher must round-trip")
	}
}

func TestFake(t *testing.T) {
	h := hasher.Fake{}

	hash, _ := h.Hash("secret")
	if !h.Compare(hash, "secret") || h.Compare(hash, "wrong") {
		t.Error("fake hasher must do plain equality")
	}
}
