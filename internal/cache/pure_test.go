package cache

import "testing"

func TestTokenDigest_Deterministic(t *testing.T) {
	t.Parallel()

	token := "eyJhbGciOiJIUzI1NiJ9.payload.sig"

	if TokenDigest(token) != TokenDigest(token) {
		t.Error("same token should produce same digest")
	}
}

func TestTokenDigest_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"typical jwt", "aaa.bbb.ccc"},
		{"short", "x"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// First 16 bytes of SHA256, hex encoded.
			if got := TokenDigest(tt.token); len(got) != 32 {
				t.Errorf("TokenDigest(%q) length = %d, want 32", tt.token, len(got))
			}
		})
	}
}

func TestTokenDigest_Distinct(t *testing.T) {
	t.Parallel()

	if TokenDigest("token-a") == TokenDigest("token-b") {
		t.Error("different tokens should produce different digests")
	}
}
