package security_test

import (
	"testing"

	"github.com/geocoder89/taskhub/internal/security"
)

func TestDeriveKey_DeterministicForFixedInputs(t *testing.T) {
	salt, hash, err := security.GeneratePassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	again, err := security.DeriveKey("correct horse battery staple", salt)

	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if again != hash {
		t.Fatalf("same password and salt derived different hashes: %q vs %q", again, hash)
	}
}

func TestDeriveKey_DifferentPasswordDifferentHash(t *testing.T) {
	salt, hash, err := security.GeneratePassword("password123")

	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	other, err := security.DeriveKey("password124", salt)

	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if other == hash {
		t.Fatalf("different passwords derived identical hashes")
	}
}

func TestGeneratePassword_FreshSaltEachCall(t *testing.T) {
	saltA, hashA, err := security.GeneratePassword("password123")

	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	saltB, hashB, err := security.GeneratePassword("password123")

	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	if saltA == saltB {
		t.Fatalf("two calls produced the same salt")
	}

	if hashA == hashB {
		t.Fatalf("same password with fresh salts produced the same hash")
	}
}

func TestDeriveKey_RejectsBadSalt(t *testing.T) {
	_, err := security.DeriveKey("password123", "not-hex")

	if err == nil {
		t.Fatalf("expected error for malformed salt")
	}
}

func TestConstantTimeEqualHex(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal", "deadbeef", "deadbeef", true},
		{"unequal", "deadbeef", "deadbeee", false},
		{"length mismatch", "deadbeef", "dead", false},
		{"bad hex", "zzzz", "zzzz", false},
		{"empty both", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := security.ConstantTimeEqualHex(tc.a, tc.b)

			if got != tc.want {
				t.Fatalf("ConstantTimeEqualHex(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
