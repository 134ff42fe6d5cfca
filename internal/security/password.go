package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters: interactive-login strength, 32-byte derived key.
const (
	scryptN   = 32768
	scryptR   = 8
	scryptP   = 1
	keyLen    = 32
	saltBytes = 16
)

// DeriveKey runs scrypt over (password, salt) and hex-encodes the digest.
// Deterministic for fixed inputs.
func DeriveKey(password, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)

	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)

	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(key), nil
}

// GeneratePassword makes a fresh random salt and derives the hash for it.
func GeneratePassword(password string) (saltHex, hashHex string, err error) {
	salt := make([]byte, saltBytes)

	_, err = rand.Read(salt)

	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	saltHex = hex.EncodeToString(salt)

	hashHex, err = DeriveKey(password, saltHex)

	if err != nil {
		return "", "", err
	}

	return saltHex, hashHex, nil
}

// ConstantTimeEqualHex compares two hex digests without leaking where they
// first differ. Length mismatch or bad hex is simply not equal.
func ConstantTimeEqualHex(aHex, bHex string) bool {
	a, err := hex.DecodeString(aHex)

	if err != nil {
		return false
	}

	b, err := hex.DecodeString(bHex)

	if err != nil {
		return false
	}

	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare(a, b) == 1
}
