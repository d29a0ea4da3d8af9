package aes

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
)

const (
	// PBKDF2Iterations is the fixed iteration count used by DeriveKey.
	PBKDF2Iterations = 100000

	// SaltSize is the length of generated salts in bytes.
	SaltSize = 16

	// sha256BlockSize is the SHA-256 compression block size, which sets
	// the HMAC pad width.
	sha256BlockSize = 64
)

// HMACSHA256 computes the two-pass HMAC construction of RFC 2104 over
// SHA-256: H(K^opad || H(K^ipad || message)), with keys longer than one
// hash block first reduced by hashing.
func HMACSHA256(key, message []byte) [sha256.Size]byte {
	var k [sha256BlockSize]byte
	if len(key) > sha256BlockSize {
		sum := sha256.Sum256(key)
		copy(k[:], sum[:])
	} else {
		copy(k[:], key)
	}

	var ipad, opad [sha256BlockSize]byte
	for i := range k {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5c
	}

	inner := sha256.New()
	inner.Write(ipad[:])
	inner.Write(message)

	outer := sha256.New()
	outer.Write(opad[:])
	outer.Write(inner.Sum(nil))

	var out [sha256.Size]byte
	copy(out[:], outer.Sum(nil))
	return out
}

// PBKDF2SHA256 derives keyLen bytes from password and salt with the PBKDF2
// construction of RFC 8018 over HMAC-SHA-256.
func PBKDF2SHA256(password, salt []byte, iterations, keyLen int) []byte {
	numBlocks := (keyLen + sha256.Size - 1) / sha256.Size
	dk := make([]byte, 0, numBlocks*sha256.Size)

	seed := make([]byte, len(salt)+4)
	copy(seed, salt)
	for block := 1; block <= numBlocks; block++ {
		binary.BigEndian.PutUint32(seed[len(salt):], uint32(block))
		u := HMACSHA256(password, seed)
		t := u
		for n := 1; n < iterations; n++ {
			u = HMACSHA256(password, u[:])
			for i := range t {
				t[i] ^= u[i]
			}
		}
		dk = append(dk, t[:]...)
	}
	return dk[:keyLen]
}

// DeriveKey is the engine's key-derivation entry point: PBKDF2-HMAC-SHA256
// with the fixed iteration count. An empty salt is replaced by SaltSize
// random bytes; the salt actually used is returned alongside the key so the
// caller can persist it for later re-derivation (or reuse it as an IV where
// its protocol calls for that).
func DeriveKey(password, salt []byte, keyLen int) (key, usedSalt []byte, err error) {
	if len(salt) == 0 {
		salt = make([]byte, SaltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, err
		}
	}
	return PBKDF2SHA256(password, salt, PBKDF2Iterations, keyLen), salt, nil
}
