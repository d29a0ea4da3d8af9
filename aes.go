// Package aes implements the AES block cipher (FIPS 197) from first
// principles, together with the ECB, CBC, CTR, CFB, OFB, XTS and GCM modes
// of operation, PBKDF2-HMAC-SHA256 key derivation and a standalone
// HMAC-SHA256 primitive.
//
// The package is built for instrumentation as much as for encryption: the
// block core can report the state after every round stage through an
// injectable TraceFunc observer, which the hex request layer uses to expose
// per-round traces for the ECB and CBC modes. A nil observer costs nothing.
//
// Every operation is synchronous and stateless across calls. A Cipher holds
// only the expanded key schedule, which is read-only after construction, so
// one Cipher may encrypt on any number of goroutines concurrently. Callers
// remain responsible for never reusing a counter or IV under the same key
// in the streaming modes; the engine rejects missing chaining values but
// cannot police reuse.
package aes

import (
	"crypto/cipher"
	"crypto/rand"
	"io"
)

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// KeySize128, KeySize192 and KeySize256 are the three permitted key
	// lengths in bytes.
	KeySize128 = 16
	KeySize192 = 24
	KeySize256 = 32
)

// Cipher is an expanded AES key schedule for one of the three key sizes.
// It carries no per-message state.
type Cipher struct {
	nr int
	rk [][BlockSize]byte // one round key per round, Nr+1 total
}

// NewCipher expands key into a fresh schedule. The key must be exactly 16,
// 24 or 32 bytes; anything else fails with ErrInvalidKeyLength before any
// arithmetic touches the material.
func NewCipher(key []byte) (*Cipher, error) {
	var nk int
	switch len(key) {
	case KeySize128:
		nk = 4
	case KeySize192:
		nk = 6
	case KeySize256:
		nk = 8
	default:
		return nil, ErrInvalidKeyLength
	}

	nr := nk + 6
	return &Cipher{nr: nr, rk: expandKey(key, nk, nr)}, nil
}

// expandKey produces the 4*(nr+1) schedule words and regroups them into
// per-round 16-byte keys in block byte order.
func expandKey(key []byte, nk, nr int) [][BlockSize]byte {
	words := make([][4]byte, 4*(nr+1))
	for i := 0; i < nk; i++ {
		copy(words[i][:], key[4*i:4*i+4])
	}

	for i := nk; i < len(words); i++ {
		t := words[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t))
			t[0] ^= rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			// The extra SubWord-only step unique to AES-256.
			t = subWord(t)
		}
		for j := 0; j < 4; j++ {
			words[i][j] = words[i-nk][j] ^ t[j]
		}
	}

	rk := make([][BlockSize]byte, nr+1)
	for round := range rk {
		for c := 0; c < 4; c++ {
			copy(rk[round][4*c:4*c+4], words[4*round+c][:])
		}
	}
	return rk
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	for i, b := range w {
		w[i] = sbox[b]
	}
	return w
}

// Rounds returns Nr, the number of cipher rounds for the key size (10, 12
// or 14).
func (c *Cipher) Rounds() int { return c.nr }

// RoundKeys returns copies of the Nr+1 round keys in round order. The
// schedule itself is never exposed.
func (c *Cipher) RoundKeys() [][]byte {
	out := make([][]byte, len(c.rk))
	for i := range c.rk {
		k := make([]byte, BlockSize)
		copy(k, c.rk[i][:])
		out[i] = k
	}
	return out
}

// BlockSize returns the AES block size. Part of cipher.Block.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the 16-byte block src into dst without tracing. dst and
// src may overlap entirely. Part of cipher.Block.
func (c *Cipher) Encrypt(dst, src []byte) { c.encryptBlock(dst, src, nil) }

// Decrypt decrypts the 16-byte block src into dst without tracing. Part of
// cipher.Block.
func (c *Cipher) Decrypt(dst, src []byte) { c.decryptBlock(dst, src, nil) }

// Reset clears the expanded schedule so no key material lingers in memory.
// The Cipher must not be used afterwards.
func (c *Cipher) Reset() {
	for i := range c.rk {
		for j := range c.rk[i] {
			c.rk[i][j] = 0
		}
	}
}

var _ cipher.Block = (*Cipher)(nil)

// GenerateIV returns a fresh random block-sized IV.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// xorBytes sets dst[i] = a[i] ^ b[i] for i < min(len(a), len(b)) and
// returns the number of bytes written.
func xorBytes(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}

// sliceForAppend extends in by n bytes and returns both the full slice and
// the appended tail, reusing capacity when possible.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
