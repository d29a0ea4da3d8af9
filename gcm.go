package aes

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
)

const (
	// GCMNonceSize is the recommended GCM nonce size in bytes. Other
	// non-zero lengths are accepted and routed through the GHASH-based
	// counter derivation of SP 800-38D.
	GCMNonceSize = 12

	// GCMTagSize is the GCM authentication tag size in bytes.
	GCMTagSize = 16
)

// gcm binds a Cipher to the Galois/Counter mode. The hash subkey
// H = E_K(0^128) is derived once at construction.
type gcm struct {
	c *Cipher
	h [BlockSize]byte
}

// GCM returns the cipher wrapped in Galois/Counter mode as a cipher.AEAD.
// The returned AEAD shares the Cipher's schedule and stays valid until the
// Cipher is Reset.
func (c *Cipher) GCM() cipher.AEAD {
	g := &gcm{c: c}
	c.Encrypt(g.h[:], g.h[:])
	return g
}

// NonceSize returns the recommended nonce size in bytes.
func (g *gcm) NonceSize() int { return GCMNonceSize }

// Overhead returns the tag size appended by Seal.
func (g *gcm) Overhead() int { return GCMTagSize }

// Seal encrypts and authenticates plaintext, authenticates the additional
// data and appends ciphertext plus the 16-byte tag to dst, returning the
// updated slice. The nonce must be non-empty and unique for all time under
// this key.
func (g *gcm) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) == 0 {
		panic(ErrMissingNonce)
	}

	ret, out := sliceForAppend(dst, len(plaintext)+GCMTagSize)

	j0 := g.deriveCounter(nonce)
	ctr := j0
	incr32(&ctr)
	g.ctrXOR(out, plaintext, ctr)

	tag := g.computeTag(&j0, out[:len(plaintext)], additionalData)
	copy(out[len(plaintext):], tag[:])
	return ret
}

// Open authenticates and decrypts ciphertext (which carries the tag as its
// final 16 bytes). The tag is recomputed over the additional data and the
// ciphertext and compared in constant time before any plaintext is
// produced, so a forgery never observes partial decryptions.
func (g *gcm) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) == 0 {
		return nil, ErrMissingNonce
	}
	if len(ciphertext) < GCMTagSize {
		return nil, ErrAuthentication
	}

	ctLen := len(ciphertext) - GCMTagSize
	ct, tag := ciphertext[:ctLen], ciphertext[ctLen:]

	j0 := g.deriveCounter(nonce)
	expected := g.computeTag(&j0, ct, additionalData)
	if subtle.ConstantTimeCompare(tag, expected[:]) != 1 {
		return nil, ErrAuthentication
	}

	ret, out := sliceForAppend(dst, ctLen)
	ctr := j0
	incr32(&ctr)
	g.ctrXOR(out, ct, ctr)
	return ret, nil
}

var _ cipher.AEAD = (*gcm)(nil)

// deriveCounter computes the pre-counter block J0: a 96-bit nonce is used
// directly with the counter field set to one, anything else is folded
// through GHASH together with its bit length.
func (g *gcm) deriveCounter(nonce []byte) [BlockSize]byte {
	var j0 [BlockSize]byte
	if len(nonce) == GCMNonceSize {
		copy(j0[:], nonce)
		j0[BlockSize-1] = 1
		return j0
	}

	g.ghashUpdate(&j0, nonce)
	var lens [BlockSize]byte
	binary.BigEndian.PutUint64(lens[8:], uint64(len(nonce))*8)
	g.ghashBlock(&j0, &lens)
	return j0
}

// ctrXOR generates keystream from ctr and XORs it over src into dst,
// incrementing only the low 32 counter bits per block as GCM requires.
func (g *gcm) ctrXOR(dst, src []byte, ctr [BlockSize]byte) {
	var ks [BlockSize]byte
	for i := 0; i < len(src); i += BlockSize {
		g.c.Encrypt(ks[:], ctr[:])
		xorBytes(dst[i:], src[i:], ks[:])
		incr32(&ctr)
	}
}

// incr32 is the inc32 function of SP 800-38D: the rightmost 32 bits of the
// counter block increment modulo 2^32.
func incr32(ctr *[BlockSize]byte) {
	n := binary.BigEndian.Uint32(ctr[12:])
	binary.BigEndian.PutUint32(ctr[12:], n+1)
}

// computeTag is GHASH over the additional data and ciphertext, each
// zero-padded to the block boundary, followed by the 64-bit bit lengths,
// finally masked with the encrypted pre-counter block.
func (g *gcm) computeTag(j0 *[BlockSize]byte, ciphertext, additionalData []byte) [GCMTagSize]byte {
	var s [BlockSize]byte
	g.ghashUpdate(&s, additionalData)
	g.ghashUpdate(&s, ciphertext)

	var lens [BlockSize]byte
	binary.BigEndian.PutUint64(lens[:8], uint64(len(additionalData))*8)
	binary.BigEndian.PutUint64(lens[8:], uint64(len(ciphertext))*8)
	g.ghashBlock(&s, &lens)

	var ek [BlockSize]byte
	g.c.Encrypt(ek[:], j0[:])

	var tag [GCMTagSize]byte
	xorBytes(tag[:], s[:], ek[:])
	return tag
}

// ghashUpdate folds data into the accumulator block by block, zero-padding
// the final partial block.
func (g *gcm) ghashUpdate(acc *[BlockSize]byte, data []byte) {
	for len(data) > 0 {
		var blk [BlockSize]byte
		n := copy(blk[:], data)
		g.ghashBlock(acc, &blk)
		data = data[n:]
	}
}

// ghashBlock sets acc = (acc XOR blk) * H.
func (g *gcm) ghashBlock(acc, blk *[BlockSize]byte) {
	for i := range acc {
		acc[i] ^= blk[i]
	}
	gmul128(acc, &g.h)
}

// gmul128 multiplies x by y in GF(2^128) with the GCM polynomial
// x^128 + x^7 + x^2 + x + 1, MSB-first bit order: the reduction constant
// 0xE1 enters at the top byte as the multiplicand shifts right.
func gmul128(x, y *[BlockSize]byte) {
	var z [BlockSize]byte
	v := *y
	for i := 0; i < BlockSize; i++ {
		for bit := 7; bit >= 0; bit-- {
			if x[i]&(1<<uint(bit)) != 0 {
				for k := range z {
					z[k] ^= v[k]
				}
			}

			carry := v[BlockSize-1] & 1
			for k := BlockSize - 1; k > 0; k-- {
				v[k] = v[k]>>1 | v[k-1]<<7
			}
			v[0] >>= 1
			if carry != 0 {
				v[0] ^= 0xe1
			}
		}
	}
	*x = z
}
