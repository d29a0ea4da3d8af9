package aes

// EncryptXTS encrypts data with the narrow-block XEX construction of IEEE
// 1619 using a single key: the 16-byte tweak is encrypted once under the
// data key (K1 = K2), then doubled in GF(2^128) per block index, and the
// resulting mask is applied both before and after each block cipher call.
// Data must be a multiple of the block size; ciphertext stealing is not
// implemented.
func (c *Cipher) EncryptXTS(plaintext, tweak []byte) ([]byte, error) {
	return c.xex(plaintext, tweak, (*Cipher).Encrypt)
}

// DecryptXTS reverses EncryptXTS under the same tweak.
func (c *Cipher) DecryptXTS(ciphertext, tweak []byte) ([]byte, error) {
	return c.xex(ciphertext, tweak, (*Cipher).Decrypt)
}

func (c *Cipher) xex(src, tweak []byte, blockFn func(*Cipher, []byte, []byte)) ([]byte, error) {
	if len(tweak) != BlockSize {
		return nil, ErrInvalidTweakLength
	}
	if len(src)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}

	var t [BlockSize]byte
	c.Encrypt(t[:], tweak)

	out := make([]byte, len(src))
	for i := 0; i < len(src); i += BlockSize {
		blk := out[i : i+BlockSize]
		xorBytes(blk, src[i:i+BlockSize], t[:])
		blockFn(c, blk, blk)
		xorBytes(blk, blk, t[:])
		mul2(&t)
	}
	return out, nil
}

// mul2 doubles the tweak in GF(2^128) with the x^128 + x^7 + x^2 + x + 1
// polynomial, little-endian bit order per IEEE 1619. Dropping the carry bit
// subtracts the x^128 term; the remaining terms fold in as 0x87.
func mul2(tweak *[BlockSize]byte) {
	var carryIn byte
	for i := range tweak {
		carryOut := tweak[i] >> 7
		tweak[i] = tweak[i]<<1 | carryIn
		carryIn = carryOut
	}
	if carryIn != 0 {
		tweak[0] ^= 0x87
	}
}
