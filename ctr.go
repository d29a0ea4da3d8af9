package aes

// EncryptCTR applies AES in counter mode. The nonce seeds the 128-bit
// counter block: a 16-byte nonce is the initial counter verbatim, shorter
// nonces occupy its low-order bytes with the rest zero. The counter
// increments big-endian across the whole block per keystream block, and
// input of any length is accepted.
//
// A (key, nonce) pair must never be reused across messages; the keystream
// would repeat. The engine cannot enforce that, only document it.
func (c *Cipher) EncryptCTR(src, nonce []byte) ([]byte, error) {
	if len(nonce) == 0 {
		return nil, ErrMissingNonce
	}
	if len(nonce) > BlockSize {
		return nil, ErrInvalidNonceLength
	}

	var ctr [BlockSize]byte
	copy(ctr[BlockSize-len(nonce):], nonce)

	out := make([]byte, len(src))
	var ks [BlockSize]byte
	for i := 0; i < len(src); i += BlockSize {
		c.Encrypt(ks[:], ctr[:])
		xorBytes(out[i:], src[i:], ks[:])
		incrCounter(&ctr)
	}
	return out, nil
}

// DecryptCTR is EncryptCTR; the keystream XOR is its own inverse.
func (c *Cipher) DecryptCTR(src, nonce []byte) ([]byte, error) {
	return c.EncryptCTR(src, nonce)
}

// incrCounter increments the counter block as one big-endian integer with
// silent wraparound.
func incrCounter(ctr *[BlockSize]byte) {
	for i := BlockSize - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}
