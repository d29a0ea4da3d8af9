package aes

// EncryptOFB encrypts src in output feedback mode: the register is
// repeatedly encrypted to form the keystream and the keystream itself is
// fed back, so the stream depends only on key and IV. The final block may
// be partial.
func (c *Cipher) EncryptOFB(src, iv []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVLength
	}

	out := make([]byte, len(src))
	var reg [BlockSize]byte
	copy(reg[:], iv)

	for i := 0; i < len(src); i += BlockSize {
		c.Encrypt(reg[:], reg[:])
		xorBytes(out[i:], src[i:], reg[:])
	}
	return out, nil
}

// DecryptOFB is EncryptOFB; OFB is an involution.
func (c *Cipher) DecryptOFB(src, iv []byte) ([]byte, error) {
	return c.EncryptOFB(src, iv)
}
