package aes

// EncryptCFB encrypts src in full-block cipher feedback mode: each
// keystream block is the encryption of the feedback register, which is
// reloaded with the ciphertext just produced. The final block may be
// partial. CFB never runs the block cipher's decrypt direction.
func (c *Cipher) EncryptCFB(src, iv []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVLength
	}

	out := make([]byte, len(src))
	var reg, ks [BlockSize]byte
	copy(reg[:], iv)

	for i := 0; i < len(src); i += BlockSize {
		c.Encrypt(ks[:], reg[:])
		n := xorBytes(out[i:], src[i:], ks[:])
		if n == BlockSize {
			copy(reg[:], out[i:i+BlockSize])
		}
	}
	return out, nil
}

// DecryptCFB reverses EncryptCFB. The register is fed the incoming
// ciphertext instead of the output.
func (c *Cipher) DecryptCFB(src, iv []byte) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVLength
	}

	out := make([]byte, len(src))
	var reg, ks [BlockSize]byte
	copy(reg[:], iv)

	for i := 0; i < len(src); i += BlockSize {
		c.Encrypt(ks[:], reg[:])
		n := xorBytes(out[i:], src[i:], ks[:])
		if n == BlockSize {
			copy(reg[:], src[i:i+BlockSize])
		}
	}
	return out, nil
}
