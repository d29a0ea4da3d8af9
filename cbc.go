package aes

// EncryptCBC encrypts plaintext in cipher block chaining mode: each padded
// plaintext block is XORed with the previous ciphertext block before
// encryption, seeded by the one-block IV. trace may be nil.
func (c *Cipher) EncryptCBC(plaintext, iv []byte, trace TraceFunc) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVLength
	}

	padded := pkcs7Pad(plaintext)
	out := make([]byte, len(padded))

	prev := iv
	var chained [BlockSize]byte
	for i := 0; i < len(padded); i += BlockSize {
		xorBytes(chained[:], padded[i:i+BlockSize], prev)
		c.encryptBlock(out[i:i+BlockSize], chained[:], trace)
		prev = out[i : i+BlockSize]
	}
	return out, nil
}

// DecryptCBC reverses EncryptCBC, validating and stripping the PKCS#7
// trailer. The ciphertext must be a non-empty multiple of the block size
// and the IV must match the one used to encrypt.
func (c *Cipher) DecryptCBC(ciphertext, iv []byte, trace TraceFunc) ([]byte, error) {
	if len(iv) != BlockSize {
		return nil, ErrInvalidIVLength
	}
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}

	out := make([]byte, len(ciphertext))
	prev := iv
	for i := 0; i < len(ciphertext); i += BlockSize {
		c.decryptBlock(out[i:i+BlockSize], ciphertext[i:i+BlockSize], trace)
		xorBytes(out[i:i+BlockSize], out[i:i+BlockSize], prev)
		prev = ciphertext[i : i+BlockSize]
	}
	return pkcs7Unpad(out)
}
