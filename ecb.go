package aes

// EncryptECB encrypts plaintext block by block after PKCS#7 padding. Each
// block is processed independently, so identical plaintext blocks yield
// identical ciphertext blocks; that leakage is inherent to ECB and is the
// caller's concern, not an error. trace may be nil.
func (c *Cipher) EncryptECB(plaintext []byte, trace TraceFunc) []byte {
	padded := pkcs7Pad(plaintext)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += BlockSize {
		c.encryptBlock(out[i:i+BlockSize], padded[i:i+BlockSize], trace)
	}
	return out
}

// DecryptECB decrypts ciphertext block by block and strips the PKCS#7
// trailer. The input must be a non-empty multiple of the block size.
func (c *Cipher) DecryptECB(ciphertext []byte, trace TraceFunc) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}
	out := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += BlockSize {
		c.decryptBlock(out[i:i+BlockSize], ciphertext[i:i+BlockSize], trace)
	}
	return pkcs7Unpad(out)
}
