package aes

// pkcs7Pad returns data extended to a block boundary with 1..BlockSize
// padding bytes, each holding the pad length. A block-aligned input gains a
// full block of padding so unpadding is always unambiguous.
func pkcs7Pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad validates and strips the padding trailer, failing with
// ErrBadPadding when it is inconsistent.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > BlockSize {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-n], nil
}
