package aes

import "github.com/cryptovis/aes/internal/gf"

// The substitution tables are derived at init from the GF(2^8) inverse and
// the AES affine transform instead of being embedded as constants, so the
// tables and the field arithmetic can never disagree.
var (
	sbox    [256]byte
	invSbox [256]byte

	// rcon holds the round constants 0x01, 0x02, 0x04, ... used to break
	// the symmetry between key-schedule rounds. Fifteen entries cover the
	// longest schedule (AES-256 never consumes more than seven).
	rcon [15]byte
)

// affine applies the FIPS 197 affine transform b ^ rot(b,4) ^ rot(b,5) ^
// rot(b,6) ^ rot(b,7) ^ 0x63, expressed bit by bit.
func affine(b byte) byte {
	var r byte
	for i := uint(0); i < 8; i++ {
		bit := (b >> i) & 1
		bit ^= (b >> ((i + 4) % 8)) & 1
		bit ^= (b >> ((i + 5) % 8)) & 1
		bit ^= (b >> ((i + 6) % 8)) & 1
		bit ^= (b >> ((i + 7) % 8)) & 1
		r |= bit << i
	}
	return r ^ 0x63
}

func init() {
	for i := 0; i < 256; i++ {
		s := affine(gf.Inverse(byte(i)))
		sbox[i] = s
		invSbox[s] = byte(i)
	}

	rc := byte(1)
	for i := range rcon {
		rcon[i] = rc
		rc = gf.Double(rc)
	}
}
