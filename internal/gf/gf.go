// Package gf implements byte arithmetic over GF(2^8) reduced by the AES
// polynomial x^8 + x^4 + x^3 + x + 1.
package gf

// poly is the low eight bits of the reduction polynomial; the x^8 term is
// implied by the reduction step.
const poly = 0x1b

// Mul multiplies a and b in GF(2^8) using carry-less shift-and-reduce
// (peasant multiplication). Total over all byte values.
func Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= poly
		}
		b >>= 1
	}
	return p
}

// Double returns 2*a, the xtime operation of FIPS 197.
func Double(a byte) byte {
	hi := a & 0x80
	a <<= 1
	if hi != 0 {
		a ^= poly
	}
	return a
}

// Inverse returns the multiplicative inverse of a, computed as a^254 by
// square-and-multiply so no lookup table is involved. Inverse(0) = 0 by
// convention; the S-box construction relies on that.
func Inverse(a byte) byte {
	// a^254 = a^-1 for a != 0. 254 = 0b11111110: six square-then-multiply
	// steps build a^127, a final squaring doubles it to a^254.
	inv := a
	for i := 0; i < 6; i++ {
		inv = Mul(inv, inv)
		inv = Mul(inv, a)
	}
	return Mul(inv, inv)
}
