package aes

import "github.com/cryptovis/aes/internal/gf"

// state is one block as the 4x4 byte matrix of FIPS 197, column-major:
// s[r][c] = block[4*c+r]. It lives on the stack for the duration of a
// single block operation.
type state [4][4]byte

// Stage labels reported to trace observers. The names match what the
// visualization layer displays.
const (
	opInitialAddRoundKey = "Initial AddRoundKey"
	opSubBytes           = "SubBytes"
	opShiftRows          = "ShiftRows"
	opMixColumns         = "MixColumns"
	opAddRoundKey        = "AddRoundKey"
	opFinalAddRoundKey   = "Final AddRoundKey"
	opInvSubBytes        = "InvSubBytes"
	opInvShiftRows       = "InvShiftRows"
	opInvMixColumns      = "InvMixColumns"
)

func loadState(block []byte) state {
	var s state
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = block[4*c+r]
		}
	}
	return s
}

func (s *state) store(block []byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			block[4*c+r] = s[r][c]
		}
	}
}

// emit snapshots the state for a trace observer. The nil check keeps the
// untraced path free of any allocation.
func (s *state) emit(trace TraceFunc, round int, op string) {
	if trace == nil {
		return
	}
	var snap [BlockSize]byte
	s.store(snap[:])
	trace(TraceEntry{Round: round, Op: op, State: snap})
}

func subBytes(s *state) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = sbox[s[r][c]]
		}
	}
}

func invSubBytes(s *state) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = invSbox[s[r][c]]
		}
	}
}

// shiftRows rotates row r left by r positions; row 0 is untouched.
func shiftRows(s *state) {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][c] = row[(c+r)%4]
		}
	}
}

func invShiftRows(s *state) {
	for r := 1; r < 4; r++ {
		row := s[r]
		for c := 0; c < 4; c++ {
			s[r][(c+r)%4] = row[c]
		}
	}
}

// mixColumns multiplies each column by the fixed matrix with rows
// {02 03 01 01} rotating right.
func mixColumns(s *state) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = gf.Mul(a0, 0x02) ^ gf.Mul(a1, 0x03) ^ a2 ^ a3
		s[1][c] = a0 ^ gf.Mul(a1, 0x02) ^ gf.Mul(a2, 0x03) ^ a3
		s[2][c] = a0 ^ a1 ^ gf.Mul(a2, 0x02) ^ gf.Mul(a3, 0x03)
		s[3][c] = gf.Mul(a0, 0x03) ^ a1 ^ a2 ^ gf.Mul(a3, 0x02)
	}
}

// invMixColumns multiplies each column by the inverse matrix with rows
// {0E 0B 0D 09} rotating right.
func invMixColumns(s *state) {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = gf.Mul(a0, 0x0e) ^ gf.Mul(a1, 0x0b) ^ gf.Mul(a2, 0x0d) ^ gf.Mul(a3, 0x09)
		s[1][c] = gf.Mul(a0, 0x09) ^ gf.Mul(a1, 0x0e) ^ gf.Mul(a2, 0x0b) ^ gf.Mul(a3, 0x0d)
		s[2][c] = gf.Mul(a0, 0x0d) ^ gf.Mul(a1, 0x09) ^ gf.Mul(a2, 0x0e) ^ gf.Mul(a3, 0x0b)
		s[3][c] = gf.Mul(a0, 0x0b) ^ gf.Mul(a1, 0x0d) ^ gf.Mul(a2, 0x09) ^ gf.Mul(a3, 0x0e)
	}
}

// addRoundKey XORs the round key into the state. Self-inverse.
func addRoundKey(s *state, rk *[BlockSize]byte) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] ^= rk[4*c+r]
		}
	}
}

// encryptBlock runs the forward cipher: AddRoundKey(0), Nr-1 full rounds,
// then a final round without MixColumns. Each stage reports to trace when
// one is supplied.
func (c *Cipher) encryptBlock(dst, src []byte, trace TraceFunc) {
	_ = src[:BlockSize]
	_ = dst[:BlockSize]

	s := loadState(src)
	addRoundKey(&s, &c.rk[0])
	s.emit(trace, 0, opInitialAddRoundKey)

	for round := 1; round < c.nr; round++ {
		subBytes(&s)
		s.emit(trace, round, opSubBytes)
		shiftRows(&s)
		s.emit(trace, round, opShiftRows)
		mixColumns(&s)
		s.emit(trace, round, opMixColumns)
		addRoundKey(&s, &c.rk[round])
		s.emit(trace, round, opAddRoundKey)
	}

	subBytes(&s)
	s.emit(trace, c.nr, opSubBytes)
	shiftRows(&s)
	s.emit(trace, c.nr, opShiftRows)
	addRoundKey(&s, &c.rk[c.nr])
	s.emit(trace, c.nr, opFinalAddRoundKey)

	s.store(dst)
}

// decryptBlock runs the straight inverse cipher, applying the inverse
// stages in reverse order with InvMixColumns only in the non-final rounds.
func (c *Cipher) decryptBlock(dst, src []byte, trace TraceFunc) {
	_ = src[:BlockSize]
	_ = dst[:BlockSize]

	s := loadState(src)
	addRoundKey(&s, &c.rk[c.nr])
	s.emit(trace, c.nr, opInitialAddRoundKey)

	for round := c.nr - 1; round > 0; round-- {
		invShiftRows(&s)
		s.emit(trace, round, opInvShiftRows)
		invSubBytes(&s)
		s.emit(trace, round, opInvSubBytes)
		addRoundKey(&s, &c.rk[round])
		s.emit(trace, round, opAddRoundKey)
		invMixColumns(&s)
		s.emit(trace, round, opInvMixColumns)
	}

	invShiftRows(&s)
	s.emit(trace, 0, opInvShiftRows)
	invSubBytes(&s)
	s.emit(trace, 0, opInvSubBytes)
	addRoundKey(&s, &c.rk[0])
	s.emit(trace, 0, opFinalAddRoundKey)

	s.store(dst)
}
