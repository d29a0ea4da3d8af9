package aes

import (
	stdaes "crypto/aes"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	bsaes "gitlab.com/yawning/bsaes.git"
)

func mustDecodeHexString(s string) []byte {
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// FIPS 197 appendix C known answers, one per key size.
var blockVectors = []struct {
	Name       string
	Key        []byte
	Plaintext  []byte
	Ciphertext []byte
}{
	{
		Name:       "AES-128",
		Key:        mustDecodeHexString("000102030405060708090a0b0c0d0e0f"),
		Plaintext:  mustDecodeHexString("00112233445566778899aabbccddeeff"),
		Ciphertext: mustDecodeHexString("69c4e0d86a7b0430d8cdb78070b4c55a"),
	},
	{
		Name:       "AES-192",
		Key:        mustDecodeHexString("000102030405060708090a0b0c0d0e0f1011121314151617"),
		Plaintext:  mustDecodeHexString("00112233445566778899aabbccddeeff"),
		Ciphertext: mustDecodeHexString("dda97ca4864cdfe06eaf70a0ec0d7191"),
	},
	{
		Name:       "AES-256",
		Key:        mustDecodeHexString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"),
		Plaintext:  mustDecodeHexString("00112233445566778899aabbccddeeff"),
		Ciphertext: mustDecodeHexString("8ea2b7ca516745bfeafc49904b496089"),
	},
}

func TestBlockVectors(t *testing.T) {
	for _, tc := range blockVectors {
		t.Run(tc.Name, func(t *testing.T) {
			require := require.New(t)

			c, err := NewCipher(tc.Key)
			require.NoError(err, "NewCipher()")

			ct := make([]byte, BlockSize)
			c.Encrypt(ct, tc.Plaintext)
			require.Equal(tc.Ciphertext, ct, "Encrypt()")

			pt := make([]byte, BlockSize)
			c.Decrypt(pt, ct)
			require.Equal(tc.Plaintext, pt, "Decrypt()")
		})
	}
}

func TestKeyScheduleLength(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		keyLen, rounds, roundKeys int
	}{
		{16, 10, 11},
		{24, 12, 13},
		{32, 14, 15},
	} {
		key := make([]byte, tc.keyLen)
		c, err := NewCipher(key)
		require.NoError(err, "NewCipher(%d)", tc.keyLen)
		require.Equal(tc.rounds, c.Rounds(), "Rounds() for %d-byte key", tc.keyLen)
		require.Len(c.RoundKeys(), tc.roundKeys, "RoundKeys() for %d-byte key", tc.keyLen)
	}
}

func TestKeyScheduleVector(t *testing.T) {
	require := require.New(t)

	// FIPS 197 appendix A.1.
	key := mustDecodeHexString("2b7e151628aed2a6abf7158809cf4f3c")
	c, err := NewCipher(key)
	require.NoError(err, "NewCipher()")

	keys := c.RoundKeys()
	require.Equal(key, keys[0], "round key 0 is the raw key")
	require.Equal(
		mustDecodeHexString("a0fafe1788542cb123a339392a6c7605"),
		keys[1], "round key 1")
	require.Equal(
		mustDecodeHexString("d014f9a8c9ee2589e13f0cc8b6630ca6"),
		keys[10], "final round key")
}

func TestInvalidKeyLength(t *testing.T) {
	require := require.New(t)

	for _, n := range []int{0, 8, 15, 17, 31, 33, 64} {
		c, err := NewCipher(make([]byte, n))
		require.Nil(c, "NewCipher() with %d-byte key", n)
		require.Equal(ErrInvalidKeyLength, err, "NewCipher() with %d-byte key", n)
	}
}

func TestReset(t *testing.T) {
	require := require.New(t)

	c, err := NewCipher(mustDecodeHexString("000102030405060708090a0b0c0d0e0f"))
	require.NoError(err, "NewCipher()")

	c.Reset()
	for i, k := range c.RoundKeys() {
		require.Equal(make([]byte, BlockSize), k, "round key %d after Reset", i)
	}
}

// TestCrossImplementations verifies the from-scratch core against two
// independent AES implementations: the standard library and the bitsliced
// constant-time bsaes.
func TestCrossImplementations(t *testing.T) {
	require := require.New(t)

	for _, keyLen := range []int{16, 24, 32} {
		for trial := 0; trial < 32; trial++ {
			key := make([]byte, keyLen)
			pt := make([]byte, BlockSize)
			_, _ = rand.Read(key)
			_, _ = rand.Read(pt)

			c, err := NewCipher(key)
			require.NoError(err, "NewCipher()")

			got := make([]byte, BlockSize)
			c.Encrypt(got, pt)

			std, err := stdaes.NewCipher(key)
			require.NoError(err, "aes.NewCipher()")
			want := make([]byte, BlockSize)
			std.Encrypt(want, pt)
			require.Equal(want, got, "Encrypt() vs crypto/aes, key %d", keyLen)

			bs, err := bsaes.NewCipher(key)
			require.NoError(err, "bsaes.NewCipher()")
			bsWant := make([]byte, BlockSize)
			bs.Encrypt(bsWant, pt)
			require.Equal(bsWant, got, "Encrypt() vs bsaes, key %d", keyLen)

			back := make([]byte, BlockSize)
			c.Decrypt(back, got)
			require.Equal(pt, back, "Decrypt(Encrypt()) round trip")
		}
	}
}

func TestTraceCapture(t *testing.T) {
	require := require.New(t)

	c, err := NewCipher(blockVectors[0].Key)
	require.NoError(err, "NewCipher()")

	rec := &TraceRecorder{}
	ct := make([]byte, BlockSize)
	c.encryptBlock(ct, blockVectors[0].Plaintext, rec.Observe)

	// 1 initial key addition + 4 stages in each of 9 full rounds + 3
	// stages in the final round.
	require.Len(rec.Entries, 40, "entry count for AES-128")

	first := rec.Entries[0]
	require.Equal(0, first.Round)
	require.Equal("Initial AddRoundKey", first.Op)

	last := rec.Entries[len(rec.Entries)-1]
	require.Equal(c.Rounds(), last.Round)
	require.Equal("Final AddRoundKey", last.Op)
	require.Equal(blockVectors[0].Ciphertext, last.State[:], "final trace state is the ciphertext")

	// The untraced path produces the same ciphertext.
	require.Equal(blockVectors[0].Ciphertext, ct)

	// Decryption traces mirror in length.
	rec = &TraceRecorder{}
	pt := make([]byte, BlockSize)
	c.decryptBlock(pt, ct, rec.Observe)
	require.Len(rec.Entries, 40, "entry count for inverse cipher")
	require.Equal(blockVectors[0].Plaintext, rec.Entries[len(rec.Entries)-1].State[:])
}

func BenchmarkEncryptBlock(b *testing.B) {
	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		_, _ = rand.Read(key)
		c, _ := NewCipher(key)

		blk := make([]byte, BlockSize)
		b.Run(map[int]string{16: "AES-128", 24: "AES-192", 32: "AES-256"}[keyLen], func(b *testing.B) {
			b.SetBytes(BlockSize)
			for i := 0; i < b.N; i++ {
				c.Encrypt(blk, blk)
			}
		})
	}
}
