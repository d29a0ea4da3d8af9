package aes

import (
	"encoding/hex"
	"strings"
)

// Mode identifies one of the supported modes of operation. The set is
// closed; the request layer maps wire strings onto it and rejects anything
// else, so mode handling below this point never sees an unknown value.
type Mode int

const (
	ModeECB Mode = iota
	ModeCBC
	ModeCTR
	ModeCFB
	ModeOFB
	ModeXTS
	ModeGCM
)

var modeNames = map[Mode]string{
	ModeECB: "ECB",
	ModeCBC: "CBC",
	ModeCTR: "CTR",
	ModeCFB: "CFB",
	ModeOFB: "OFB",
	ModeXTS: "XTS",
	ModeGCM: "GCM",
}

func (m Mode) String() string { return modeNames[m] }

// ParseMode maps a wire mode string onto the closed Mode set. The empty
// string selects ECB, matching the visualization tool's default; anything
// unrecognized fails with ErrUnsupportedMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ECB":
		return ModeECB, nil
	case "CBC":
		return ModeCBC, nil
	case "CTR":
		return ModeCTR, nil
	case "CFB":
		return ModeCFB, nil
	case "OFB":
		return ModeOFB, nil
	case "XTS":
		return ModeXTS, nil
	case "GCM":
		return ModeGCM, nil
	default:
		return 0, ErrUnsupportedMode
	}
}

// Request is the engine's boundary contract. Every byte-carrying field is a
// hex string; the JSON tags mirror the field set of the payload the
// original tool exchanged over HTTP, though no transport lives here.
type Request struct {
	Message string `json:"message"`
	Key     string `json:"key"`
	KeySize int    `json:"key_size,omitempty"` // bits: 128, 192 or 256
	Mode    string `json:"mode,omitempty"`
	IV      string `json:"iv,omitempty"`
	Nonce   string `json:"nonce,omitempty"`
	Tweak   string `json:"tweak,omitempty"`
}

// RoundTrace is one round-stage snapshot in wire form.
type RoundTrace struct {
	Round     int    `json:"round"`
	Operation string `json:"operation"`
	State     string `json:"state"`
}

// Result is the union of the contract's output shapes. ECB and CBC fill
// the trace fields (FinalCiphertext or Plaintext, Rounds, ExpandedKey,
// InitialState); the advanced modes fill Ciphertext or Plaintext plus Mode
// and, for GCM, Tag, and always leave Rounds empty.
type Result struct {
	FinalCiphertext string       `json:"final_ciphertext,omitempty"`
	Plaintext       string       `json:"plaintext,omitempty"`
	Rounds          []RoundTrace `json:"rounds,omitempty"`
	ExpandedKey     []string     `json:"expanded_key,omitempty"`
	InitialState    string       `json:"initial_state,omitempty"`

	Ciphertext string `json:"ciphertext,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

// KDFRequest asks for a key derived from a password. Salt is hex and
// optional; Password is the raw passphrase, not hex. KeyLength is in bytes
// and defaults to 32.
type KDFRequest struct {
	Password  string `json:"password"`
	Salt      string `json:"salt,omitempty"`
	KeyLength int    `json:"key_length,omitempty"`
}

// KDFResult reports the derived key, the salt in use and the fixed
// iteration count the caller must keep for re-derivation.
type KDFResult struct {
	Key        string `json:"key"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
}

// HMACRequest asks for an integrity tag over a hex-encoded message with a
// hex-encoded key.
type HMACRequest struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// HMACResult carries the tag and names the hash so callers can verify with
// any conforming implementation.
type HMACResult struct {
	HMAC      string `json:"hmac"`
	Algorithm string `json:"algorithm"`
}

// DecodeHex normalizes and decodes one hex field: whitespace and 0x
// prefixes are stripped and letters uppercased, then the result must match
// [0-9A-F]+ with even length. An empty field decodes to nil with no error
// so callers can distinguish absent from malformed.
func DecodeHex(s string) ([]byte, error) {
	s = normalizeHex(s)
	if s == "" {
		return nil, nil
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return nil, ErrInvalidHexInput
		}
	}
	if len(s)%2 != 0 {
		return nil, ErrInvalidHexInput
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHexInput
	}
	return b, nil
}

// EncodeHex renders bytes in the contract's uppercase form.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func normalizeHex(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ToUpper(s)
	return strings.ReplaceAll(s, "0X", "")
}

// cipherFor decodes and validates the key material of a request. When
// KeySize is set it must agree with the decoded key length.
func cipherFor(req Request) (*Cipher, error) {
	key, err := DecodeHex(req.Key)
	if err != nil {
		return nil, err
	}
	if req.KeySize != 0 && len(key)*8 != req.KeySize {
		return nil, ErrInvalidKeyLength
	}
	return NewCipher(key)
}

// Encrypt runs one encryption request through the engine. ECB and CBC
// return the full per-round trace and expanded key; the other modes return
// ciphertext (plus tag for GCM) and an empty trace.
func Encrypt(req Request) (*Result, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	c, err := cipherFor(req)
	if err != nil {
		return nil, err
	}
	defer c.Reset()

	msg, err := DecodeHex(req.Message)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrInvalidHexInput
	}

	switch mode {
	case ModeECB, ModeCBC:
		rec := &TraceRecorder{}
		var ct []byte
		if mode == ModeECB {
			ct = c.EncryptECB(msg, rec.Observe)
		} else {
			iv, err := DecodeHex(req.IV)
			if err != nil {
				return nil, err
			}
			if iv == nil {
				return nil, ErrMissingIV
			}
			if ct, err = c.EncryptCBC(msg, iv, rec.Observe); err != nil {
				return nil, err
			}
		}
		res := blockResult(c, rec)
		res.FinalCiphertext = EncodeHex(ct)
		res.InitialState = EncodeHex(pkcs7Pad(msg)[:BlockSize])
		return res, nil

	case ModeCTR:
		nonce, err := DecodeHex(req.Nonce)
		if err != nil {
			return nil, err
		}
		if nonce == nil {
			return nil, ErrMissingNonce
		}
		ct, err := c.EncryptCTR(msg, nonce)
		if err != nil {
			return nil, err
		}
		return &Result{Ciphertext: EncodeHex(ct), Mode: mode.String()}, nil

	case ModeCFB, ModeOFB:
		iv, err := DecodeHex(req.IV)
		if err != nil {
			return nil, err
		}
		if iv == nil {
			return nil, ErrMissingIV
		}
		var ct []byte
		if mode == ModeCFB {
			ct, err = c.EncryptCFB(msg, iv)
		} else {
			ct, err = c.EncryptOFB(msg, iv)
		}
		if err != nil {
			return nil, err
		}
		return &Result{Ciphertext: EncodeHex(ct), Mode: mode.String()}, nil

	case ModeXTS:
		tweak, err := DecodeHex(req.Tweak)
		if err != nil {
			return nil, err
		}
		if tweak == nil {
			return nil, ErrMissingTweak
		}
		ct, err := c.EncryptXTS(msg, tweak)
		if err != nil {
			return nil, err
		}
		return &Result{Ciphertext: EncodeHex(ct), Mode: mode.String()}, nil

	case ModeGCM:
		nonce, err := DecodeHex(req.Nonce)
		if err != nil {
			return nil, err
		}
		if nonce == nil {
			return nil, ErrMissingNonce
		}
		sealed := c.GCM().Seal(nil, nonce, msg, nil)
		ct, tag := sealed[:len(sealed)-GCMTagSize], sealed[len(sealed)-GCMTagSize:]
		return &Result{
			Ciphertext: EncodeHex(ct),
			Mode:       mode.String(),
			Tag:        EncodeHex(tag),
		}, nil
	}

	return nil, ErrUnsupportedMode
}

// Decrypt mirrors Encrypt. For GCM the message must be ciphertext with the
// tag either appended or supplied separately; authentication runs before
// any plaintext is returned.
func Decrypt(req Request) (*Result, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	c, err := cipherFor(req)
	if err != nil {
		return nil, err
	}
	defer c.Reset()

	msg, err := DecodeHex(req.Message)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrInvalidHexInput
	}

	switch mode {
	case ModeECB, ModeCBC:
		rec := &TraceRecorder{}
		var pt []byte
		if mode == ModeECB {
			pt, err = c.DecryptECB(msg, rec.Observe)
		} else {
			iv, derr := DecodeHex(req.IV)
			if derr != nil {
				return nil, derr
			}
			if iv == nil {
				return nil, ErrMissingIV
			}
			pt, err = c.DecryptCBC(msg, iv, rec.Observe)
		}
		if err != nil {
			return nil, err
		}
		res := blockResult(c, rec)
		res.Plaintext = EncodeHex(pt)
		res.InitialState = EncodeHex(msg[:BlockSize])
		return res, nil

	case ModeCTR:
		nonce, err := DecodeHex(req.Nonce)
		if err != nil {
			return nil, err
		}
		if nonce == nil {
			return nil, ErrMissingNonce
		}
		pt, err := c.DecryptCTR(msg, nonce)
		if err != nil {
			return nil, err
		}
		return &Result{Plaintext: EncodeHex(pt), Mode: mode.String()}, nil

	case ModeCFB, ModeOFB:
		iv, err := DecodeHex(req.IV)
		if err != nil {
			return nil, err
		}
		if iv == nil {
			return nil, ErrMissingIV
		}
		var pt []byte
		if mode == ModeCFB {
			pt, err = c.DecryptCFB(msg, iv)
		} else {
			pt, err = c.DecryptOFB(msg, iv)
		}
		if err != nil {
			return nil, err
		}
		return &Result{Plaintext: EncodeHex(pt), Mode: mode.String()}, nil

	case ModeXTS:
		tweak, err := DecodeHex(req.Tweak)
		if err != nil {
			return nil, err
		}
		if tweak == nil {
			return nil, ErrMissingTweak
		}
		pt, err := c.DecryptXTS(msg, tweak)
		if err != nil {
			return nil, err
		}
		return &Result{Plaintext: EncodeHex(pt), Mode: mode.String()}, nil

	case ModeGCM:
		nonce, err := DecodeHex(req.Nonce)
		if err != nil {
			return nil, err
		}
		if nonce == nil {
			return nil, ErrMissingNonce
		}
		pt, err := c.GCM().Open(nil, nonce, msg, nil)
		if err != nil {
			return nil, err
		}
		return &Result{Plaintext: EncodeHex(pt), Mode: mode.String()}, nil
	}

	return nil, ErrUnsupportedMode
}

// blockResult assembles the trace-bearing parts shared by the ECB and CBC
// responses.
func blockResult(c *Cipher, rec *TraceRecorder) *Result {
	rounds := make([]RoundTrace, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		rounds = append(rounds, RoundTrace{
			Round:     e.Round,
			Operation: e.Op,
			State:     EncodeHex(e.State[:]),
		})
	}

	keys := c.RoundKeys()
	expanded := make([]string, 0, len(keys))
	for _, k := range keys {
		expanded = append(expanded, EncodeHex(k))
	}

	return &Result{Rounds: rounds, ExpandedKey: expanded}
}

// Derive runs one key-derivation request: PBKDF2-HMAC-SHA256 at the fixed
// iteration count, generating a fresh salt when none is supplied.
func Derive(req KDFRequest) (*KDFResult, error) {
	salt, err := DecodeHex(req.Salt)
	if err != nil {
		return nil, err
	}
	keyLen := req.KeyLength
	if keyLen == 0 {
		keyLen = KeySize256
	}

	key, usedSalt, err := DeriveKey([]byte(req.Password), salt, keyLen)
	if err != nil {
		return nil, err
	}
	return &KDFResult{
		Key:        EncodeHex(key),
		Salt:       EncodeHex(usedSalt),
		Iterations: PBKDF2Iterations,
	}, nil
}

// MAC runs one HMAC request over hex-encoded key and message.
func MAC(req HMACRequest) (*HMACResult, error) {
	key, err := DecodeHex(req.Key)
	if err != nil {
		return nil, err
	}
	msg, err := DecodeHex(req.Message)
	if err != nil {
		return nil, err
	}

	sum := HMACSHA256(key, msg)
	return &HMACResult{HMAC: EncodeHex(sum[:]), Algorithm: "SHA256"}, nil
}
