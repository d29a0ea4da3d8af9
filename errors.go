package aes

import "errors"

var (
	// ErrInvalidKeyLength is returned when a key is not 16, 24 or 32
	// bytes. Keys are never truncated or padded to fit.
	ErrInvalidKeyLength = errors.New("aes: invalid key length")

	// ErrInvalidHexInput is returned by the request layer when a hex
	// field contains non-hex characters or has odd length after
	// normalization.
	ErrInvalidHexInput = errors.New("aes: input is not valid hexadecimal")

	// ErrMissingIV is returned when a chaining mode (CBC, CFB, OFB)
	// is requested without an IV.
	ErrMissingIV = errors.New("aes: mode requires an IV")

	// ErrMissingNonce is returned when a counter mode (CTR, GCM) is
	// requested without a nonce.
	ErrMissingNonce = errors.New("aes: mode requires a nonce")

	// ErrMissingTweak is returned when XTS is requested without a tweak.
	ErrMissingTweak = errors.New("aes: mode requires a tweak")

	// ErrInvalidIVLength is returned when a supplied IV is not exactly
	// one block.
	ErrInvalidIVLength = errors.New("aes: IV length must equal the block size")

	// ErrInvalidNonceLength is returned when a CTR nonce is longer than
	// one block or a GCM nonce is empty.
	ErrInvalidNonceLength = errors.New("aes: invalid nonce length")

	// ErrInvalidTweakLength is returned when an XTS tweak is not exactly
	// one block.
	ErrInvalidTweakLength = errors.New("aes: tweak length must equal the block size")

	// ErrNotBlockAligned is returned when ECB/CBC decryption or XTS is
	// given input that is not a multiple of the block size.
	ErrNotBlockAligned = errors.New("aes: input is not a multiple of the block size")

	// ErrBadPadding is returned when CBC or ECB decryption produces a
	// malformed PKCS#7 trailer.
	ErrBadPadding = errors.New("aes: malformed PKCS#7 padding")

	// ErrAuthentication is returned when GCM tag verification fails
	// during Open. No plaintext is released in that case.
	ErrAuthentication = errors.New("aes: message authentication failure")

	// ErrUnsupportedMode is returned for mode strings outside the closed
	// set ECB, CBC, CTR, CFB, OFB, XTS, GCM.
	ErrUnsupportedMode = errors.New("aes: unsupported mode")
)
