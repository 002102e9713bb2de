package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

const (
	// SignatureSize is the size of a compact r||s secp256k1 signature.
	SignatureSize = 64

	CompressedPublicKeySize   = 33
	UncompressedPublicKeySize = 65
)

var (
	// ErrMalformedInput is returned when key or signature bytes have the wrong length.
	ErrMalformedInput = errors.Wrap(rejection.ErrVerification, "malformed input")

	// ErrUnsupportedKeyType is returned for key types that are recognized but have no verifier.
	ErrUnsupportedKeyType = errors.Wrap(rejection.ErrUnsupportedKeyType, "no verifier")
)

// Verify checks signature against payload under pubkey.
//
// Secp256k1 signatures are 64 byte compact r||s values over the SHA-256 digest of payload and
// the public key is a 33 byte compressed or 65 byte uncompressed point. Wrong lengths return
// ErrMalformedInput. Values of the right length that don't decode return false.
//
// Ed25519 returns ErrUnsupportedKeyType.
func Verify(payload, signature, pubkey []byte, kt KeyType) (bool, error) {
	switch kt {
	case Secp256k1:
		return verifySecp256k1(payload, signature, pubkey)
	case Ed25519:
		return false, errors.Wrap(ErrUnsupportedKeyType, kt.String())
	}

	return false, errors.Wrapf(ErrInvalidKeyType, "value %d", uint8(kt))
}

func verifySecp256k1(payload, signature, pubkey []byte) (bool, error) {
	if len(signature) != SignatureSize {
		return false, errors.Wrapf(ErrMalformedInput, "signature size %d", len(signature))
	}

	if len(pubkey) != CompressedPublicKeySize && len(pubkey) != UncompressedPublicKeySize {
		return false, errors.Wrapf(ErrMalformedInput, "public key size %d", len(pubkey))
	}

	key, err := btcec.ParsePubKey(pubkey, btcec.S256())
	if err != nil {
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])
	if !inRange(r) || !inRange(s) {
		return false, nil
	}

	digest := sha256.Sum256(payload)
	sig := &btcec.Signature{R: r, S: s}

	return sig.Verify(digest[:], key), nil
}

// inRange returns true for 0 < v < N.
func inRange(v *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(btcec.S256().N) < 0
}

// Sign returns the compact r||s signature of the SHA-256 digest of payload.
func Sign(key *btcec.PrivateKey, payload []byte) ([]byte, error) {
	digest := sha256.Sum256(payload)

	sig, err := key.Sign(digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}

	result := make([]byte, SignatureSize)
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	copy(result[32-len(r):32], r)
	copy(result[SignatureSize-len(s):], s)

	return result, nil
}

// KeyID returns the hex encoded RIPEMD160(SHA256(pubkey)) fingerprint of a public key.
func KeyID(pubkey []byte) string {
	sha := sha256.Sum256(pubkey)

	hasher := ripemd160.New()
	hasher.Write(sha[:])

	return hex.EncodeToString(hasher.Sum(nil))
}
