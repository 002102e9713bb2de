package signature

import (
	"strings"

	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/pkg/errors"
)

// KeyType is the signature scheme of an oracle public key. It is a closed set; the zero value
// is not a valid key type.
type KeyType uint8

const (
	InvalidKeyType KeyType = iota
	Secp256k1
	Ed25519
)

var (
	// ErrInvalidKeyType is returned for key type text that is not a recognized alias.
	ErrInvalidKeyType = errors.Wrap(rejection.ErrConfiguration,
		"invalid oracle_key_type: use 'secp256k1' or 'ed25519'")
)

var keyTypeAliases = map[string]KeyType{
	"secp256k1": Secp256k1,
	"k256":      Secp256k1,
	"ecdsa":     Secp256k1,
	"ed25519":   Ed25519,
	"ed":        Ed25519,
}

// ParseKeyType normalizes user supplied key type text. Matching ignores case.
func ParseKeyType(raw string) (KeyType, error) {
	kt, exists := keyTypeAliases[strings.ToLower(raw)]
	if !exists {
		return InvalidKeyType, errors.Wrapf(ErrInvalidKeyType, "%q", raw)
	}

	return kt, nil
}

// IsValid returns true for Secp256k1 and Ed25519.
func (kt KeyType) IsValid() bool {
	return kt == Secp256k1 || kt == Ed25519
}

// String returns the canonical name.
func (kt KeyType) String() string {
	switch kt {
	case Secp256k1:
		return "secp256k1"
	case Ed25519:
		return "ed25519"
	}

	return "invalid"
}

// MarshalText returns the canonical name. Invalid key types can't be marshalled.
func (kt KeyType) MarshalText() ([]byte, error) {
	if !kt.IsValid() {
		return nil, errors.Wrapf(ErrInvalidKeyType, "value %d", uint8(kt))
	}

	return []byte(kt.String()), nil
}

// UnmarshalText accepts only canonical names. Aliases are resolved once by ParseKeyType and
// never stored, so anything else here means the stored value is corrupt.
func (kt *KeyType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "secp256k1":
		*kt = Secp256k1
	case "ed25519":
		*kt = Ed25519
	default:
		return errors.Wrapf(ErrInvalidKeyType, "stored %q", string(text))
	}

	return nil
}
