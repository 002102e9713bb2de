package oracle

import (
	"github.com/dhiraj-inti/aml-application/internal/signature"
)

// Key is the public key oracle payloads are verified against.
type Key struct {
	PublicKey []byte
	KeyType   signature.KeyType
}

// ID returns the fingerprint of the public key.
func (k Key) ID() string {
	return signature.KeyID(k.PublicKey)
}
