package oracle

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyPubkey is returned when a key update has no public key bytes.
	ErrEmptyPubkey = errors.Wrap(rejection.ErrValidation, "empty oracle pubkey")
)

// InitializeKey stores the first oracle key. It is only called while the contract is created.
func InitializeKey(ctx context.Context, dbConn db.Conn, pubkey []byte, kt signature.KeyType) error {
	if len(pubkey) == 0 {
		return ErrEmptyPubkey
	}

	if !kt.IsValid() {
		return errors.Wrapf(signature.ErrInvalidKeyType, "value %d", uint8(kt))
	}

	if err := savePubkey(ctx, dbConn, pubkey); err != nil {
		return errors.Wrap(err, "save pubkey")
	}

	if err := saveKeyType(ctx, dbConn, kt); err != nil {
		return errors.Wrap(err, "save key type")
	}

	return nil
}

// FetchKey returns the current oracle key.
func FetchKey(ctx context.Context, dbConn db.Conn) (*Key, error) {
	pubkey, err := fetchPubkey(ctx, dbConn)
	if err != nil {
		return nil, err
	}

	kt, err := fetchKeyType(ctx, dbConn)
	if err != nil {
		return nil, err
	}

	return &Key{
		PublicKey: pubkey,
		KeyType:   kt,
	}, nil
}

// SetPubkey replaces the oracle public key on behalf of the admin. The key type is only
// replaced when newKeyType is supplied. Every check happens before the first write, so a
// rejected update changes nothing. The resulting key is returned.
func SetPubkey(ctx context.Context, dbConn db.Conn, caller host.Address, newKey []byte,
	newKeyType *string) (*Key, error) {

	if err := admin.Authorize(ctx, dbConn, caller); err != nil {
		return nil, err
	}

	if len(newKey) == 0 {
		return nil, ErrEmptyPubkey
	}

	result := &Key{
		PublicKey: newKey,
	}

	if newKeyType != nil {
		kt, err := signature.ParseKeyType(*newKeyType)
		if err != nil {
			return nil, errors.Wrap(err, "new_key_type")
		}
		result.KeyType = kt
	} else {
		kt, err := fetchKeyType(ctx, dbConn)
		if err != nil {
			return nil, err
		}
		result.KeyType = kt
	}

	if err := savePubkey(ctx, dbConn, result.PublicKey); err != nil {
		return nil, errors.Wrap(err, "save pubkey")
	}

	if newKeyType != nil {
		if err := saveKeyType(ctx, dbConn, result.KeyType); err != nil {
			return nil, errors.Wrap(err, "save key type")
		}
	}

	return result, nil
}
