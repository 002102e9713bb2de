package oracle

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/pkg/errors"
)

const (
	pubkeyKey  = "contract/oracle_pubkey"
	keyTypeKey = "contract/oracle_key_type"
	dataKey    = "contract/oracle_data"
)

var (
	// ErrKeyNotSet is returned when the oracle key has not been initialized.
	ErrKeyNotSet = errors.Wrap(rejection.ErrConfiguration, "oracle key not set")
)

func fetchPubkey(ctx context.Context, dbConn db.Conn) ([]byte, error) {
	b, err := dbConn.Fetch(ctx, pubkeyKey)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, ErrKeyNotSet
		}

		return nil, errors.Wrap(err, "fetch oracle pubkey")
	}

	return b, nil
}

// fetchKeyType returns the stored key type. Stored values are always canonical, so a value
// that doesn't decode is reported as a configuration error.
func fetchKeyType(ctx context.Context, dbConn db.Conn) (signature.KeyType, error) {
	b, err := dbConn.Fetch(ctx, keyTypeKey)
	if err != nil {
		if err == db.ErrNotFound {
			return signature.InvalidKeyType, ErrKeyNotSet
		}

		return signature.InvalidKeyType, errors.Wrap(err, "fetch oracle key type")
	}

	var kt signature.KeyType
	if err := kt.UnmarshalText(b); err != nil {
		return signature.InvalidKeyType, err
	}

	return kt, nil
}

func savePubkey(ctx context.Context, dbConn db.Conn, pubkey []byte) error {
	return dbConn.Put(ctx, pubkeyKey, pubkey)
}

func saveKeyType(ctx context.Context, dbConn db.Conn, kt signature.KeyType) error {
	b, err := kt.MarshalText()
	if err != nil {
		return err
	}

	return dbConn.Put(ctx, keyTypeKey, b)
}
