package oracle

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

var (
	// ErrSignatureInvalid is returned when the payload signature doesn't verify under the
	// current oracle key.
	ErrSignatureInvalid = errors.Wrap(rejection.ErrVerification, "signature verification failed")
)

// Update admits payload as the new oracle data if signature verifies under the current oracle
// key. On any failure the stored data is unchanged.
func Update(ctx context.Context, dbConn db.Conn, payload string, sig []byte) error {
	key, err := FetchKey(ctx, dbConn)
	if err != nil {
		return err
	}

	verified, err := signature.Verify([]byte(payload), sig, key.PublicKey, key.KeyType)
	if err != nil {
		return errors.Wrapf(err, "%s verify", key.KeyType)
	}

	if !verified {
		return ErrSignatureInvalid
	}

	logger.Verbose(ctx, "Oracle payload verified under key %s", key.ID())

	return commitData(ctx, dbConn, payload)
}
