package oracle

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"

	"github.com/pkg/errors"
)

// FetchData returns the latest verified oracle payload, or nil before the first update.
func FetchData(ctx context.Context, dbConn db.Conn) (*string, error) {
	b, err := dbConn.Fetch(ctx, dataKey)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, nil
		}

		return nil, errors.Wrap(err, "fetch oracle data")
	}

	result := string(b)
	return &result, nil
}

// commitData overwrites the oracle payload. Only Update calls it, after verification.
func commitData(ctx context.Context, dbConn db.Conn, payload string) error {
	if err := dbConn.Put(ctx, dataKey, []byte(payload)); err != nil {
		return errors.Wrap(err, "save oracle data")
	}

	return nil
}
