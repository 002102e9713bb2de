package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/pkg/errors"
)

const (
	countKey     = "ledger/count"
	entryKeyRoot = "ledger/entries"
)

func entryKey(sequence uint64) string {
	return fmt.Sprintf("%s/%020d", entryKeyRoot, sequence)
}

func fetchCount(ctx context.Context, dbConn db.Conn) (uint64, error) {
	b, err := dbConn.Fetch(ctx, countKey)
	if err != nil {
		if err == db.ErrNotFound {
			return 0, nil
		}

		return 0, errors.Wrap(err, "fetch ledger count")
	}

	count, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(rejection.ErrConfiguration, "stored ledger count : %s", err)
	}

	return count, nil
}

func saveCount(ctx context.Context, dbConn db.Conn, count uint64) error {
	return dbConn.Put(ctx, countKey, []byte(strconv.FormatUint(count, 10)))
}

func fetchEntry(ctx context.Context, dbConn db.Conn, sequence uint64) (*Entry, error) {
	b, err := dbConn.Fetch(ctx, entryKey(sequence))
	if err != nil {
		if err == db.ErrNotFound {
			return nil, errors.Wrapf(rejection.ErrConfiguration, "missing ledger entry %d",
				sequence)
		}

		return nil, errors.Wrapf(err, "fetch ledger entry %d", sequence)
	}

	var tx Transaction
	if err := json.Unmarshal(b, &tx); err != nil {
		return nil, errors.Wrapf(rejection.ErrConfiguration, "ledger entry %d : %s", sequence,
			err)
	}

	return &Entry{
		Sequence:    sequence,
		Transaction: tx,
	}, nil
}

func saveEntry(ctx context.Context, dbConn db.Conn, sequence uint64, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return errors.Wrap(err, "marshal transaction")
	}

	return dbConn.Put(ctx, entryKey(sequence), b)
}
