// Package ledger is the append-only record of screened transactions. Entries are numbered
// from zero and the next sequence always equals the number of entries.
package ledger

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"

	"github.com/pkg/errors"
)

// Append records tx at the next sequence and returns that sequence. The entry is written
// before the count, so a failed entry write leaves the ledger unchanged.
func Append(ctx context.Context, dbConn db.Conn, tx Transaction) (uint64, error) {
	sequence, err := fetchCount(ctx, dbConn)
	if err != nil {
		return 0, err
	}

	if err := saveEntry(ctx, dbConn, sequence, tx); err != nil {
		return 0, errors.Wrapf(err, "save entry %d", sequence)
	}

	if err := saveCount(ctx, dbConn, sequence+1); err != nil {
		return 0, errors.Wrap(err, "save count")
	}

	return sequence, nil
}

// Count returns the number of entries.
func Count(ctx context.Context, dbConn db.Conn) (uint64, error) {
	return fetchCount(ctx, dbConn)
}

// List returns up to limit entries in ascending sequence order, starting at start. A limit of
// zero returns every entry from start.
func List(ctx context.Context, dbConn db.Conn, start, limit uint64) ([]Entry, error) {
	count, err := fetchCount(ctx, dbConn)
	if err != nil {
		return nil, err
	}

	end := count
	if limit > 0 && start < count && limit < count-start {
		end = start + limit
	}

	result := []Entry{}
	for sequence := start; sequence < end; sequence++ {
		entry, err := fetchEntry(ctx, dbConn, sequence)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}

	return result, nil
}

// ListAll returns every entry in ascending sequence order.
func ListAll(ctx context.Context, dbConn db.Conn) ([]Entry, error) {
	return List(ctx, dbConn, 0, 0)
}
