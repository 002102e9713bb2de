package db

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrTxClosed is returned when a write group is used after Commit or Discard.
	ErrTxClosed = errors.New("Transaction closed")
)

// Tx buffers the writes of a single request so they are applied as one group. Reads see the
// buffered writes first. Nothing reaches storage until Commit.
type Tx struct {
	db     *DB
	writes map[string][]byte
	order  []string
	closed bool
}

// Begin starts a new write group against the DB.
func (db *DB) Begin() *Tx {
	return &Tx{
		db:     db,
		writes: make(map[string][]byte),
	}
}

// Put buffers a write.
func (tx *Tx) Put(ctx context.Context, key string, body []byte) error {
	if tx.closed {
		return ErrTxClosed
	}

	if _, exists := tx.writes[key]; !exists {
		tx.order = append(tx.order, key)
	}

	c := make([]byte, len(body))
	copy(c, body)
	tx.writes[key] = c
	return nil
}

// Fetch returns the buffered value for key if there is one, otherwise the stored value.
func (tx *Tx) Fetch(ctx context.Context, key string) ([]byte, error) {
	if tx.closed {
		return nil, ErrTxClosed
	}

	if b, exists := tx.writes[key]; exists {
		c := make([]byte, len(b))
		copy(c, b)
		return c, nil
	}

	return tx.db.Fetch(ctx, key)
}

// Len returns the number of buffered keys.
func (tx *Tx) Len() int {
	return len(tx.writes)
}

// Commit writes the buffered values to storage in the order they were first written. The
// previous value of every key is read first. If a write fails the keys already written are
// restored, or removed when they did not exist, so storage is left as it was before Commit.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.closed {
		return ErrTxClosed
	}
	tx.closed = true

	previous := make([]snapshot, 0, len(tx.order))
	for _, key := range tx.order {
		b, err := tx.db.Fetch(ctx, key)
		switch {
		case err == nil:
			previous = append(previous, snapshot{key: key, body: b, exists: true})
		case errors.Cause(err) == ErrNotFound:
			previous = append(previous, snapshot{key: key})
		default:
			return errors.Wrapf(err, "snapshot %s", key)
		}
	}

	for i, key := range tx.order {
		if err := tx.db.Put(ctx, key, tx.writes[key]); err != nil {
			err = errors.Wrapf(err, "commit %s", key)
			if rerr := tx.db.restore(ctx, previous[:i]); rerr != nil {
				return errors.Wrapf(err, "rollback failed : %s", rerr)
			}
			return err
		}
	}

	return nil
}

// snapshot is the value a key held before a Commit.
type snapshot struct {
	key    string
	body   []byte
	exists bool
}

// restore puts back the snapshots in reverse write order.
func (db *DB) restore(ctx context.Context, previous []snapshot) error {
	for i := len(previous) - 1; i >= 0; i-- {
		s := previous[i]
		if s.exists {
			if err := db.Put(ctx, s.key, s.body); err != nil {
				return errors.Wrapf(err, "restore %s", s.key)
			}
			continue
		}

		if err := db.Remove(ctx, s.key); err != nil && errors.Cause(err) != ErrNotFound {
			return errors.Wrapf(err, "remove %s", s.key)
		}
	}

	return nil
}

// Discard drops all buffered writes.
func (tx *Tx) Discard() {
	tx.closed = true
	tx.writes = nil
	tx.order = nil
}
