package db

import (
	"bytes"
	"context"
	"testing"

	"github.com/dhiraj-inti/aml-application/pkg/storage"

	"github.com/pkg/errors"
)

func TestStatusCheck(t *testing.T) {
	ctx := context.Background()
	dbConn := NewWithStorage(storage.NewMockStorage())

	if err := dbConn.StatusCheck(ctx); err != nil {
		t.Fatalf("Status check failed : %s", err)
	}

	dbConn.Close()

	if err := dbConn.StatusCheck(ctx); err == nil {
		t.Fatalf("Status check on closed DB should fail")
	}
}

func TestTxCommit(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	dbConn := NewWithStorage(store)

	tx := dbConn.Begin()

	if err := tx.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Failed to put : %s", err)
	}

	// Read your own writes
	b, err := tx.Fetch(ctx, "a")
	if err != nil {
		t.Fatalf("Failed to fetch buffered : %s", err)
	}
	if !bytes.Equal(b, []byte("1")) {
		t.Errorf("Got %s, want 1", b)
	}

	// Not visible outside the write group before commit
	if _, err := dbConn.Fetch(ctx, "a"); err != ErrNotFound {
		t.Fatalf("Uncommitted write visible : %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit : %s", err)
	}

	b, err = dbConn.Fetch(ctx, "a")
	if err != nil {
		t.Fatalf("Failed to fetch committed : %s", err)
	}
	if !bytes.Equal(b, []byte("1")) {
		t.Errorf("Got %s, want 1", b)
	}

	if err := tx.Put(ctx, "b", nil); err != ErrTxClosed {
		t.Errorf("Put after commit : got %v, want %v", err, ErrTxClosed)
	}
}

func TestTxDiscard(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	dbConn := NewWithStorage(store)

	tx := dbConn.Begin()
	if err := tx.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("Failed to put : %s", err)
	}
	tx.Discard()

	if store.Len() != 0 {
		t.Errorf("Discarded write reached storage")
	}

	if _, err := tx.Fetch(ctx, "a"); err != ErrTxClosed {
		t.Errorf("Fetch after discard : got %v, want %v", err, ErrTxClosed)
	}
}

func TestTxCommitOrder(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	dbConn := NewWithStorage(store)

	var written []string
	store.WriteErrs = func(key string) error {
		written = append(written, key)
		return nil
	}

	tx := dbConn.Begin()
	tx.Put(ctx, "entry", []byte("x"))
	tx.Put(ctx, "count", []byte("1"))
	tx.Put(ctx, "entry", []byte("y")) // rewrite keeps first position

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Failed to commit : %s", err)
	}

	if len(written) != 2 || written[0] != "entry" || written[1] != "count" {
		t.Errorf("Wrong commit order : %v", written)
	}
}

func TestTxCommitRollback(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	dbConn := NewWithStorage(store)

	if err := dbConn.Put(ctx, "pubkey", []byte("old")); err != nil {
		t.Fatalf("Failed to put : %s", err)
	}

	diskFull := errors.New("disk full")
	store.WriteErrs = func(key string) error {
		if key == "key_type" {
			return diskFull
		}
		return nil
	}

	tx := dbConn.Begin()
	tx.Put(ctx, "pubkey", []byte("new"))
	tx.Put(ctx, "created", []byte("x"))
	tx.Put(ctx, "key_type", []byte("ed25519"))

	if err := tx.Commit(ctx); err == nil {
		t.Fatalf("Commit should fail")
	}

	b, err := dbConn.Fetch(ctx, "pubkey")
	if err != nil {
		t.Fatalf("Failed to fetch : %s", err)
	}
	if !bytes.Equal(b, []byte("old")) {
		t.Errorf("Existing key not restored : got %s, want old", b)
	}

	if _, err := dbConn.Fetch(ctx, "created"); err != ErrNotFound {
		t.Errorf("New key not removed : got %v, want %v", err, ErrNotFound)
	}

	if _, err := dbConn.Fetch(ctx, "key_type"); err != ErrNotFound {
		t.Errorf("Failed key stored : got %v, want %v", err, ErrNotFound)
	}

	if store.Len() != 1 {
		t.Errorf("Got %d keys, want 1", store.Len())
	}
}
