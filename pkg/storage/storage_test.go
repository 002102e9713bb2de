package storage

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"testing"
)

func TestFilesystemStorage(t *testing.T) {
	ctx := context.Background()

	root, err := ioutil.TempDir("", "storage")
	if err != nil {
		t.Fatalf("Failed to create temp dir : %s", err)
	}
	defer os.RemoveAll(root)

	store := CreateStorage(NewConfig("", "", "", StandaloneBucket, root))

	if _, err := store.Read(ctx, "contract/admin"); err != ErrNotFound {
		t.Fatalf("Read missing key : got %v, want %v", err, ErrNotFound)
	}

	want := []byte("1BoatSLRHtKNngkdXEeobR76b53LETtpyT")
	if err := store.Write(ctx, "contract/admin", want, nil); err != nil {
		t.Fatalf("Failed to write : %s", err)
	}

	got, err := store.Read(ctx, "contract/admin")
	if err != nil {
		t.Fatalf("Failed to read : %s", err)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("Got %s, want %s", got, want)
	}

	// Overwrite
	want = []byte("second")
	if err := store.Write(ctx, "contract/admin", want, nil); err != nil {
		t.Fatalf("Failed to overwrite : %s", err)
	}

	got, err = store.Read(ctx, "contract/admin")
	if err != nil {
		t.Fatalf("Failed to read : %s", err)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("Got %s, want %s", got, want)
	}

	if err := store.Remove(ctx, "contract/admin"); err != nil {
		t.Fatalf("Failed to remove : %s", err)
	}

	if _, err := store.Read(ctx, "contract/admin"); err != ErrNotFound {
		t.Errorf("Read removed key : got %v, want %v", err, ErrNotFound)
	}

	if err := store.Remove(ctx, "contract/admin"); err != ErrNotFound {
		t.Errorf("Remove missing key : got %v, want %v", err, ErrNotFound)
	}
}

func TestMockStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMockStorage()

	body := []byte{1, 2, 3}
	if err := store.Write(ctx, "k", body, nil); err != nil {
		t.Fatalf("Failed to write : %s", err)
	}

	// Stored values must not alias the caller's slice.
	body[0] = 9

	got, err := store.Read(ctx, "k")
	if err != nil {
		t.Fatalf("Failed to read : %s", err)
	}

	if got[0] != 1 {
		t.Errorf("Stored value was modified through caller slice")
	}

	if store.Len() != 1 {
		t.Errorf("Got %d keys, want 1", store.Len())
	}

	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Failed to remove : %s", err)
	}

	if store.Len() != 0 {
		t.Errorf("Got %d keys after remove, want 0", store.Len())
	}
}

func TestConfigIsStandalone(t *testing.T) {
	tests := []struct {
		bucket string
		want   bool
	}{
		{"standalone", true},
		{"Standalone", true},
		{"aml-contract-prod", false},
	}

	for _, tt := range tests {
		c := NewConfig("ap-southeast-2", "", "", tt.bucket, "./tmp")
		if c.IsStandalone() != tt.want {
			t.Errorf("%s : got %t, want %t", tt.bucket, c.IsStandalone(), tt.want)
		}
	}
}
