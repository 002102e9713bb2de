package ledger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhiraj-inti/aml-application/internal/platform/tests"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func testTransactions(n int) []Transaction {
	var result []Transaction
	for i := 0; i < n; i++ {
		result = append(result, Transaction{
			Sender:    fmt.Sprintf("sender%d", i),
			Receiver:  fmt.Sprintf("receiver%d", i),
			Amount:    uint64(100 * (i + 1)),
			Timestamp: uint64(1700000000 + i),
		})
	}
	return result
}

func TestAppend(t *testing.T) {
	ctx := tests.Context()
	dbConn, _ := tests.NewMasterDB(t)

	entries, err := ListAll(ctx, dbConn)
	if err != nil {
		t.Fatalf("\t%s\tFailed to list empty ledger : %s", tests.Failed, err)
	}
	if len(entries) != 0 {
		t.Fatalf("\t%s\tEmpty ledger listed %d entries", tests.Failed, len(entries))
	}

	txs := testTransactions(3)
	var want []Entry
	for i, tx := range txs {
		sequence, err := Append(ctx, dbConn, tx)
		if err != nil {
			t.Fatalf("\t%s\tFailed to append %d : %s", tests.Failed, i, err)
		}
		if sequence != uint64(i) {
			t.Fatalf("\t%s\tWrong sequence : got %d, want %d", tests.Failed, sequence, i)
		}
		want = append(want, Entry{Sequence: sequence, Transaction: tx})
	}
	t.Logf("\t%s\tSequences assigned in call order", tests.Success)

	count, err := Count(ctx, dbConn)
	if err != nil {
		t.Fatalf("\t%s\tFailed to count : %s", tests.Failed, err)
	}
	if count != 3 {
		t.Fatalf("\t%s\tWrong count : got %d, want 3", tests.Failed, count)
	}

	entries, err = ListAll(ctx, dbConn)
	if err != nil {
		t.Fatalf("\t%s\tFailed to list : %s", tests.Failed, err)
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("\t%s\tListed entries differ (-want +got) :\n%s", tests.Failed, diff)
	}
	t.Logf("\t%s\tList returns entries in sequence order", tests.Success)

	// Identical transactions are stored as separate entries.
	sequence, err := Append(ctx, dbConn, txs[0])
	if err != nil {
		t.Fatalf("\t%s\tFailed to append duplicate : %s", tests.Failed, err)
	}
	if sequence != 3 {
		t.Fatalf("\t%s\tDuplicate sequence : got %d, want 3", tests.Failed, sequence)
	}
}

func TestList(t *testing.T) {
	ctx := tests.Context()
	dbConn, _ := tests.NewMasterDB(t)

	txs := testTransactions(5)
	for _, tx := range txs {
		if _, err := Append(ctx, dbConn, tx); err != nil {
			t.Fatalf("\t%s\tFailed to append : %s", tests.Failed, err)
		}
	}

	var pages = []struct {
		name  string
		start uint64
		limit uint64
		want  []uint64
	}{
		{"all", 0, 0, []uint64{0, 1, 2, 3, 4}},
		{"first page", 0, 2, []uint64{0, 1}},
		{"middle page", 2, 2, []uint64{2, 3}},
		{"short last page", 4, 2, []uint64{4}},
		{"from start", 3, 0, []uint64{3, 4}},
		{"past end", 5, 2, []uint64{}},
		{"far past end", 100, 0, []uint64{}},
	}

	for _, tt := range pages {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := List(ctx, dbConn, tt.start, tt.limit)
			if err != nil {
				t.Fatalf("\t%s\tFailed to list : %s", tests.Failed, err)
			}

			got := []uint64{}
			for _, entry := range entries {
				got = append(got, entry.Sequence)
				if entry.Transaction != txs[entry.Sequence] {
					t.Fatalf("\t%s\tEntry %d has wrong transaction", tests.Failed, entry.Sequence)
				}
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("\t%s\tSequences differ (-want +got) :\n%s", tests.Failed, diff)
			}
		})
	}
}

func TestAppendEntryWriteFailure(t *testing.T) {
	ctx := tests.Context()
	dbConn, store := tests.NewMasterDB(t)

	txs := testTransactions(2)
	if _, err := Append(ctx, dbConn, txs[0]); err != nil {
		t.Fatalf("\t%s\tFailed to append : %s", tests.Failed, err)
	}

	failure := errors.New("disk full")
	store.WriteErrs = func(key string) error {
		if strings.HasPrefix(key, entryKeyRoot) {
			return failure
		}
		return nil
	}

	if _, err := Append(ctx, dbConn, txs[1]); errors.Cause(err) != failure {
		t.Fatalf("\t%s\tGot %v, want %v", tests.Failed, err, failure)
	}

	count, err := Count(ctx, dbConn)
	if err != nil {
		t.Fatalf("\t%s\tFailed to count : %s", tests.Failed, err)
	}
	if count != 1 {
		t.Fatalf("\t%s\tCount changed by failed append : %d", tests.Failed, count)
	}

	store.WriteErrs = nil
	sequence, err := Append(ctx, dbConn, txs[1])
	if err != nil {
		t.Fatalf("\t%s\tFailed to append after recovery : %s", tests.Failed, err)
	}
	if sequence != 1 {
		t.Fatalf("\t%s\tSequence after failure : got %d, want 1", tests.Failed, sequence)
	}

	t.Logf("\t%s\tFailed entry write leaves the ledger unchanged", tests.Success)
}

func TestCorruptCount(t *testing.T) {
	ctx := tests.Context()
	dbConn, _ := tests.NewMasterDB(t)

	if err := dbConn.Put(ctx, countKey, []byte("not a number")); err != nil {
		t.Fatalf("\t%s\tFailed to corrupt count : %s", tests.Failed, err)
	}

	if _, err := Append(ctx, dbConn, testTransactions(1)[0]); err == nil {
		t.Fatalf("\t%s\tAppend succeeded with corrupt count", tests.Failed)
	}
}
