package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/ledger"
	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/tests"
	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/tyler-smith/go-bip32"
)

func TestDeriveKey(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("\t%s\tFailed to decode seed : %s", tests.Failed, err)
	}

	first, err := deriveKey(seed, "m/0'/1")
	if err != nil {
		t.Fatalf("\t%s\tFailed to derive : %s", tests.Failed, err)
	}

	second, err := deriveKey(seed, "0h/1")
	if err != nil {
		t.Fatalf("\t%s\tFailed to derive : %s", tests.Failed, err)
	}

	if !bytes.Equal(first.Serialize(), second.Serialize()) {
		t.Fatalf("\t%s\tSame seed and path gave different keys", tests.Failed)
	}

	other, err := deriveKey(seed, "0'/2")
	if err != nil {
		t.Fatalf("\t%s\tFailed to derive : %s", tests.Failed, err)
	}
	if bytes.Equal(first.Serialize(), other.Serialize()) {
		t.Fatalf("\t%s\tDifferent paths gave the same key", tests.Failed)
	}

	// Derived keys sign verifiable payloads.
	sig, err := signature.Sign(first, []byte("42"))
	if err != nil {
		t.Fatalf("\t%s\tFailed to sign : %s", tests.Failed, err)
	}
	verified, err := signature.Verify([]byte("42"), sig, first.PubKey().SerializeCompressed(),
		signature.Secp256k1)
	if err != nil || !verified {
		t.Fatalf("\t%s\tDerived key signature not verified : %v", tests.Failed, err)
	}

	t.Logf("\t%s\tDerived keys are deterministic", tests.Success)
}

func TestParsePath(t *testing.T) {
	indexes, err := parsePath("m/44'/0/7")
	if err != nil {
		t.Fatalf("\t%s\tFailed to parse : %s", tests.Failed, err)
	}

	want := []uint32{44 + bip32.FirstHardenedChild, 0, 7}
	if len(indexes) != len(want) {
		t.Fatalf("\t%s\tGot %v, want %v", tests.Failed, indexes, want)
	}
	for i := range want {
		if indexes[i] != want[i] {
			t.Fatalf("\t%s\tGot %v, want %v", tests.Failed, indexes, want)
		}
	}

	if indexes, err := parsePath("m"); err != nil || len(indexes) != 0 {
		t.Fatalf("\t%s\tMaster path : %v %v", tests.Failed, indexes, err)
	}

	if _, err := parsePath("0/x"); err == nil {
		t.Fatalf("\t%s\tInvalid path accepted", tests.Failed)
	}
}

func TestDecodeSignature(t *testing.T) {
	sig := tests.Sign(t, tests.GenerateOracleKey(t), "42")

	fromHex, err := decodeSignature(hex.EncodeToString(sig))
	if err != nil || !bytes.Equal(fromHex, sig) {
		t.Fatalf("\t%s\tHex signature : %v", tests.Failed, err)
	}

	fromBase64, err := decodeSignature(base64.StdEncoding.EncodeToString(sig))
	if err != nil || !bytes.Equal(fromBase64, sig) {
		t.Fatalf("\t%s\tBase64 signature : %v", tests.Failed, err)
	}

	if _, err := decodeSignature("!!"); err == nil {
		t.Fatalf("\t%s\tInvalid signature accepted", tests.Failed)
	}
}

func TestLoadState(t *testing.T) {
	ctx := tests.Context()
	masterDB, _ := tests.NewMasterDB(t)

	if _, err := loadState(ctx, masterDB, 0, 0); err != admin.ErrNotInitialized {
		t.Fatalf("\t%s\tEmpty state : got %v", tests.Failed, err)
	}

	adminAddress := tests.GenerateAddress(t)
	key := tests.GenerateOracleKey(t)
	if err := admin.Initialize(ctx, masterDB, adminAddress); err != nil {
		t.Fatalf("\t%s\tFailed to initialize admin : %s", tests.Failed, err)
	}
	if err := oracle.InitializeKey(ctx, masterDB, key.PubKey().SerializeCompressed(),
		signature.Secp256k1); err != nil {
		t.Fatalf("\t%s\tFailed to initialize key : %s", tests.Failed, err)
	}
	for i := uint64(0); i < 3; i++ {
		if _, err := ledger.Append(ctx, masterDB, ledger.Transaction{Sender: "a",
			Receiver: "b", Amount: i + 1, Timestamp: 2}); err != nil {
			t.Fatalf("\t%s\tFailed to append : %s", tests.Failed, err)
		}
	}

	state, err := loadState(ctx, masterDB, 1, 1)
	if err != nil {
		t.Fatalf("\t%s\tFailed to load state : %s", tests.Failed, err)
	}

	if state.Admin != adminAddress || state.OracleKey.KeyType != "secp256k1" ||
		state.OracleData != nil || state.LedgerSize != 3 || len(state.Entries) != 1 ||
		state.Entries[0].Sequence != 1 {
		t.Fatalf("\t%s\tWrong state : %+v", tests.Failed, state)
	}

	if err := printState(state); err != nil {
		t.Fatalf("\t%s\tFailed to print state : %s", tests.Failed, err)
	}
}
