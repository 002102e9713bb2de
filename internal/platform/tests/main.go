package tests

import (
	"context"
	"os"
	"testing"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/signature"
	"github.com/dhiraj-inti/aml-application/pkg/storage"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/tokenized/pkg/logger"
)

// Success and failure markers.
const (
	Success = "✓"
	Failed  = "✗"
)

// Network is the network test addresses are encoded for.
const Network = "mainnet"

// Context returns a context with a development logger writing to stdout.
func Context() context.Context {
	logConfig := logger.NewDevelopmentConfig()
	logConfig.Main.SetWriter(os.Stdout)
	logConfig.Main.Format |= logger.IncludeSystem | logger.IncludeMicro
	logConfig.Main.MinLevel = logger.LevelDebug

	return logger.ContextWithLogConfig(context.Background(), logConfig)
}

// NewMasterDB returns a DB backed by in-memory storage along with the storage itself.
func NewMasterDB(t testing.TB) (*db.DB, *storage.MockStorage) {
	store := storage.NewMockStorage()
	return db.NewWithStorage(store), store
}

// GenerateOracleKey returns a new secp256k1 key.
func GenerateOracleKey(t testing.TB) *btcec.PrivateKey {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		t.Fatalf("\t%s\tFailed to generate key : %s", Failed, err)
	}

	return key
}

// Sign returns the oracle signature of payload.
func Sign(t testing.TB, key *btcec.PrivateKey, payload string) []byte {
	sig, err := signature.Sign(key, []byte(payload))
	if err != nil {
		t.Fatalf("\t%s\tFailed to sign : %s", Failed, err)
	}

	return sig
}

// GenerateAddress returns the P2PKH address of a new key on the test network.
func GenerateAddress(t testing.TB) host.Address {
	key := GenerateOracleKey(t)

	address, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(key.PubKey().SerializeCompressed()),
		&chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("\t%s\tFailed to create key address : %s", Failed, err)
	}

	return host.Address(address.EncodeAddress())
}
