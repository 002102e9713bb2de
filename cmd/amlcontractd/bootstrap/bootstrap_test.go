package bootstrap

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/config"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/tests"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/internal/signature"
)

func TestInitializeContract(t *testing.T) {
	ctx := tests.Context()
	masterDB, _ := tests.NewMasterDB(t)
	validator := host.NewBitcoinAddressValidator(tests.Network)

	var cfg config.Config
	if err := InitializeContract(ctx, &cfg, masterDB, validator); err != nil {
		t.Fatalf("\t%s\tUnconfigured contract : %s", tests.Failed, err)
	}
	if _, err := admin.Fetch(ctx, masterDB); err != admin.ErrNotInitialized {
		t.Fatalf("\t%s\tUnconfigured contract was created : %v", tests.Failed, err)
	}

	adminAddress := tests.GenerateAddress(t)
	key := tests.GenerateOracleKey(t)
	cfg.Contract.AdminAddress = adminAddress.String()
	cfg.Contract.OraclePubkey = hex.EncodeToString(key.PubKey().SerializeCompressed())
	cfg.Contract.OracleKeyType = "ecdsa"

	if err := InitializeContract(ctx, &cfg, masterDB, validator); err != nil {
		t.Fatalf("\t%s\tFailed to initialize contract : %s", tests.Failed, err)
	}

	stored, err := admin.Fetch(ctx, masterDB)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch admin : %s", tests.Failed, err)
	}
	if stored != adminAddress {
		t.Fatalf("\t%s\tWrong admin : %s", tests.Failed, stored)
	}

	oracleKey, err := oracle.FetchKey(ctx, masterDB)
	if err != nil {
		t.Fatalf("\t%s\tFailed to fetch oracle key : %s", tests.Failed, err)
	}
	if oracleKey.KeyType != signature.Secp256k1 {
		t.Fatalf("\t%s\tWrong key type : %s", tests.Failed, oracleKey.KeyType)
	}
	t.Logf("\t%s\tContract created from config", tests.Success)

	// A second start keeps the stored contract.
	cfg.Contract.AdminAddress = tests.GenerateAddress(t).String()
	if err := InitializeContract(ctx, &cfg, masterDB, validator); err != nil {
		t.Fatalf("\t%s\tRestart : %s", tests.Failed, err)
	}
	stored, _ = admin.Fetch(ctx, masterDB)
	if stored != adminAddress {
		t.Fatalf("\t%s\tRestart replaced admin : %s", tests.Failed, stored)
	}
}

func TestInitializeContractInvalid(t *testing.T) {
	ctx := tests.Context()
	masterDB, _ := tests.NewMasterDB(t)
	validator := host.NewBitcoinAddressValidator(tests.Network)

	var cfg config.Config
	cfg.Contract.AdminAddress = tests.GenerateAddress(t).String()
	cfg.Contract.OraclePubkey = hex.EncodeToString(tests.GenerateOracleKey(t).PubKey().SerializeCompressed())
	cfg.Contract.OracleKeyType = "rsa"

	err := InitializeContract(ctx, &cfg, masterDB, validator)
	if rejection.Category(err) != rejection.CategoryConfiguration {
		t.Fatalf("\t%s\tInvalid key type : got %v", tests.Failed, err)
	}

	// Nothing partial is stored.
	if _, err := admin.Fetch(ctx, masterDB); err != admin.ErrNotInitialized {
		t.Fatalf("\t%s\tAdmin stored by failed initialization : %v", tests.Failed, err)
	}
}

func TestNewContextWithLoggerFallback(t *testing.T) {
	dir, err := ioutil.TempDir("", "log")
	if err != nil {
		t.Fatalf("\t%s\tFailed to create temp dir : %s", tests.Failed, err)
	}
	defer os.RemoveAll(dir)

	var cfg config.Config
	cfg.Log.FilePath = filepath.Join(dir, "missing", "contract.log")

	if ctx := NewContextWithLogger(&cfg); ctx == nil {
		t.Fatalf("\t%s\tNo logger context for unopenable log file", tests.Failed)
	}

	if _, err := os.Stat(cfg.Log.FilePath); !os.IsNotExist(err) {
		t.Fatalf("\t%s\tUnexpected log file : %v", tests.Failed, err)
	}
	t.Logf("\t%s\tUnopenable log file falls back to stdout", tests.Success)
}
