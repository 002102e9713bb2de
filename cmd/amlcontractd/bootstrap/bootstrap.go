package bootstrap

import (
	"context"
	"encoding/json"

	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/config"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
)

// NewContextWithLogger returns a context carrying the logger described by the config. When the
// log file can't be opened it logs to stdout only and warns.
func NewContextWithLogger(cfg *config.Config) context.Context {
	ctx := context.Background()

	if len(cfg.Log.FilePath) > 0 {
		var fileCtx context.Context
		var err error
		if cfg.Log.Development {
			fileCtx, err = node.ContextWithDevelopmentFileLogger(ctx, cfg.Log.FilePath,
				cfg.Log.Format)
		} else {
			fileCtx, err = node.ContextWithProductionFileLogger(ctx, cfg.Log.FilePath,
				cfg.Log.Format)
		}
		if err == nil {
			return fileCtx
		}

		ctx = newStdoutLogger(ctx, cfg)
		logger.Warn(ctx, "Logging to stdout only : %s", err)
		return ctx
	}

	return newStdoutLogger(ctx, cfg)
}

func newStdoutLogger(ctx context.Context, cfg *config.Config) context.Context {
	if cfg.Log.Development {
		return node.ContextWithDevelopmentLogger(ctx, cfg.Log.Format)
	}

	return node.ContextWithProductionLogger(ctx, cfg.Log.Format)
}

func NewConfigFromEnv(ctx context.Context) *config.Config {
	cfg, err := config.Environment()
	if err != nil {
		logger.Fatal(ctx, "Parsing Config : %s", err)
	}

	return cfg
}

// LogConfig writes the config with sensitive values masked.
func LogConfig(ctx context.Context, cfg *config.Config) {
	cfgSafe := config.SafeConfig(*cfg)
	cfgJSON, err := json.MarshalIndent(cfgSafe, "", "    ")
	if err != nil {
		logger.Fatal(ctx, "Marshalling Config to JSON : %s", err)
	}
	logger.Info(ctx, "Config : %v", string(cfgJSON))
}

func NewMasterDB(ctx context.Context, cfg *config.Config) *db.DB {
	masterDB, err := db.New(&db.StorageConfig{
		Region:     cfg.AWS.Region,
		AccessKey:  cfg.AWS.AccessKeyID,
		Secret:     cfg.AWS.SecretAccessKey,
		Bucket:     cfg.Storage.Bucket,
		Root:       cfg.Storage.Root,
		MaxRetries: cfg.AWS.MaxRetries,
	})
	if err != nil {
		logger.Fatal(ctx, "Register DB : %s", err)
	}

	return masterDB
}

func NewAddressValidator(cfg *config.Config) *host.BitcoinAddressValidator {
	return host.NewBitcoinAddressValidator(cfg.Bitcoin.Network)
}

// InitializeContract creates the contract from the configured state when storage doesn't hold
// one yet. It does nothing when no contract is configured or one already exists.
func InitializeContract(ctx context.Context, cfg *config.Config, masterDB *db.DB,
	validator host.AddressValidator) error {

	if !cfg.HasContract() {
		return nil
	}

	if existing, err := admin.Fetch(ctx, masterDB); err == nil {
		logger.Info(ctx, "Contract exists with admin %s", existing)
		return nil
	} else if err != admin.ErrNotInitialized {
		return errors.Wrap(err, "fetch admin")
	}

	adminAddress, err := validator.ValidateAddress(cfg.Contract.AdminAddress)
	if err != nil {
		return errors.Wrap(err, "admin address")
	}

	pubkey, kt, err := cfg.ContractKey()
	if err != nil {
		return errors.Wrap(err, "contract key")
	}

	tx := masterDB.Begin()
	defer tx.Discard()

	if err := admin.Initialize(ctx, tx, adminAddress); err != nil {
		return errors.Wrap(err, "initialize admin")
	}

	if err := oracle.InitializeKey(ctx, tx, pubkey, kt); err != nil {
		return errors.Wrap(err, "initialize oracle key")
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit")
	}

	logger.Info(ctx, "Contract initialized with admin %s and %s oracle key %x", adminAddress,
		kt, pubkey)
	return nil
}
