package config

import (
	"encoding/hex"
	"time"

	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is used to hold all runtime configuration.
type Config struct {
	Contract struct {
		// Initial contract state. When set, the daemon creates the contract at startup if it
		// doesn't exist yet.
		AdminAddress  string `envconfig:"ADMIN_ADDRESS" json:"ADMIN_ADDRESS"`
		OraclePubkey  string `envconfig:"ORACLE_PUBKEY" json:"ORACLE_PUBKEY"` // hex
		OracleKeyType string `default:"secp256k1" envconfig:"ORACLE_KEY_TYPE" json:"ORACLE_KEY_TYPE"`
	}
	Bitcoin struct {
		Network string `default:"mainnet" envconfig:"BITCOIN_CHAIN" json:"BITCOIN_CHAIN"`
	}
	HTTP struct {
		Address         string        `default:":8080" envconfig:"HTTP_ADDRESS" json:"HTTP_ADDRESS"`
		ReadTimeout     time.Duration `default:"10s" envconfig:"HTTP_READ_TIMEOUT" json:"HTTP_READ_TIMEOUT"`
		WriteTimeout    time.Duration `default:"10s" envconfig:"HTTP_WRITE_TIMEOUT" json:"HTTP_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `default:"15s" envconfig:"HTTP_SHUTDOWN_TIMEOUT" json:"HTTP_SHUTDOWN_TIMEOUT"`
		CORSOrigins     []string      `envconfig:"CORS_ORIGINS" json:"CORS_ORIGINS"`
	}
	AWS struct {
		Region          string `default:"ap-southeast-2" envconfig:"AWS_REGION" json:"AWS_REGION"`
		AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" json:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" json:"AWS_SECRET_ACCESS_KEY"`
		MaxRetries      int    `default:"10" envconfig:"AWS_MAX_RETRIES" json:"AWS_MAX_RETRIES"`
	}
	Storage struct {
		Bucket string `default:"standalone" envconfig:"CONTRACT_STORAGE_BUCKET" json:"CONTRACT_STORAGE_BUCKET"`
		Root   string `default:"./tmp" envconfig:"CONTRACT_STORAGE_ROOT" json:"CONTRACT_STORAGE_ROOT"`
	}
	Log struct {
		Development bool   `envconfig:"DEVELOPMENT" json:"DEVELOPMENT"`
		Format      string `envconfig:"LOG_FORMAT" json:"LOG_FORMAT"`
		FilePath    string `envconfig:"LOG_FILE_PATH" json:"LOG_FILE_PATH"`
	}
}

// SafeConfig masks sensitive config values
func SafeConfig(cfg Config) *Config {
	cfgSafe := cfg

	if len(cfgSafe.AWS.AccessKeyID) > 0 {
		cfgSafe.AWS.AccessKeyID = "*** Masked ***"
	}
	if len(cfgSafe.AWS.SecretAccessKey) > 0 {
		cfgSafe.AWS.SecretAccessKey = "*** Masked ***"
	}

	return &cfgSafe
}

// Environment returns configuration sourced from environment variables
func Environment() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NODE", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// HasContract returns true when the initial contract state is configured.
func (cfg *Config) HasContract() bool {
	return len(cfg.Contract.AdminAddress) > 0 || len(cfg.Contract.OraclePubkey) > 0
}

// ContractKey decodes the configured oracle key.
func (cfg *Config) ContractKey() ([]byte, signature.KeyType, error) {
	pubkey, err := hex.DecodeString(cfg.Contract.OraclePubkey)
	if err != nil {
		return nil, signature.InvalidKeyType, errors.Wrap(err, "oracle pubkey hex")
	}

	kt, err := signature.ParseKeyType(cfg.Contract.OracleKeyType)
	if err != nil {
		return nil, signature.InvalidKeyType, err
	}

	return pubkey, kt, nil
}
