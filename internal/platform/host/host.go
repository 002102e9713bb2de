// Package host provides the identity primitives the contract relies on from its execution
// environment.
package host

import (
	"strings"

	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAddress is returned when an identity can't be resolved to an account.
	ErrInvalidAddress = errors.Wrap(rejection.ErrValidation, "invalid address")
)

// Address is an opaque account identifier that has been validated by the host.
type Address string

// String returns the address text.
func (a Address) String() string {
	return string(a)
}

// IsEmpty returns true for the zero address.
func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// AddressValidator resolves identity text into a validated Address.
type AddressValidator interface {
	ValidateAddress(s string) (Address, error)
}

// BitcoinAddressValidator accepts base58 and bech32 addresses encoded for one network.
type BitcoinAddressValidator struct {
	Params *chaincfg.Params
}

// NewBitcoinAddressValidator returns a validator for the named network ("mainnet", "testnet",
// "regtest" or "simnet"). Unknown names fall back to mainnet.
func NewBitcoinAddressValidator(network string) *BitcoinAddressValidator {
	return &BitcoinAddressValidator{
		Params: NewChainParams(network),
	}
}

// ValidateAddress decodes s and checks it belongs to the validator's network.
func (v *BitcoinAddressValidator) ValidateAddress(s string) (Address, error) {
	if len(s) == 0 {
		return "", errors.Wrap(ErrInvalidAddress, "empty")
	}

	address, err := btcutil.DecodeAddress(s, v.Params)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidAddress, "%s : %s", s, err)
	}

	if !address.IsForNet(v.Params) {
		return "", errors.Wrapf(ErrInvalidAddress, "%s : wrong network", s)
	}

	return Address(address.EncodeAddress()), nil
}

// NewChainParams returns the chain parameters for a network name.
func NewChainParams(network string) *chaincfg.Params {
	switch strings.ToLower(network) {
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params
	case "regtest":
		return &chaincfg.RegressionNetParams
	case "simnet":
		return &chaincfg.SimNetParams
	}

	return &chaincfg.MainNetParams
}
