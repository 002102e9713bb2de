package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip32"
)

var cmdKeyGen = &cobra.Command{
	Use:   "keygen",
	Short: "Generates an oracle signing key",
	Long: "Generates a secp256k1 oracle signing key. With --seed the key is derived from the " +
		"hex seed along --path, so the same seed always gives the same key.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 0 {
			return errors.New("Incorrect argument count")
		}

		seedHex, _ := c.Flags().GetString(FlagSeed)
		path, _ := c.Flags().GetString(FlagPath)

		var key *btcec.PrivateKey
		if len(seedHex) > 0 {
			seed, err := hex.DecodeString(seedHex)
			if err != nil {
				return errors.Wrap(err, "seed hex")
			}

			key, err = deriveKey(seed, path)
			if err != nil {
				return errors.Wrap(err, "derive key")
			}
		} else {
			var err error
			key, err = btcec.NewPrivateKey(btcec.S256())
			if err != nil {
				return errors.Wrap(err, "generate key")
			}
		}

		return printKey(key, network(c))
	},
}

func init() {
	cmdKeyGen.Flags().String(FlagSeed, "", "hex seed to derive the key from")
	cmdKeyGen.Flags().String(FlagPath, "0", "derivation path, hardened indexes end with '")
}

// deriveKey derives a private key from seed along path, for example "0'/1/2".
func deriveKey(seed []byte, path string) (*btcec.PrivateKey, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "master key")
	}

	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	for _, index := range indexes {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", index)
		}
	}

	privateKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), key.Key)
	return privateKey, nil
}

func parsePath(path string) ([]uint32, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "m")
	path = strings.Trim(path, "/")
	if len(path) == 0 {
		return nil, nil
	}

	var result []uint32
	for _, part := range strings.Split(path, "/") {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		part = strings.TrimRight(part, "'h")

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(err, "path index %q", part)
		}

		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		result = append(result, uint32(index))
	}

	return result, nil
}

func printKey(key *btcec.PrivateKey, params *chaincfg.Params) error {
	wif, err := btcutil.NewWIF(key, params, true)
	if err != nil {
		return errors.Wrap(err, "wif")
	}

	pubkey := key.PubKey().SerializeCompressed()
	address, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubkey), params)
	if err != nil {
		return errors.Wrap(err, "address")
	}

	fmt.Printf("WIF : %s\n", wif.String())
	fmt.Printf("PubKey : %x\n", pubkey)
	fmt.Printf("Key ID : %s\n", signature.KeyID(pubkey))
	fmt.Printf("Addr : %s\n", address.EncodeAddress())
	return nil
}
