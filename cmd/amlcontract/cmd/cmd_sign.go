package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dhiraj-inti/aml-application/internal/signature"

	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cmdSign = &cobra.Command{
	Use:   "sign <wif> <payload>",
	Short: "Signs an oracle payload",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("Incorrect argument count")
		}

		wif, err := btcutil.DecodeWIF(args[0])
		if err != nil {
			return errors.Wrap(err, "decode wif")
		}

		sig, err := signature.Sign(wif.PrivKey, []byte(args[1]))
		if err != nil {
			return errors.Wrap(err, "sign")
		}

		fmt.Printf("Signature (base64) : %s\n", base64.StdEncoding.EncodeToString(sig))
		fmt.Printf("Signature (hex) : %x\n", sig)
		return nil
	},
}

var cmdVerify = &cobra.Command{
	Use:   "verify <pubkey hex> <signature> <payload>",
	Short: "Verifies an oracle payload signature",
	Long:  "Verifies an oracle payload signature. The signature may be hex or base64.",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 3 {
			return errors.New("Incorrect argument count")
		}

		pubkey, err := hex.DecodeString(args[0])
		if err != nil {
			return errors.Wrap(err, "pubkey hex")
		}

		sig, err := decodeSignature(args[1])
		if err != nil {
			return err
		}

		rawKeyType, _ := c.Flags().GetString(FlagKeyType)
		kt, err := signature.ParseKeyType(rawKeyType)
		if err != nil {
			return err
		}

		verified, err := signature.Verify([]byte(args[2]), sig, pubkey, kt)
		if err != nil {
			return err
		}

		if !verified {
			fmt.Printf("Signature invalid\n")
			return nil
		}

		fmt.Printf("Signature valid (key %s)\n", signature.KeyID(pubkey))
		return nil
	},
}

var cmdKeyType = &cobra.Command{
	Use:   "keytype <name>",
	Short: "Prints the canonical name of a key type",
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("Incorrect argument count")
		}

		kt, err := signature.ParseKeyType(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", kt)
		return nil
	},
}

func init() {
	cmdVerify.Flags().String(FlagKeyType, "secp256k1", "oracle key type")
}

// decodeSignature accepts a compact signature as hex or base64.
func decodeSignature(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	if len(s) == signature.SignatureSize*2 {
		if b, err := hex.DecodeString(s); err == nil {
			return b, nil
		}
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "signature is neither hex nor base64")
	}

	return b, nil
}
