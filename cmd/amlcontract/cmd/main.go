package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhiraj-inti/aml-application/internal/platform/host"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"
)

const (
	FlagNetwork = "network"
	FlagSeed    = "seed"
	FlagPath    = "path"
	FlagKeyType = "key-type"
	FlagRaw     = "raw"
	FlagStart   = "start"
	FlagLimit   = "limit"
)

var scCmd = &cobra.Command{
	Use:   "amlcontract",
	Short: "AML Oracle Contract CLI",
}

func Execute() {
	scCmd.PersistentFlags().String(FlagNetwork, "mainnet",
		"network for keys and addresses (mainnet, testnet, regtest, simnet)")

	scCmd.AddCommand(cmdKeyGen)
	scCmd.AddCommand(cmdSign)
	scCmd.AddCommand(cmdVerify)
	scCmd.AddCommand(cmdKeyType)
	scCmd.AddCommand(cmdState)

	if err := scCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func network(c *cobra.Command) *chaincfg.Params {
	name, err := c.Flags().GetString(FlagNetwork)
	if err != nil {
		name = "mainnet"
	}

	return host.NewChainParams(name)
}

func dumpJSON(o interface{}) error {
	js, err := json.MarshalIndent(o, "", "    ")
	if err != nil {
		return err
	}

	fmt.Printf("```\n%s\n```\n\n", js)
	return nil
}
