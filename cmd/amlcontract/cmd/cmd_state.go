package cmd

import (
	"context"
	"fmt"

	"github.com/dhiraj-inti/aml-application/cmd/amlcontractd/bootstrap"
	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/ledger"
	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var cmdState = &cobra.Command{
	Use:   "state",
	Short: "Load and print the contract state.",
	Long:  "Load and print the contract state from the storage configured in the environment.",
	RunE: func(c *cobra.Command, args []string) error {
		ctx := node.ContextWithDevelopmentLogger(context.Background(), "text")

		cfg := bootstrap.NewConfigFromEnv(ctx)

		masterDB := bootstrap.NewMasterDB(ctx, cfg)
		defer masterDB.Close()

		raw, _ := c.Flags().GetBool(FlagRaw)
		start, _ := c.Flags().GetUint64(FlagStart)
		limit, _ := c.Flags().GetUint64(FlagLimit)

		state, err := loadState(ctx, masterDB, start, limit)
		if err != nil {
			return err
		}

		if raw {
			spew.Dump(state)
			return nil
		}

		return printState(state)
	},
}

func init() {
	cmdState.Flags().Bool(FlagRaw, false, "dump the loaded values instead of JSON")
	cmdState.Flags().Uint64(FlagStart, 0, "first ledger sequence to print")
	cmdState.Flags().Uint64(FlagLimit, 0, "maximum ledger entries to print, 0 for all")
}

// contractState is everything the contract stores.
type contractState struct {
	Admin      host.Address
	OracleKey  *actions.OraclePubkeyResponse
	OracleData *string
	LedgerSize uint64
	Entries    []ledger.Entry
}

// loadState reads the contract and the ledger entries from start, at most limit of them.
func loadState(ctx context.Context, dbConn db.Conn, start, limit uint64) (*contractState,
	error) {

	result := &contractState{}

	adminAddress, err := admin.Fetch(ctx, dbConn)
	if err != nil {
		return nil, err
	}
	result.Admin = adminAddress

	key, err := oracle.FetchKey(ctx, dbConn)
	if err != nil {
		return nil, err
	}
	result.OracleKey = &actions.OraclePubkeyResponse{
		Pubkey:  key.PublicKey,
		KeyType: key.KeyType.String(),
		KeyID:   key.ID(),
	}

	result.OracleData, err = oracle.FetchData(ctx, dbConn)
	if err != nil {
		return nil, err
	}

	result.LedgerSize, err = ledger.Count(ctx, dbConn)
	if err != nil {
		return nil, err
	}

	result.Entries, err = ledger.List(ctx, dbConn, start, limit)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func printState(state *contractState) error {
	fmt.Printf("# Contract\n\n")
	fmt.Printf("Admin : %s\n\n", state.Admin)

	fmt.Printf("## Oracle Key\n\n")
	if err := dumpJSON(state.OracleKey); err != nil {
		return err
	}

	fmt.Printf("## Oracle Data\n\n")
	if state.OracleData == nil {
		fmt.Printf("None\n\n")
	} else {
		fmt.Printf("%s\n\n", *state.OracleData)
	}

	fmt.Printf("## Ledger (%d of %d entries)\n\n", len(state.Entries), state.LedgerSize)
	return dumpJSON(state.Entries)
}
