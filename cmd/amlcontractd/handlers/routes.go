package handlers

import (
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/pkg/actions"
)

// API returns the contract application with every action and query mounted.
func API(masterDB *db.DB, validator host.AddressValidator) *node.App {

	app := node.New(masterDB, node.Log)

	// Register contract based actions.
	c := Contract{}

	app.Handle(actions.CodeInitialize, c.Instantiate)
	app.HandleQuery(actions.CodeGetAdmin, c.GetAdmin)

	// Register oracle based actions.
	o := Oracle{}

	app.Handle(actions.CodeOracleDataUpdate, o.DataUpdate)
	app.Handle(actions.CodeUpdateOracle, o.UpdateKey)
	app.HandleQuery(actions.CodeGetOracleData, o.GetData)
	app.HandleQuery(actions.CodeGetOraclePubkey, o.GetPubkey)

	// Register ledger based actions.
	l := Ledger{}

	app.Handle(actions.CodeAddValidTransaction, l.AddTransaction)
	app.HandleQuery(actions.CodeGetValidTransactions, l.GetTransactions)

	// Register transfer based actions.
	t := Transfer{
		Validator: validator,
	}

	app.Handle(actions.CodeSend, t.Send)

	return app
}
