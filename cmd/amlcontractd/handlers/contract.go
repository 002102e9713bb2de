package handlers

import (
	"context"
	"encoding/base64"

	"github.com/dhiraj-inti/aml-application/internal/admin"
	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/internal/signature"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

type Contract struct{}

// Instantiate creates the contract. The sender becomes the admin and the supplied key becomes
// the oracle key.
func (c *Contract) Instantiate(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Contract.Instantiate")
	defer span.End()

	v := ctx.Value(node.KeyValues).(*node.Values)

	var msg actions.Initialize
	if err := m.Decode(&msg); err != nil {
		return err
	}

	kt, err := signature.ParseKeyType(msg.OracleKeyType)
	if err != nil {
		logger.Warn(ctx, "%s : Invalid oracle key type %q", v.TraceID, msg.OracleKeyType)
		return errors.Wrap(err, "oracle_key_type")
	}

	if err := admin.Initialize(ctx, dbConn, m.Sender); err != nil {
		return err
	}

	if err := oracle.InitializeKey(ctx, dbConn, msg.OraclePubkey, kt); err != nil {
		return err
	}

	logger.Info(ctx, "%s : Contract instantiated by %s with %s oracle key %s", v.TraceID,
		m.Sender, kt, signature.KeyID(msg.OraclePubkey))

	w.AddEvent(ctx, actions.CodeInitialize,
		node.NewAttribute("action", actions.CodeInitialize),
		node.NewAttribute("admin", m.Sender.String()),
		node.NewAttribute("oracle_pubkey", base64.StdEncoding.EncodeToString(msg.OraclePubkey)),
		node.NewAttribute("oracle_key_type", kt.String()))

	return nil
}

// GetAdmin returns the admin identity.
func (c *Contract) GetAdmin(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Contract.GetAdmin")
	defer span.End()

	adminAddress, err := admin.Fetch(ctx, dbConn)
	if err != nil {
		return err
	}

	w.SetData(ctx, &actions.AdminResponse{
		Admin: adminAddress.String(),
	})
	return nil
}
