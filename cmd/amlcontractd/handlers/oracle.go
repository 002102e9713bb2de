package handlers

import (
	"context"
	"encoding/base64"

	"github.com/dhiraj-inti/aml-application/internal/oracle"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

type Oracle struct{}

// DataUpdate admits a signed oracle payload. Anyone may submit; only the signature matters.
func (o *Oracle) DataUpdate(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Oracle.DataUpdate")
	defer span.End()

	v := ctx.Value(node.KeyValues).(*node.Values)

	var msg actions.OracleDataUpdate
	if err := m.Decode(&msg); err != nil {
		return err
	}

	if err := oracle.Update(ctx, dbConn, msg.Data, msg.Signature); err != nil {
		return err
	}

	logger.Info(ctx, "%s : Accepted oracle data from %s : %s", v.TraceID, m.Sender, msg.Data)

	w.AddEvent(ctx, actions.CodeOracleDataUpdate,
		node.NewAttribute("action", actions.CodeOracleDataUpdate),
		node.NewAttribute("sender", m.Sender.String()),
		node.NewAttribute("data", msg.Data))

	return nil
}

// UpdateKey rotates the oracle public key on behalf of the admin.
func (o *Oracle) UpdateKey(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Oracle.UpdateKey")
	defer span.End()

	v := ctx.Value(node.KeyValues).(*node.Values)

	var msg actions.UpdateOracle
	if err := m.Decode(&msg); err != nil {
		return err
	}

	key, err := oracle.SetPubkey(ctx, dbConn, m.Sender, msg.NewPubkey, msg.NewKeyType)
	if err != nil {
		return err
	}

	logger.Info(ctx, "%s : Oracle key rotated to %s (%s)", v.TraceID, key.ID(), key.KeyType)

	w.AddEvent(ctx, "oracle_admin_update",
		node.NewAttribute("action", "oracle_update"),
		node.NewAttribute("admin", m.Sender.String()),
		node.NewAttribute("new_pubkey", base64.StdEncoding.EncodeToString(key.PublicKey)),
		node.NewAttribute("new_key_type", key.KeyType.String()))

	return nil
}

// GetData returns the latest verified oracle payload.
func (o *Oracle) GetData(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Oracle.GetData")
	defer span.End()

	data, err := oracle.FetchData(ctx, dbConn)
	if err != nil {
		return err
	}

	w.SetData(ctx, &actions.OracleDataResponse{
		Data: data,
	})
	return nil
}

// GetPubkey returns the current oracle key.
func (o *Oracle) GetPubkey(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Oracle.GetPubkey")
	defer span.End()

	key, err := oracle.FetchKey(ctx, dbConn)
	if err != nil {
		return err
	}

	w.SetData(ctx, &actions.OraclePubkeyResponse{
		Pubkey:  key.PublicKey,
		KeyType: key.KeyType.String(),
		KeyID:   key.ID(),
	})
	return nil
}
