package handlers

import (
	"context"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

var (
	// ErrNoFunds is returned when a send request carries no funds.
	ErrNoFunds = errors.Wrap(rejection.ErrValidation, "no funds sent")

	// ErrInvalidCoin is returned for a zero amount or an empty denomination.
	ErrInvalidCoin = errors.Wrap(rejection.ErrValidation, "invalid coin")
)

type Transfer struct {
	Validator host.AddressValidator
}

// Send forwards the funds attached to the request to the recipient. The payment is executed
// by the host after the request commits.
func (t *Transfer) Send(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Transfer.Send")
	defer span.End()

	v := ctx.Value(node.KeyValues).(*node.Values)

	var msg actions.Send
	if err := m.Decode(&msg); err != nil {
		return err
	}

	if len(m.Funds) == 0 {
		return ErrNoFunds
	}

	for _, coin := range m.Funds {
		if coin.Amount == 0 || len(coin.Denom) == 0 {
			return errors.Wrapf(ErrInvalidCoin, "%s", coin)
		}
	}

	recipient, err := t.Validator.ValidateAddress(msg.Recipient)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}

	logger.Info(ctx, "%s : Sending %s from %s to %s", v.TraceID, m.Funds, m.Sender, recipient)

	w.AddPayment(ctx, recipient.String(), m.Funds)

	w.AddEvent(ctx, actions.CodeSend,
		node.NewAttribute("action", actions.CodeSend),
		node.NewAttribute("from", m.Sender.String()),
		node.NewAttribute("to", recipient.String()),
		node.NewAttribute("amount", m.Funds.String()))

	return nil
}
