package handlers

import (
	"context"
	"strconv"

	"github.com/dhiraj-inti/aml-application/internal/ledger"
	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

type Ledger struct{}

// AddTransaction records a screened transaction. Entries are not validated.
func (l *Ledger) AddTransaction(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Ledger.AddTransaction")
	defer span.End()

	v := ctx.Value(node.KeyValues).(*node.Values)

	var msg actions.AddValidTransaction
	if err := m.Decode(&msg); err != nil {
		return err
	}

	tx := ledger.Transaction{
		Sender:    msg.Transaction.Sender,
		Receiver:  msg.Transaction.Receiver,
		Amount:    msg.Transaction.Amount,
		Timestamp: msg.Transaction.Timestamp,
	}

	sequence, err := ledger.Append(ctx, dbConn, tx)
	if err != nil {
		return err
	}

	logger.Info(ctx, "%s : Recorded transaction %d : %s -> %s %d", v.TraceID, sequence,
		tx.Sender, tx.Receiver, tx.Amount)

	w.AddEvent(ctx, actions.CodeAddValidTransaction,
		node.NewAttribute("action", actions.CodeAddValidTransaction),
		node.NewAttribute("sender", tx.Sender),
		node.NewAttribute("receiver", tx.Receiver),
		node.NewAttribute("amount", strconv.FormatUint(tx.Amount, 10)),
		node.NewAttribute("timestamp", strconv.FormatUint(tx.Timestamp, 10)),
		node.NewAttribute("sequence", strconv.FormatUint(sequence, 10)))

	return nil
}

// GetTransactions lists ledger entries in sequence order.
func (l *Ledger) GetTransactions(ctx context.Context, w *node.ResponseWriter, dbConn db.Conn,
	m *node.Message) error {
	ctx, span := trace.StartSpan(ctx, "handlers.Ledger.GetTransactions")
	defer span.End()

	var msg actions.GetValidTransactions
	if err := m.Decode(&msg); err != nil {
		return err
	}

	var entries []ledger.Entry
	var err error
	if msg.Start == 0 && msg.Limit == 0 {
		entries, err = ledger.ListAll(ctx, dbConn)
	} else {
		entries, err = ledger.List(ctx, dbConn, msg.Start, msg.Limit)
	}
	if err != nil {
		return err
	}

	w.SetData(ctx, entries)
	return nil
}
