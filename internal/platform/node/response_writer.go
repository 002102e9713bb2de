package node

import (
	"context"

	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/tokenized/pkg/logger"
)

// Attribute is a key/value pair on an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewAttribute is a helper to build an event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{
		Key:   key,
		Value: value,
	}
}

// Event is a notification emitted by a successful request.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Value returns the value of the first attribute with key, or an empty string.
func (e Event) Value(key string) string {
	for _, attribute := range e.Attributes {
		if attribute.Key == key {
			return attribute.Value
		}
	}
	return ""
}

// ResponseWriter collects the results of a request. Events and payments are only released by
// the App when the request commits.
type ResponseWriter struct {
	Events   []Event            `json:"events,omitempty"`
	Payments []actions.BankSend `json:"payments,omitempty"`
	Data     interface{}        `json:"data,omitempty"`
}

// AddEvent is a helper to add an event.
func (w *ResponseWriter) AddEvent(ctx context.Context, eventType string,
	attributes ...Attribute) {

	w.Events = append(w.Events, Event{
		Type:       eventType,
		Attributes: attributes,
	})
}

// AddPayment is a helper to add a payment instruction. The host performs the transfer.
func (w *ResponseWriter) AddPayment(ctx context.Context, to string, amount actions.Coins) {
	logger.Verbose(ctx, "Payment of %s to %s", amount, to)
	w.Payments = append(w.Payments, actions.BankSend{
		ToAddress: to,
		Amount:    amount,
	})
}

// SetData sets the query result.
func (w *ResponseWriter) SetData(ctx context.Context, data interface{}) {
	w.Data = data
}
