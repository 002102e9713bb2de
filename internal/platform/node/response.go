package node

import (
	"encoding/json"

	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownAction occurs when no handler is mounted for a request.
	ErrUnknownAction = errors.Wrap(rejection.ErrValidation, "unknown action")

	// ErrInvalidPayload occurs when a request payload can't be decoded.
	ErrInvalidPayload = errors.Wrap(rejection.ErrValidation, "invalid payload")

	// ErrMissingValues occurs when a handler runs without request values in the context.
	ErrMissingValues = errors.New("Missing request values")
)

// Decode unmarshals the JSON payload of the message into v.
func (m *Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(m.Payload, v); err != nil {
		return errors.Wrapf(ErrInvalidPayload, "%s : %s", m.Action, err)
	}

	return nil
}

// NewMessage builds a message with payload v encoded as JSON.
func NewMessage(action string, v interface{}) (*Message, error) {
	m := &Message{
		Action: action,
	}

	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshal payload")
		}
		m.Payload = b
	}

	return m, nil
}
