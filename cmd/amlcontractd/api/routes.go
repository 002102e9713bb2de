package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dhiraj-inti/aml-application/internal/platform/node"
	"github.com/dhiraj-inti/aml-application/internal/rejection"
	"github.com/dhiraj-inti/aml-application/pkg/actions"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidTimestamp is returned for a timestamp that is neither unix seconds nor ISO-8601.
	ErrInvalidTimestamp = errors.Wrap(rejection.ErrValidation, "invalid timestamp")

	// ErrInvalidQuery is returned for malformed query parameters.
	ErrInvalidQuery = errors.Wrap(rejection.ErrValidation, "invalid query parameter")
)

// Instantiate handles POST /instantiate.
func (s *Server) Instantiate(c *gin.Context) {
	var request actions.Initialize
	if err := s.bind(c, &request); err != nil {
		s.respondError(c, err)
		return
	}

	s.executeAction(c, actions.CodeInitialize, &request, nil)
}

// GetAdmin handles GET /admin.
func (s *Server) GetAdmin(c *gin.Context) {
	s.query(c, &node.Message{Action: actions.CodeGetAdmin})
}

// UpdateOracleData handles POST /oracle-data.
func (s *Server) UpdateOracleData(c *gin.Context) {
	var request actions.OracleDataUpdate
	if err := s.bind(c, &request); err != nil {
		s.respondError(c, err)
		return
	}

	s.executeAction(c, actions.CodeOracleDataUpdate, &request, nil)
}

// GetOracleData handles GET /oracle-data.
func (s *Server) GetOracleData(c *gin.Context) {
	s.query(c, &node.Message{Action: actions.CodeGetOracleData})
}

// UpdateOracleKey handles POST /oracle-key.
func (s *Server) UpdateOracleKey(c *gin.Context) {
	var request actions.UpdateOracle
	if err := s.bind(c, &request); err != nil {
		s.respondError(c, err)
		return
	}

	s.executeAction(c, actions.CodeUpdateOracle, &request, nil)
}

// GetOracleKey handles GET /oracle-key.
func (s *Server) GetOracleKey(c *gin.Context) {
	s.query(c, &node.Message{Action: actions.CodeGetOraclePubkey})
}

// transactionRequest is the body of POST /add-transaction. The screening service sends the
// timestamp either as unix seconds or as ISO-8601 text.
type transactionRequest struct {
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Amount    uint64          `json:"amount"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// AddTransaction handles POST /add-transaction.
func (s *Server) AddTransaction(c *gin.Context) {
	var request transactionRequest
	if err := s.bind(c, &request); err != nil {
		s.respondError(c, err)
		return
	}

	timestamp, err := ParseTimestamp(request.Timestamp)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.executeAction(c, actions.CodeAddValidTransaction, &actions.AddValidTransaction{
		Transaction: actions.ValidTransaction{
			Sender:    request.Sender,
			Receiver:  request.Receiver,
			Amount:    request.Amount,
			Timestamp: timestamp,
		},
	}, nil)
}

// GetValidTransactions handles GET /valid-transactions?start=&limit=.
func (s *Server) GetValidTransactions(c *gin.Context) {
	var request actions.GetValidTransactions

	if v := c.Query("start"); v != "" {
		start, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.respondError(c, errors.Wrapf(ErrInvalidQuery, "start %q", v))
			return
		}
		request.Start = start
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.respondError(c, errors.Wrapf(ErrInvalidQuery, "limit %q", v))
			return
		}
		request.Limit = limit
	}

	m, err := node.NewMessage(actions.CodeGetValidTransactions, &request)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.query(c, m)
}

// sendRequest is the body of POST /send. Funds stand in for the coins attached to the call.
type sendRequest struct {
	Recipient string        `json:"recipient"`
	Funds     actions.Coins `json:"funds"`
}

// Send handles POST /send.
func (s *Server) Send(c *gin.Context) {
	var request sendRequest
	if err := s.bind(c, &request); err != nil {
		s.respondError(c, err)
		return
	}

	s.executeAction(c, actions.CodeSend, &actions.Send{
		Recipient: request.Recipient,
	}, request.Funds)
}

func (s *Server) executeAction(c *gin.Context, action string, payload interface{},
	funds actions.Coins) {

	m, err := node.NewMessage(action, payload)
	if err != nil {
		s.respondError(c, err)
		return
	}
	m.Funds = funds

	s.execute(c, m)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp converts a JSON number of unix seconds or an ISO-8601 string into unix
// seconds. Times without a zone are read as UTC.
func ParseTimestamp(raw json.RawMessage) (uint64, error) {
	text := strings.TrimSpace(string(raw))
	if len(text) == 0 || text == "null" {
		return 0, errors.Wrap(ErrInvalidTimestamp, "missing")
	}

	if !strings.HasPrefix(text, "\"") {
		value, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidTimestamp, "%s", text)
		}
		return value, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errors.Wrapf(ErrInvalidTimestamp, "%s", text)
	}

	if value, err := strconv.ParseUint(s, 10, 64); err == nil {
		return value, nil
	}

	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		if t.Unix() < 0 {
			return 0, errors.Wrapf(ErrInvalidTimestamp, "%s before 1970", s)
		}
		return uint64(t.Unix()), nil
	}

	return 0, errors.Wrapf(ErrInvalidTimestamp, "%q", s)
}
