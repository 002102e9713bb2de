// Package actions defines the requests accepted by the AML oracle contract and the values
// returned from it.
package actions

import (
	"fmt"
	"strings"
)

// Execute action codes.
const (
	CodeInitialize          = "instantiate"
	CodeOracleDataUpdate    = "oracle_data_update"
	CodeUpdateOracle        = "update_oracle"
	CodeAddValidTransaction = "add_valid_transaction"
	CodeSend                = "send"
)

// Query codes.
const (
	CodeGetOracleData        = "get_oracle_data"
	CodeGetOraclePubkey      = "get_oracle_pubkey"
	CodeGetAdmin             = "get_admin"
	CodeGetValidTransactions = "get_valid_transactions"
)

// Initialize creates the contract. The sender becomes the admin.
type Initialize struct {
	OraclePubkey  []byte `json:"oracle_pubkey"`
	OracleKeyType string `json:"oracle_key_type"`
}

// OracleDataUpdate submits a signed oracle payload.
type OracleDataUpdate struct {
	Data      string `json:"data"`
	Signature []byte `json:"signature"`
}

// UpdateOracle rotates the oracle public key. NewKeyType is optional; when nil the current key
// type is kept.
type UpdateOracle struct {
	NewPubkey  []byte  `json:"new_pubkey"`
	NewKeyType *string `json:"new_key_type,omitempty"`
}

// ValidTransaction is a transaction that has already passed external AML screening.
type ValidTransaction struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    uint64 `json:"amount"`
	Timestamp uint64 `json:"timestamp"`
}

// AddValidTransaction appends a screened transaction to the ledger.
type AddValidTransaction struct {
	Transaction ValidTransaction `json:"transaction"`
}

// Send pays the funds attached to the request to Recipient.
type Send struct {
	Recipient string `json:"recipient"`
}

// GetValidTransactions lists ledger entries starting at Start. Limit zero means all.
type GetValidTransactions struct {
	Start uint64 `json:"start,omitempty"`
	Limit uint64 `json:"limit,omitempty"`
}

// Coin is an amount of one native denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}

// Coins is a list of native funds.
type Coins []Coin

func (cs Coins) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}

// BankSend is a payment instruction returned to the host, which performs the transfer after
// the request commits.
type BankSend struct {
	ToAddress string `json:"to_address"`
	Amount    Coins  `json:"amount"`
}

// OracleDataResponse is the result of CodeGetOracleData. Data is nil until the first verified
// update.
type OracleDataResponse struct {
	Data *string `json:"data"`
}

// OraclePubkeyResponse is the result of CodeGetOraclePubkey.
type OraclePubkeyResponse struct {
	Pubkey  []byte `json:"pubkey"`
	KeyType string `json:"key_type"`
	KeyID   string `json:"key_id"`
}

// AdminResponse is the result of CodeGetAdmin.
type AdminResponse struct {
	Admin string `json:"admin"`
}
